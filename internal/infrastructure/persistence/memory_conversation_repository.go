package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/pkg/errors"
)

// memoryConversation is the stored form: header plus ordered message list.
type memoryConversation struct {
	id        string
	ownerID   string
	convType  valueobject.ConversationType
	messages  []*entity.Message
	createdAt time.Time
	updatedAt time.Time
}

// MemoryConversationRepository is an in-memory conversation store for
// development and tests.
type MemoryConversationRepository struct {
	mu            sync.RWMutex
	conversations map[string]*memoryConversation
}

// NewMemoryConversationRepository creates an in-memory conversation repository.
func NewMemoryConversationRepository() repository.ConversationRepository {
	return &MemoryConversationRepository{
		conversations: make(map[string]*memoryConversation),
	}
}

// Create persists a new conversation.
func (r *MemoryConversationRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[conv.ID()]; ok {
		return errors.NewInternalError("conversation already exists: " + conv.ID())
	}

	r.conversations[conv.ID()] = &memoryConversation{
		id:        conv.ID(),
		ownerID:   conv.OwnerID(),
		convType:  conv.Type(),
		messages:  conv.Messages(),
		createdAt: conv.CreatedAt(),
		updatedAt: conv.UpdatedAt(),
	}
	return nil
}

// FindByIDAndOwner loads a conversation with its full transcript.
func (r *MemoryConversationRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.conversations[id]
	if !ok || stored.ownerID != ownerID {
		return nil, errors.NewNotFoundError("conversation not found")
	}

	messages := make([]*entity.Message, len(stored.messages))
	copy(messages, stored.messages)

	return entity.ReconstructConversation(
		stored.id,
		stored.ownerID,
		stored.convType,
		messages,
		stored.createdAt,
		stored.updatedAt,
	), nil
}

// AppendMessage adds one message to the end of an existing conversation.
func (r *MemoryConversationRepository) AppendMessage(ctx context.Context, conversationID string, msg *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.conversations[conversationID]
	if !ok {
		return errors.NewNotFoundError("conversation not found")
	}

	stored.messages = append(stored.messages, msg)
	stored.updatedAt = time.Now().UTC()
	return nil
}

// ListByOwner returns conversation headers, most recently updated first.
func (r *MemoryConversationRepository) ListByOwner(ctx context.Context, ownerID string, convType valueobject.ConversationType, limit int) ([]*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*memoryConversation
	for _, c := range r.conversations {
		if c.ownerID != ownerID {
			continue
		}
		if convType != "" && c.convType != convType {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].updatedAt.After(matched[j].updatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*entity.Conversation, 0, len(matched))
	for _, c := range matched {
		result = append(result, entity.ReconstructConversation(
			c.id, c.ownerID, c.convType, nil, c.createdAt, c.updatedAt,
		))
	}
	return result, nil
}
