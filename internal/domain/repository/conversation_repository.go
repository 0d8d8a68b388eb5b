package repository

import (
	"context"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
)

// ConversationRepository is the durable conversation store.
//
// Transcripts are append-only: implementations persist one record per
// message, so a concurrent double-submit interleaves appends but never
// loses one. Message order is the append order observed by the store.
type ConversationRepository interface {
	// Create persists a new (normally empty) conversation.
	Create(ctx context.Context, conv *entity.Conversation) error

	// FindByIDAndOwner loads a conversation with its full transcript.
	// Returns a NOT_FOUND error if the id does not exist or the
	// conversation belongs to a different owner.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Conversation, error)

	// AppendMessage adds one message to the end of an existing
	// conversation and refreshes its updated timestamp. Returns a
	// NOT_FOUND error if the conversation does not exist.
	AppendMessage(ctx context.Context, conversationID string, msg *entity.Message) error

	// ListByOwner returns the owner's conversations, most recently
	// updated first, without transcripts. convType filters when non-empty.
	ListByOwner(ctx context.Context, ownerID string, convType valueobject.ConversationType, limit int) ([]*entity.Conversation, error)
}
