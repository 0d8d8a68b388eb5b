package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence/models"
	domainErrors "github.com/agentdna/agentdna/pkg/errors"
)

// GormConversationRepository is the GORM-backed conversation store.
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a GORM conversation repository.
func NewGormConversationRepository(db *gorm.DB) repository.ConversationRepository {
	return &GormConversationRepository{
		db: db,
	}
}

// Create persists a new conversation header and any messages it carries.
func (r *GormConversationRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	model := &models.ConversationModel{
		ID:        conv.ID(),
		OwnerID:   conv.OwnerID(),
		Type:      string(conv.Type()),
		CreatedAt: conv.CreatedAt(),
		UpdatedAt: conv.UpdatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to create conversation: " + err.Error())
	}

	for _, msg := range conv.Messages() {
		if err := r.insertMessage(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// FindByIDAndOwner loads a conversation with its full transcript.
func (r *GormConversationRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Conversation, error) {
	var convModel models.ConversationModel
	err := r.db.WithContext(ctx).
		First(&convModel, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError("conversation not found")
		}
		return nil, domainErrors.NewInternalError("failed to find conversation: " + err.Error())
	}

	var msgModels []models.MessageModel
	err = r.db.WithContext(ctx).
		Where("conversation_id = ?", id).
		Order("seq asc").
		Find(&msgModels).Error
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to load messages: " + err.Error())
	}

	messages := make([]*entity.Message, 0, len(msgModels))
	for _, m := range msgModels {
		role, _ := valueobject.ParseRole(m.Role)
		messages = append(messages, entity.ReconstructMessage(
			m.ID,
			m.ConversationID,
			role,
			m.Content,
			m.CreatedAt,
			m.ModelUsed,
			m.TokensUsed,
		))
	}

	convType, _ := valueobject.ParseConversationType(convModel.Type)
	return entity.ReconstructConversation(
		convModel.ID,
		convModel.OwnerID,
		convType,
		messages,
		convModel.CreatedAt,
		convModel.UpdatedAt,
	), nil
}

// AppendMessage inserts one message row and touches the conversation header.
func (r *GormConversationRepository) AppendMessage(ctx context.Context, conversationID string, msg *entity.Message) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationModel{}).
		Where("id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return domainErrors.NewInternalError("failed to check conversation: " + err.Error())
	}
	if count == 0 {
		return domainErrors.NewNotFoundError("conversation not found")
	}

	if err := r.insertMessage(ctx, msg); err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Model(&models.ConversationModel{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now().UTC()).Error
	if err != nil {
		return domainErrors.NewInternalError("failed to touch conversation: " + err.Error())
	}
	return nil
}

// ListByOwner returns conversation headers, most recently updated first.
func (r *GormConversationRepository) ListByOwner(ctx context.Context, ownerID string, convType valueobject.ConversationType, limit int) ([]*entity.Conversation, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at desc")
	if convType != "" {
		query = query.Where("type = ?", string(convType))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var convModels []models.ConversationModel
	if err := query.Find(&convModels).Error; err != nil {
		return nil, domainErrors.NewInternalError("failed to list conversations: " + err.Error())
	}

	conversations := make([]*entity.Conversation, 0, len(convModels))
	for _, m := range convModels {
		t, _ := valueobject.ParseConversationType(m.Type)
		conversations = append(conversations, entity.ReconstructConversation(
			m.ID, m.OwnerID, t, nil, m.CreatedAt, m.UpdatedAt,
		))
	}
	return conversations, nil
}

func (r *GormConversationRepository) insertMessage(ctx context.Context, msg *entity.Message) error {
	model := &models.MessageModel{
		ID:             msg.ID(),
		ConversationID: msg.ConversationID(),
		Role:           string(msg.Role()),
		Content:        msg.Content(),
		ModelUsed:      msg.ModelUsed(),
		TokensUsed:     msg.TokensUsed(),
		CreatedAt:      msg.Timestamp(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to append message: " + err.Error())
	}
	return nil
}
