package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/pkg/errors"
)

// ConversationQueryUseCase serves transcript reads. The stored transcript
// is the authoritative record a client reconciles against after a chat
// turn.
type ConversationQueryUseCase struct {
	conversations repository.ConversationRepository
	logger        *zap.Logger
}

// NewConversationQueryUseCase creates the conversation read use-case.
func NewConversationQueryUseCase(conversations repository.ConversationRepository, logger *zap.Logger) *ConversationQueryUseCase {
	return &ConversationQueryUseCase{
		conversations: conversations,
		logger:        logger,
	}
}

// Get returns one conversation with its full transcript.
func (uc *ConversationQueryUseCase) Get(ctx context.Context, id, ownerID string) (*entity.Conversation, error) {
	if id == "" || ownerID == "" {
		return nil, errors.NewInvalidInputError("conversation id and userId are required")
	}
	return uc.conversations.FindByIDAndOwner(ctx, id, ownerID)
}

// List returns an owner's conversation headers, most recently updated
// first. typeFilter may be empty; an unknown value is rejected.
func (uc *ConversationQueryUseCase) List(ctx context.Context, ownerID, typeFilter string, limit int) ([]*entity.Conversation, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	var convType valueobject.ConversationType
	if typeFilter != "" {
		parsed, ok := valueobject.ParseConversationType(typeFilter)
		if !ok {
			return nil, errors.NewInvalidInputError("unknown conversation type: " + typeFilter)
		}
		convType = parsed
	}

	return uc.conversations.ListByOwner(ctx, ownerID, convType, limit)
}
