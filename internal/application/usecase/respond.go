package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/pkg/errors"
)

// ChatCommand is the inbound chat request.
type ChatCommand struct {
	OwnerID        string
	ConversationID string // empty = start a new conversation
	Type           string // empty = general
	Message        string
}

// ChatReply is the assistant's reply plus the conversation it landed in.
type ChatReply struct {
	Message        string
	ConversationID string
	Timestamp      time.Time
}

// PromptBuilder resolves the system instruction for a conversation.
type PromptBuilder interface {
	SystemPrompt(convType valueobject.ConversationType, profile *entity.BehavioralProfile) string
}

// RespondConfig tunes the generation call.
type RespondConfig struct {
	Model         string
	MaxTokens     int
	Temperature   float64
	ContextWindow int // recent messages sent upstream
}

// RespondUseCase runs one turn of a chat conversation: persist the user
// message, generate the assistant reply, persist it, return it.
//
// Side-effect contract: a validation failure persists nothing; an upstream
// generation failure persists exactly the user message; success persists
// user then assistant, in that order. The use-case never retries a failed
// generation.
type RespondUseCase struct {
	conversations repository.ConversationRepository
	profiles      repository.ProfileRepository
	prompts       PromptBuilder
	llm           service.LLMClient
	cfg           RespondConfig
	logger        *zap.Logger
}

// NewRespondUseCase creates the chat responder.
func NewRespondUseCase(
	conversations repository.ConversationRepository,
	profiles repository.ProfileRepository,
	prompts PromptBuilder,
	llm service.LLMClient,
	cfg RespondConfig,
	logger *zap.Logger,
) *RespondUseCase {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 500
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = 10
	}

	return &RespondUseCase{
		conversations: conversations,
		profiles:      profiles,
		prompts:       prompts,
		llm:           llm,
		cfg:           cfg,
		logger:        logger,
	}
}

// Execute runs one chat turn.
func (uc *RespondUseCase) Execute(ctx context.Context, cmd ChatCommand) (*ChatReply, error) {
	// 1. Validate before touching storage
	content := strings.TrimSpace(cmd.Message)
	if content == "" {
		return nil, errors.NewInvalidInputError("message must not be empty")
	}
	if cmd.OwnerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	convType, ok := valueobject.ParseConversationType(cmd.Type)
	if !ok {
		return nil, errors.NewInvalidInputError("unknown conversation type: " + cmd.Type)
	}

	// 2. Resolve or create the conversation
	conv, err := uc.resolveConversation(ctx, cmd, convType)
	if err != nil {
		return nil, err
	}

	// 3. Persist the user turn
	userMsg, err := entity.NewMessage(uuid.New().String(), conv.ID(), valueobject.RoleUser, content)
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	if err := uc.conversations.AppendMessage(ctx, conv.ID(), userMsg); err != nil {
		uc.logger.Error("Failed to persist user message",
			zap.String("conversation_id", conv.ID()),
			zap.Error(err),
		)
		return nil, err
	}
	conv.Append(userMsg)

	// 4. Build the system instruction (profile absence is not an error)
	profile, err := uc.profiles.FindByOwner(ctx, cmd.OwnerID)
	if err != nil {
		if !errors.IsNotFound(err) {
			uc.logger.Warn("Profile lookup failed, continuing without it",
				zap.String("owner_id", cmd.OwnerID),
				zap.Error(err),
			)
		}
		profile = nil
	}
	systemPrompt := uc.prompts.SystemPrompt(convType, profile)

	// 5. Assemble the context window, oldest first
	window := conv.Window(uc.cfg.ContextWindow)
	llmMessages := make([]service.LLMMessage, 0, len(window)+1)
	llmMessages = append(llmMessages, service.LLMMessage{
		Role:    "system",
		Content: systemPrompt,
	})
	for _, msg := range window {
		llmMessages = append(llmMessages, service.LLMMessage{
			Role:    string(msg.Role()),
			Content: msg.Content(),
		})
	}

	// 6. Generate. The user turn stays persisted on failure; no retry.
	resp, err := uc.llm.Generate(ctx, &service.LLMRequest{
		Messages:    llmMessages,
		Model:       uc.cfg.Model,
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		uc.logger.Error("Generation failed",
			zap.String("conversation_id", conv.ID()),
			zap.Error(err),
		)
		return nil, errors.NewUpstreamError("generation service unavailable", err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, errors.NewUpstreamError("generation service returned an empty reply", nil)
	}

	// 7. Persist the assistant turn
	assistantMsg, err := entity.NewMessage(uuid.New().String(), conv.ID(), valueobject.RoleAssistant, resp.Content)
	if err != nil {
		return nil, errors.NewInternalError("failed to build assistant message: " + err.Error())
	}
	assistantMsg.SetGenerationInfo(resp.ModelUsed, resp.TokensUsed)
	if err := uc.conversations.AppendMessage(ctx, conv.ID(), assistantMsg); err != nil {
		uc.logger.Error("Failed to persist assistant message",
			zap.String("conversation_id", conv.ID()),
			zap.Error(err),
		)
		return nil, err
	}

	return &ChatReply{
		Message:        assistantMsg.Content(),
		ConversationID: conv.ID(),
		Timestamp:      assistantMsg.Timestamp(),
	}, nil
}

// resolveConversation loads the referenced conversation or creates a new
// one. A missing or foreign-owned id surfaces as NOT_FOUND rather than
// silently starting a fresh conversation.
func (uc *RespondUseCase) resolveConversation(ctx context.Context, cmd ChatCommand, convType valueobject.ConversationType) (*entity.Conversation, error) {
	if cmd.ConversationID != "" {
		return uc.conversations.FindByIDAndOwner(ctx, cmd.ConversationID, cmd.OwnerID)
	}

	conv, err := entity.NewConversation(uuid.New().String(), cmd.OwnerID, convType)
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	if err := uc.conversations.Create(ctx, conv); err != nil {
		uc.logger.Error("Failed to create conversation",
			zap.String("owner_id", cmd.OwnerID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("Conversation started",
		zap.String("conversation_id", conv.ID()),
		zap.String("type", string(convType)),
	)
	return conv, nil
}
