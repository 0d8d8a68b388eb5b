package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/entity"
)

// ChatHandler serves the chat turn endpoint and transcript reads.
type ChatHandler struct {
	respond *usecase.RespondUseCase
	queries *usecase.ConversationQueryUseCase
	logger  *zap.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(respond *usecase.RespondUseCase, queries *usecase.ConversationQueryUseCase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		respond: respond,
		queries: queries,
		logger:  logger,
	}
}

// ChatRequest is the chat turn payload.
type ChatRequest struct {
	Message          string `json:"message"`
	ConversationID   string `json:"conversationId"`
	UserID           string `json:"userId"`
	ConversationType string `json:"conversationType"`
}

// ChatResponse is the chat turn reply.
type ChatResponse struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	Timestamp      string `json:"timestamp"`
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.respond.Execute(c.Request.Context(), usecase.ChatCommand{
		OwnerID:        req.UserID,
		ConversationID: req.ConversationID,
		Type:           req.ConversationType,
		Message:        req.Message,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Message:        reply.Message,
		ConversationID: reply.ConversationID,
		Timestamp:      reply.Timestamp.UTC().Format(time.RFC3339),
	})
}

// messageView is one transcript entry in API responses.
type messageView struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	ModelUsed  string `json:"modelUsed,omitempty"`
	TokensUsed int    `json:"tokensUsed,omitempty"`
}

// conversationView is a conversation in API responses; Messages is nil
// for list views.
type conversationView struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Type      string        `json:"conversationType"`
	Messages  []messageView `json:"messages,omitempty"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// GetConversation handles GET /api/v1/conversations/:id. The stored
// transcript returned here is authoritative; clients reconcile against it.
func (h *ChatHandler) GetConversation(c *gin.Context) {
	conv, err := h.queries.Get(c.Request.Context(), c.Param("id"), c.Query("userId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toConversationView(conv, true))
}

// ListConversations handles GET /api/v1/conversations.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	convs, err := h.queries.List(c.Request.Context(), c.Query("userId"), c.Query("conversationType"), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	views := make([]conversationView, 0, len(convs))
	for _, conv := range convs {
		views = append(views, toConversationView(conv, false))
	}
	c.JSON(http.StatusOK, gin.H{"conversations": views})
}

func toConversationView(conv *entity.Conversation, withMessages bool) conversationView {
	view := conversationView{
		ID:        conv.ID(),
		UserID:    conv.OwnerID(),
		Type:      string(conv.Type()),
		CreatedAt: conv.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt: conv.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if !withMessages {
		return view
	}

	messages := conv.Messages()
	view.Messages = make([]messageView, 0, len(messages))
	for _, msg := range messages {
		view.Messages = append(view.Messages, messageView{
			ID:         msg.ID(),
			Role:       string(msg.Role()),
			Content:    msg.Content(),
			Timestamp:  msg.Timestamp().UTC().Format(time.RFC3339),
			ModelUsed:  msg.ModelUsed(),
			TokensUsed: msg.TokensUsed(),
		})
	}
	return view
}
