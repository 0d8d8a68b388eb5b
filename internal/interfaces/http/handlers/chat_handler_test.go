package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence"
	"github.com/agentdna/agentdna/internal/infrastructure/prompt"
	"github.com/agentdna/agentdna/internal/interfaces/http/handlers"
)

type stubLLM struct {
	response *service.LLMResponse
	err      error
}

func (s *stubLLM) Generate(ctx context.Context, req *service.LLMRequest) (*service.LLMResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func newChatRouter(llm *stubLLM) (*gin.Engine, *persistence.MemoryConversationRepository) {
	gin.SetMode(gin.TestMode)

	convRepo := persistence.NewMemoryConversationRepository().(*persistence.MemoryConversationRepository)
	profileRepo := persistence.NewMemoryProfileRepository()
	engine := prompt.NewEngine("", zap.NewNop())

	respond := usecase.NewRespondUseCase(convRepo, profileRepo, engine, llm, usecase.RespondConfig{}, zap.NewNop())
	queries := usecase.NewConversationQueryUseCase(convRepo, zap.NewNop())
	handler := handlers.NewChatHandler(respond, queries, zap.NewNop())

	router := gin.New()
	router.POST("/api/v1/chat", handler.Chat)
	router.GET("/api/v1/conversations", handler.ListConversations)
	router.GET("/api/v1/conversations/:id", handler.GetConversation)
	return router, convRepo
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChat_Success(t *testing.T) {
	router, _ := newChatRouter(&stubLLM{response: &service.LLMResponse{
		Content:   "Ask about their budget first.",
		ModelUsed: "gpt-4o-mini",
	}})

	rec := doJSON(router, http.MethodPost, "/api/v1/chat",
		`{"message":"How do I open the call?","userId":"agent-1","conversationType":"coaching"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp handlers.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if resp.Message != "Ask about their budget first." {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.ConversationID == "" || resp.Timestamp == "" {
		t.Errorf("incomplete response: %+v", resp)
	}
}

func TestChat_InvalidBody(t *testing.T) {
	router, _ := newChatRouter(&stubLLM{})

	rec := doJSON(router, http.MethodPost, "/api/v1/chat", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	router, _ := newChatRouter(&stubLLM{})

	rec := doJSON(router, http.MethodPost, "/api/v1/chat", `{"message":"  ","userId":"agent-1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChat_UpstreamFailureReturnsCannedMessage(t *testing.T) {
	router, convRepo := newChatRouter(&stubLLM{err: fmt.Errorf("dial tcp: connection refused")})

	conv, _ := entity.NewConversation("conv-1", "agent-1", valueobject.TypeGeneral)
	_ = convRepo.Create(context.Background(), conv)

	rec := doJSON(router, http.MethodPost, "/api/v1/chat",
		`{"message":"hello?","userId":"agent-1","conversationId":"conv-1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "We're experiencing technical difficulties. Please try again." {
		t.Errorf("error = %q, want the canned failure message", resp["error"])
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("upstream cause must not leak to the client")
	}
}

func TestChat_UnknownConversationNotFound(t *testing.T) {
	router, _ := newChatRouter(&stubLLM{response: &service.LLMResponse{Content: "ok"}})

	rec := doJSON(router, http.MethodPost, "/api/v1/chat",
		`{"message":"hi","userId":"agent-1","conversationId":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetConversation_ReturnsTranscript(t *testing.T) {
	router, _ := newChatRouter(&stubLLM{response: &service.LLMResponse{Content: "reply one"}})

	rec := doJSON(router, http.MethodPost, "/api/v1/chat",
		`{"message":"first question","userId":"agent-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat turn failed: %s", rec.Body.String())
	}
	var reply handlers.ChatResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &reply)

	rec = doJSON(router, http.MethodGet,
		"/api/v1/conversations/"+reply.ConversationID+"?userId=agent-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var view struct {
		ID       string `json:"id"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad transcript JSON: %v", err)
	}
	if len(view.Messages) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(view.Messages))
	}
	if view.Messages[0].Role != "user" || view.Messages[1].Role != "assistant" {
		t.Errorf("transcript order wrong: %+v", view.Messages)
	}
}

func TestGetConversation_ForeignOwner(t *testing.T) {
	router, convRepo := newChatRouter(&stubLLM{})

	conv, _ := entity.NewConversation("conv-1", "agent-1", valueobject.TypeGeneral)
	_ = convRepo.Create(context.Background(), conv)

	rec := doJSON(router, http.MethodGet, "/api/v1/conversations/conv-1?userId=intruder", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListConversations_FilterByType(t *testing.T) {
	router, convRepo := newChatRouter(&stubLLM{})
	ctx := context.Background()

	c1, _ := entity.NewConversation("c1", "agent-1", valueobject.TypeCoaching)
	c2, _ := entity.NewConversation("c2", "agent-1", valueobject.TypeSupport)
	_ = convRepo.Create(ctx, c1)
	_ = convRepo.Create(ctx, c2)

	rec := doJSON(router, http.MethodGet, "/api/v1/conversations?userId=agent-1&conversationType=coaching", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Conversations []struct {
			ID   string `json:"id"`
			Type string `json:"conversationType"`
		} `json:"conversations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad list JSON: %v", err)
	}
	if len(resp.Conversations) != 1 || resp.Conversations[0].ID != "c1" {
		t.Errorf("unexpected list: %+v", resp.Conversations)
	}
}

func TestListConversations_UnknownTypeRejected(t *testing.T) {
	router, _ := newChatRouter(&stubLLM{})

	rec := doJSON(router, http.MethodGet, "/api/v1/conversations?userId=agent-1&conversationType=therapy", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
