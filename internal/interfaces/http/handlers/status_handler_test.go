package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/agentdna/agentdna/internal/infrastructure/llm"
	"github.com/agentdna/agentdna/internal/interfaces/http/handlers"
)

type stubProviderSource struct {
	statuses []llm.ProviderStatus
}

func (s *stubProviderSource) ListProviders(ctx context.Context) []llm.ProviderStatus {
	return s.statuses
}

func newStatusRouter(source handlers.ProviderStatusSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewStatusHandler(source)
	router := gin.New()
	router.GET("/api/v1/providers", handler.Providers)
	return router
}

func TestProviders_ReturnsStatuses(t *testing.T) {
	router := newStatusRouter(&stubProviderSource{statuses: []llm.ProviderStatus{
		{
			Name:         "openai",
			Models:       []string{"gpt-4o-mini"},
			Available:    true,
			TotalCalls:   7,
			FailureCount: 2,
			CircuitState: "closed",
		},
		{
			Name:         "backup",
			Available:    false,
			CircuitState: "open",
		},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Providers []llm.ProviderStatus `json:"providers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if len(resp.Providers) != 2 {
		t.Fatalf("providers = %d, want 2", len(resp.Providers))
	}
	if resp.Providers[0].Name != "openai" || resp.Providers[0].TotalCalls != 7 {
		t.Errorf("first provider = %+v", resp.Providers[0])
	}
	if resp.Providers[1].CircuitState != "open" {
		t.Errorf("second provider circuit = %q", resp.Providers[1].CircuitState)
	}
}

func TestProviders_EmptyListNotNull(t *testing.T) {
	router := newStatusRouter(&stubProviderSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if string(resp["providers"]) != "[]" {
		t.Errorf("providers = %s, want []", resp["providers"])
	}
}
