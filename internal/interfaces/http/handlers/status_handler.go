package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentdna/agentdna/internal/infrastructure/llm"
)

// ProviderStatusSource reports the registered generation providers.
type ProviderStatusSource interface {
	ListProviders(ctx context.Context) []llm.ProviderStatus
}

// StatusHandler serves operational status reads.
type StatusHandler struct {
	providers ProviderStatusSource
}

// NewStatusHandler creates the status handler.
func NewStatusHandler(providers ProviderStatusSource) *StatusHandler {
	return &StatusHandler{providers: providers}
}

// Providers handles GET /api/v1/providers: availability, circuit state,
// and call stats per generation provider.
func (h *StatusHandler) Providers(c *gin.Context) {
	statuses := h.providers.ListProviders(c.Request.Context())
	if statuses == nil {
		statuses = []llm.ProviderStatus{}
	}
	c.JSON(http.StatusOK, gin.H{"providers": statuses})
}
