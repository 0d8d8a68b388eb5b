package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
)

// IntelligenceHandler serves the action-dispatch intelligence endpoint.
type IntelligenceHandler struct {
	intelligence *usecase.IntelligenceUseCase
	logger       *zap.Logger
}

// NewIntelligenceHandler creates the intelligence handler.
func NewIntelligenceHandler(intelligence *usecase.IntelligenceUseCase, logger *zap.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{
		intelligence: intelligence,
		logger:       logger,
	}
}

// IntelligenceRequest is the action envelope. Data is decoded per action
// into a typed payload; unknown fields are simply ignored.
type IntelligenceRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type analyzePayload struct {
	UserID           string `json:"userId"`
	CustomerName     string `json:"customerName"`
	ConversationData string `json:"conversationData"`
}

type predictPayload struct {
	UserID       string               `json:"userId"`
	CustomerData usecase.CustomerData `json:"customerData"`
}

type suggestionsPayload struct {
	UserID      string              `json:"userId"`
	SessionData usecase.SessionData `json:"sessionData"`
}

type trackPayload struct {
	UserID  string `json:"userId"`
	Metrics struct {
		Type        string    `json:"type"`
		Value       float64   `json:"value"`
		PeriodStart time.Time `json:"periodStart"`
		PeriodEnd   time.Time `json:"periodEnd"`
	} `json:"metrics"`
}

// Dispatch handles POST /api/v1/intelligence.
func (h *IntelligenceHandler) Dispatch(c *gin.Context) {
	var req IntelligenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.Action {
	case "analyze_customer_personality":
		h.analyze(c, req.Data)
	case "predict_buying_intent":
		h.predict(c, req.Data)
	case "generate_coaching_suggestions":
		h.suggest(c, req.Data)
	case "track_performance":
		h.track(c, req.Data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action: " + req.Action})
	}
}

func (h *IntelligenceHandler) analyze(c *gin.Context, data json.RawMessage) {
	var payload analyzePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analyze payload"})
		return
	}

	analysis, err := h.intelligence.AnalyzeCustomerPersonality(
		c.Request.Context(), payload.UserID, payload.CustomerName, payload.ConversationData,
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (h *IntelligenceHandler) predict(c *gin.Context, data json.RawMessage) {
	var payload predictPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid predict payload"})
		return
	}

	prediction, err := h.intelligence.PredictBuyingIntent(c.Request.Context(), payload.UserID, payload.CustomerData)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prediction": prediction})
}

func (h *IntelligenceHandler) suggest(c *gin.Context, data json.RawMessage) {
	var payload suggestionsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestions payload"})
		return
	}

	suggestions, err := h.intelligence.GenerateCoachingSuggestions(c.Request.Context(), payload.UserID, payload.SessionData)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *IntelligenceHandler) track(c *gin.Context, data json.RawMessage) {
	var payload trackPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid track payload"})
		return
	}

	err := h.intelligence.TrackPerformance(
		c.Request.Context(),
		payload.UserID,
		payload.Metrics.Type,
		payload.Metrics.Value,
		payload.Metrics.PeriodStart,
		payload.Metrics.PeriodEnd,
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
