package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/pkg/errors"
)

// PersonalityAnalysis is the structured result of a customer analysis.
type PersonalityAnalysis struct {
	PersonalityType         string `json:"personality_type"`
	BuyingIntent            int    `json:"buying_intent"`
	RiskLevel               string `json:"risk_level"`
	CommunicationPreference string `json:"communication_preference"`
	EmotionalState          string `json:"emotional_state"`
}

// CustomerData is the input to a buying-intent prediction.
type CustomerData struct {
	Name             string   `json:"name"`
	Income           float64  `json:"income,omitempty"`
	CreditScore      int      `json:"credit_score,omitempty"`
	ExistingProducts []string `json:"existing_products,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// IntentPrediction is the structured result of a buying-intent prediction.
type IntentPrediction struct {
	BuyingIntent int      `json:"buying_intent"`
	Objections   []string `json:"objections"`
	Strategies   []string `json:"strategies"`
}

// SessionData describes a coaching session to generate suggestions for.
type SessionData struct {
	Type             string  `json:"type"`
	CustomerProfile  string  `json:"customer_profile"`
	Insights         string  `json:"insights"`
	PerformanceScore float64 `json:"performance_score"`
	DurationMinutes  int     `json:"duration_minutes"`
}

// coachingOutput is the expected shape of the suggestion generation.
type coachingOutput struct {
	Suggestions []string `json:"suggestions"`
}

// IntelligenceConfig tunes the analysis generation calls.
type IntelligenceConfig struct {
	Model string
}

// IntelligenceUseCase runs the LLM-backed analysis actions: customer
// personality analysis, buying-intent prediction, coaching suggestions,
// and plain performance tracking.
type IntelligenceUseCase struct {
	insights repository.InsightRepository
	llm      service.LLMClient
	cfg      IntelligenceConfig
	logger   *zap.Logger
}

// NewIntelligenceUseCase creates the intelligence use-case.
func NewIntelligenceUseCase(
	insights repository.InsightRepository,
	llm service.LLMClient,
	cfg IntelligenceConfig,
	logger *zap.Logger,
) *IntelligenceUseCase {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &IntelligenceUseCase{
		insights: insights,
		llm:      llm,
		cfg:      cfg,
		logger:   logger,
	}
}

// AnalyzeCustomerPersonality analyzes a customer transcript and stores the
// resulting insight keyed by (owner, customer name).
func (uc *IntelligenceUseCase) AnalyzeCustomerPersonality(ctx context.Context, ownerID, customerName, transcript string) (*PersonalityAnalysis, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, errors.NewInvalidInputError("conversation data must not be empty")
	}
	if customerName == "" {
		customerName = "Unknown"
	}

	var analysis PersonalityAnalysis
	err := uc.generateJSON(ctx,
		"You are an expert in customer personality analysis. Analyze the conversation and return a JSON with personality_type, buying_intent (0-100), risk_level, communication_preference, and emotional_state.",
		"Analyze this customer conversation: "+transcript,
		&analysis,
	)
	if err != nil {
		return nil, err
	}
	analysis.BuyingIntent = clampScore(analysis.BuyingIntent)

	insight := &entity.CustomerInsight{
		OwnerID:                 ownerID,
		CustomerName:            customerName,
		PersonalityType:         analysis.PersonalityType,
		BuyingIntent:            analysis.BuyingIntent,
		RiskLevel:               analysis.RiskLevel,
		CommunicationPreference: analysis.CommunicationPreference,
		EmotionalState:          analysis.EmotionalState,
		ConversationHistory:     transcript,
		UpdatedAt:               time.Now().UTC(),
	}
	if err := uc.insights.UpsertCustomerInsight(ctx, insight); err != nil {
		uc.logger.Error("Failed to store customer insight",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	return &analysis, nil
}

// PredictBuyingIntent predicts buying intent with likely objections and
// response strategies. The prediction is returned, not stored.
func (uc *IntelligenceUseCase) PredictBuyingIntent(ctx context.Context, ownerID string, customer CustomerData) (*IntentPrediction, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	payload, err := json.Marshal(customer)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode customer data: " + err.Error())
	}

	var prediction IntentPrediction
	err = uc.generateJSON(ctx,
		"Analyze customer data and predict buying intent as a score from 0-100. Also predict likely objections and suggest response strategies. Return as JSON with buying_intent, objections, and strategies.",
		"Customer data: "+string(payload),
		&prediction,
	)
	if err != nil {
		return nil, err
	}
	prediction.BuyingIntent = clampScore(prediction.BuyingIntent)

	return &prediction, nil
}

// GenerateCoachingSuggestions produces actionable coaching advice for a
// session and records the session with its suggestions.
func (uc *IntelligenceUseCase) GenerateCoachingSuggestions(ctx context.Context, ownerID string, session SessionData) ([]string, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode session data: " + err.Error())
	}

	var output coachingOutput
	err = uc.generateJSON(ctx,
		"You are an expert sales coach. Provide real-time coaching suggestions based on the conversation flow. Return specific, actionable advice as JSON with a suggestions array.",
		"Session data: "+string(payload),
		&output,
	)
	if err != nil {
		return nil, err
	}

	record := &entity.CoachingSession{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		SessionType:      session.Type,
		CustomerProfile:  session.CustomerProfile,
		Insights:         session.Insights,
		Suggestions:      output.Suggestions,
		PerformanceScore: session.PerformanceScore,
		DurationMinutes:  session.DurationMinutes,
		CreatedAt:        time.Now().UTC(),
	}
	if err := uc.insights.SaveCoachingSession(ctx, record); err != nil {
		uc.logger.Error("Failed to store coaching session",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	return output.Suggestions, nil
}

// TrackPerformance records one metric value. No generation involved.
func (uc *IntelligenceUseCase) TrackPerformance(ctx context.Context, ownerID, metricType string, value float64, periodStart, periodEnd time.Time) error {
	if ownerID == "" {
		return errors.NewInvalidInputError("userId is required")
	}
	if metricType == "" {
		return errors.NewInvalidInputError("metric type is required")
	}

	metric := &entity.PerformanceMetric{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		MetricType:  metricType,
		MetricValue: value,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		CreatedAt:   time.Now().UTC(),
	}
	return uc.insights.SavePerformanceMetric(ctx, metric)
}

// generateJSON runs one generation call and decodes its output into out.
// A reply that is not valid JSON for the expected shape is an upstream
// failure, not an internal one.
func (uc *IntelligenceUseCase) generateJSON(ctx context.Context, systemPrompt, userPrompt string, out interface{}) error {
	resp, err := uc.llm.Generate(ctx, &service.LLMRequest{
		Messages: []service.LLMMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Model: uc.cfg.Model,
	})
	if err != nil {
		uc.logger.Error("Analysis generation failed", zap.Error(err))
		return errors.NewUpstreamError("analysis service unavailable", err)
	}

	raw := stripCodeFence(resp.Content)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		uc.logger.Warn("Analysis output was not valid JSON",
			zap.String("content", resp.Content),
			zap.Error(err),
		)
		return errors.NewUpstreamError("analysis service returned malformed output", fmt.Errorf("parse analysis: %w", err))
	}
	return nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// routinely wrap JSON output in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
