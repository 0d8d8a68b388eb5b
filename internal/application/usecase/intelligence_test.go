package usecase_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence"
	"github.com/agentdna/agentdna/pkg/errors"
)

func newIntelligenceUseCase(llm *MockLLMClient) (*usecase.IntelligenceUseCase, *persistence.MemoryInsightRepository) {
	repo := persistence.NewMemoryInsightRepository().(*persistence.MemoryInsightRepository)
	uc := usecase.NewIntelligenceUseCase(repo, llm, usecase.IntelligenceConfig{}, zap.NewNop())
	return uc, repo
}

func TestAnalyzeCustomerPersonality_StoresInsight(t *testing.T) {
	llm := &MockLLMClient{response: &service.LLMResponse{
		Content: `{"personality_type":"analytical","buying_intent":72,"risk_level":"low","communication_preference":"email","emotional_state":"curious"}`,
	}}
	uc, repo := newIntelligenceUseCase(llm)

	analysis, err := uc.AnalyzeCustomerPersonality(context.Background(), "agent-1", "Dana", "transcript text")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis.PersonalityType != "analytical" || analysis.BuyingIntent != 72 {
		t.Errorf("unexpected analysis: %+v", analysis)
	}

	stored, err := repo.FindCustomerInsight(context.Background(), "agent-1", "Dana")
	if err != nil {
		t.Fatalf("insight not stored: %v", err)
	}
	if stored.ConversationHistory != "transcript text" {
		t.Errorf("transcript not stored with insight")
	}
}

func TestAnalyzeCustomerPersonality_FencedJSONAccepted(t *testing.T) {
	llm := &MockLLMClient{response: &service.LLMResponse{
		Content: "```json\n{\"personality_type\":\"driver\",\"buying_intent\":150}\n```",
	}}
	uc, _ := newIntelligenceUseCase(llm)

	analysis, err := uc.AnalyzeCustomerPersonality(context.Background(), "agent-1", "", "some transcript")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis.BuyingIntent != 100 {
		t.Errorf("buying intent must be clamped to 100, got %d", analysis.BuyingIntent)
	}
}

func TestAnalyzeCustomerPersonality_MalformedOutput_Upstream(t *testing.T) {
	llm := &MockLLMClient{response: &service.LLMResponse{
		Content: "Sure! The customer seems analytical.",
	}}
	uc, repo := newIntelligenceUseCase(llm)

	_, err := uc.AnalyzeCustomerPersonality(context.Background(), "agent-1", "Dana", "transcript")
	if !errors.IsUpstream(err) {
		t.Fatalf("expected SERVICE_UNAVAILABLE on malformed output, got %v", err)
	}
	if _, err := repo.FindCustomerInsight(context.Background(), "agent-1", "Dana"); !errors.IsNotFound(err) {
		t.Error("nothing must be stored on malformed output")
	}
}

func TestAnalyzeCustomerPersonality_EmptyTranscript_Rejected(t *testing.T) {
	uc, _ := newIntelligenceUseCase(&MockLLMClient{})

	_, err := uc.AnalyzeCustomerPersonality(context.Background(), "agent-1", "Dana", "  ")
	if !errors.IsInvalidInput(err) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestPredictBuyingIntent_ReturnsWithoutPersisting(t *testing.T) {
	llm := &MockLLMClient{response: &service.LLMResponse{
		Content: `{"buying_intent":130,"objections":["price too high"],"strategies":["lead with value"]}`,
	}}
	uc, repo := newIntelligenceUseCase(llm)

	prediction, err := uc.PredictBuyingIntent(context.Background(), "agent-1", usecase.CustomerData{
		Name:        "Dana",
		Income:      72000,
		CreditScore: 710,
	})
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if prediction.BuyingIntent != 100 {
		t.Errorf("buying intent must be clamped to 100, got %d", prediction.BuyingIntent)
	}
	if len(prediction.Objections) != 1 || prediction.Objections[0] != "price too high" {
		t.Errorf("unexpected objections: %v", prediction.Objections)
	}
	if len(prediction.Strategies) != 1 || prediction.Strategies[0] != "lead with value" {
		t.Errorf("unexpected strategies: %v", prediction.Strategies)
	}

	// Predictions are returned to the caller, never stored.
	if _, err := repo.FindCustomerInsight(context.Background(), "agent-1", "Dana"); !errors.IsNotFound(err) {
		t.Error("prediction must not be persisted as an insight")
	}
}

func TestPredictBuyingIntent_MalformedOutput_Upstream(t *testing.T) {
	llm := &MockLLMClient{response: &service.LLMResponse{Content: "the customer seems keen"}}
	uc, _ := newIntelligenceUseCase(llm)

	_, err := uc.PredictBuyingIntent(context.Background(), "agent-1", usecase.CustomerData{Name: "Dana"})
	if !errors.IsUpstream(err) {
		t.Fatalf("expected SERVICE_UNAVAILABLE on malformed output, got %v", err)
	}
}

func TestGenerateCoachingSuggestions_SavesSession(t *testing.T) {
	llm := &MockLLMClient{response: &service.LLMResponse{
		Content: `{"suggestions":["slow down","ask open questions"]}`,
	}}
	uc, _ := newIntelligenceUseCase(llm)

	suggestions, err := uc.GenerateCoachingSuggestions(context.Background(), "agent-1", usecase.SessionData{
		Type:             "live_call",
		PerformanceScore: 7.5,
		DurationMinutes:  20,
	})
	if err != nil {
		t.Fatalf("suggestions failed: %v", err)
	}
	if len(suggestions) != 2 || suggestions[0] != "slow down" {
		t.Errorf("unexpected suggestions: %v", suggestions)
	}
}

func TestTrackPerformance_PersistsMetric(t *testing.T) {
	llm := &MockLLMClient{}
	uc, repo := newIntelligenceUseCase(llm)

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()
	if err := uc.TrackPerformance(context.Background(), "agent-1", "conversion_rate", 0.31, start, end); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	metrics, err := repo.ListPerformanceMetrics(context.Background(), "agent-1", time.Time{}, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metrics) != 1 || metrics[0].MetricType != "conversion_rate" {
		t.Fatalf("metric not stored: %+v", metrics)
	}
	if len(llm.requests) != 0 {
		t.Error("track_performance must not call the generation service")
	}
}

func TestTrackPerformance_RequiresMetricType(t *testing.T) {
	uc, _ := newIntelligenceUseCase(&MockLLMClient{})

	err := uc.TrackPerformance(context.Background(), "agent-1", "", 1, time.Time{}, time.Time{})
	if !errors.IsInvalidInput(err) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
