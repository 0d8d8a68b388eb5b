package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/pkg/errors"
)

// MemoryInsightRepository is an in-memory store for intelligence outputs,
// used in development and tests.
type MemoryInsightRepository struct {
	mu       sync.RWMutex
	insights map[string]*entity.CustomerInsight // keyed by owner + "\x00" + customer
	sessions []*entity.CoachingSession
	metrics  []*entity.PerformanceMetric
}

// NewMemoryInsightRepository creates an in-memory insight repository.
func NewMemoryInsightRepository() repository.InsightRepository {
	return &MemoryInsightRepository{
		insights: make(map[string]*entity.CustomerInsight),
	}
}

func insightKey(ownerID, customerName string) string {
	return ownerID + "\x00" + customerName
}

// UpsertCustomerInsight creates or replaces the analysis for (owner, customer).
func (r *MemoryInsightRepository) UpsertCustomerInsight(ctx context.Context, insight *entity.CustomerInsight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *insight
	r.insights[insightKey(insight.OwnerID, insight.CustomerName)] = &copied
	return nil
}

// FindCustomerInsight returns the stored analysis or a NOT_FOUND error.
func (r *MemoryInsightRepository) FindCustomerInsight(ctx context.Context, ownerID, customerName string) (*entity.CustomerInsight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	insight, ok := r.insights[insightKey(ownerID, customerName)]
	if !ok {
		return nil, errors.NewNotFoundError("customer insight not found")
	}
	copied := *insight
	return &copied, nil
}

// SaveCoachingSession appends a coaching session record.
func (r *MemoryInsightRepository) SaveCoachingSession(ctx context.Context, session *entity.CoachingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions = append(r.sessions, &copied)
	return nil
}

// SavePerformanceMetric appends one tracked metric value.
func (r *MemoryInsightRepository) SavePerformanceMetric(ctx context.Context, metric *entity.PerformanceMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *metric
	r.metrics = append(r.metrics, &copied)
	return nil
}

// ListPerformanceMetrics returns an owner's metrics recorded since the given
// time, newest first.
func (r *MemoryInsightRepository) ListPerformanceMetrics(ctx context.Context, ownerID string, since time.Time, limit int) ([]*entity.PerformanceMetric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.PerformanceMetric
	// metrics are appended in arrival order; walk backwards for newest first
	for i := len(r.metrics) - 1; i >= 0; i-- {
		m := r.metrics[i]
		if m.OwnerID != ownerID {
			continue
		}
		if !since.IsZero() && m.CreatedAt.Before(since) {
			continue
		}
		copied := *m
		result = append(result, &copied)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
