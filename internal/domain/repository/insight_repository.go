package repository

import (
	"context"
	"time"

	"github.com/agentdna/agentdna/internal/domain/entity"
)

// InsightRepository persists the outputs of the intelligence actions:
// customer analyses, coaching sessions, and performance metrics.
type InsightRepository interface {
	// UpsertCustomerInsight creates or replaces the analysis for
	// (owner, customer name).
	UpsertCustomerInsight(ctx context.Context, insight *entity.CustomerInsight) error

	// FindCustomerInsight returns the stored analysis or a NOT_FOUND error.
	FindCustomerInsight(ctx context.Context, ownerID, customerName string) (*entity.CustomerInsight, error)

	// SaveCoachingSession appends a coaching session record.
	SaveCoachingSession(ctx context.Context, session *entity.CoachingSession) error

	// SavePerformanceMetric appends one tracked metric value.
	SavePerformanceMetric(ctx context.Context, metric *entity.PerformanceMetric) error

	// ListPerformanceMetrics returns an owner's metrics within a period,
	// newest first.
	ListPerformanceMetrics(ctx context.Context, ownerID string, since time.Time, limit int) ([]*entity.PerformanceMetric, error)
}
