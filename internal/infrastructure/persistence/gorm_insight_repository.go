package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence/models"
	domainErrors "github.com/agentdna/agentdna/pkg/errors"
)

// GormInsightRepository is the GORM-backed store for intelligence outputs.
type GormInsightRepository struct {
	db *gorm.DB
}

// NewGormInsightRepository creates a GORM insight repository.
func NewGormInsightRepository(db *gorm.DB) repository.InsightRepository {
	return &GormInsightRepository{
		db: db,
	}
}

// UpsertCustomerInsight creates or replaces the analysis for (owner, customer).
func (r *GormInsightRepository) UpsertCustomerInsight(ctx context.Context, insight *entity.CustomerInsight) error {
	model := &models.CustomerInsightModel{
		OwnerID:                 insight.OwnerID,
		CustomerName:            insight.CustomerName,
		PersonalityType:         insight.PersonalityType,
		BuyingIntent:            insight.BuyingIntent,
		RiskLevel:               insight.RiskLevel,
		CommunicationPreference: insight.CommunicationPreference,
		EmotionalState:          insight.EmotionalState,
		ConversationHistory:     insight.ConversationHistory,
		UpdatedAt:               insight.UpdatedAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "customer_name"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return domainErrors.NewInternalError("failed to upsert customer insight: " + err.Error())
	}
	return nil
}

// FindCustomerInsight returns the stored analysis or a NOT_FOUND error.
func (r *GormInsightRepository) FindCustomerInsight(ctx context.Context, ownerID, customerName string) (*entity.CustomerInsight, error) {
	var model models.CustomerInsightModel
	err := r.db.WithContext(ctx).
		First(&model, "owner_id = ? AND customer_name = ?", ownerID, customerName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError("customer insight not found")
		}
		return nil, domainErrors.NewInternalError("failed to find customer insight: " + err.Error())
	}

	return &entity.CustomerInsight{
		OwnerID:                 model.OwnerID,
		CustomerName:            model.CustomerName,
		PersonalityType:         model.PersonalityType,
		BuyingIntent:            model.BuyingIntent,
		RiskLevel:               model.RiskLevel,
		CommunicationPreference: model.CommunicationPreference,
		EmotionalState:          model.EmotionalState,
		ConversationHistory:     model.ConversationHistory,
		UpdatedAt:               model.UpdatedAt,
	}, nil
}

// SaveCoachingSession appends a coaching session record.
func (r *GormInsightRepository) SaveCoachingSession(ctx context.Context, session *entity.CoachingSession) error {
	suggestions, err := json.Marshal(session.Suggestions)
	if err != nil {
		return domainErrors.NewInternalError("failed to marshal suggestions: " + err.Error())
	}

	model := &models.CoachingSessionModel{
		ID:               session.ID,
		OwnerID:          session.OwnerID,
		SessionType:      session.SessionType,
		CustomerProfile:  session.CustomerProfile,
		Insights:         session.Insights,
		Suggestions:      string(suggestions),
		PerformanceScore: session.PerformanceScore,
		DurationMinutes:  session.DurationMinutes,
		CreatedAt:        session.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to save coaching session: " + err.Error())
	}
	return nil
}

// SavePerformanceMetric appends one tracked metric value.
func (r *GormInsightRepository) SavePerformanceMetric(ctx context.Context, metric *entity.PerformanceMetric) error {
	model := &models.PerformanceMetricModel{
		ID:          metric.ID,
		OwnerID:     metric.OwnerID,
		MetricType:  metric.MetricType,
		MetricValue: metric.MetricValue,
		PeriodStart: metric.PeriodStart,
		PeriodEnd:   metric.PeriodEnd,
		CreatedAt:   metric.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to save performance metric: " + err.Error())
	}
	return nil
}

// ListPerformanceMetrics returns an owner's metrics recorded since the given
// time, newest first.
func (r *GormInsightRepository) ListPerformanceMetrics(ctx context.Context, ownerID string, since time.Time, limit int) ([]*entity.PerformanceMetric, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc")
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.PerformanceMetricModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, domainErrors.NewInternalError("failed to list performance metrics: " + err.Error())
	}

	metrics := make([]*entity.PerformanceMetric, 0, len(rows))
	for _, m := range rows {
		metrics = append(metrics, &entity.PerformanceMetric{
			ID:          m.ID,
			OwnerID:     m.OwnerID,
			MetricType:  m.MetricType,
			MetricValue: m.MetricValue,
			PeriodStart: m.PeriodStart,
			PeriodEnd:   m.PeriodEnd,
			CreatedAt:   m.CreatedAt,
		})
	}
	return metrics, nil
}
