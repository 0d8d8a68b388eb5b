package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence/models"
	domainErrors "github.com/agentdna/agentdna/pkg/errors"
)

// GormWellnessRepository is the GORM-backed wellness check-in store.
type GormWellnessRepository struct {
	db *gorm.DB
}

// NewGormWellnessRepository creates a GORM wellness repository.
func NewGormWellnessRepository(db *gorm.DB) repository.WellnessRepository {
	return &GormWellnessRepository{
		db: db,
	}
}

// Save appends one check-in.
func (r *GormWellnessRepository) Save(ctx context.Context, entry *entity.WellnessEntry) error {
	model := &models.WellnessModel{
		ID:          entry.ID,
		OwnerID:     entry.OwnerID,
		StressLevel: entry.StressLevel,
		EnergyLevel: entry.EnergyLevel,
		MoodScore:   entry.MoodScore,
		BurnoutRisk: string(entry.BurnoutRisk),
		CreatedAt:   entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to save wellness entry: " + err.Error())
	}
	return nil
}

// ListByOwner returns an owner's check-ins, newest first.
func (r *GormWellnessRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*entity.WellnessEntry, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.WellnessModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, domainErrors.NewInternalError("failed to list wellness entries: " + err.Error())
	}

	entries := make([]*entity.WellnessEntry, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, &entity.WellnessEntry{
			ID:          m.ID,
			OwnerID:     m.OwnerID,
			StressLevel: m.StressLevel,
			EnergyLevel: m.EnergyLevel,
			MoodScore:   m.MoodScore,
			BurnoutRisk: entity.BurnoutRisk(m.BurnoutRisk),
			CreatedAt:   m.CreatedAt,
		})
	}
	return entries, nil
}
