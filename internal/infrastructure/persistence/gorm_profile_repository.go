package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence/models"
	domainErrors "github.com/agentdna/agentdna/pkg/errors"
)

// GormProfileRepository is the GORM-backed behavioral-profile store.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &GormProfileRepository{
		db: db,
	}
}

// FindByOwner returns the owner's profile or a NOT_FOUND error.
func (r *GormProfileRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.BehavioralProfile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.NewNotFoundError("profile not found")
		}
		return nil, domainErrors.NewInternalError("failed to find profile: " + err.Error())
	}
	return r.toEntity(&model)
}

// Upsert creates or replaces the owner's profile.
func (r *GormProfileRepository) Upsert(ctx context.Context, profile *entity.BehavioralProfile) error {
	model, err := r.toModel(profile)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to save profile: " + err.Error())
	}
	return nil
}

func (r *GormProfileRepository) toModel(p *entity.BehavioralProfile) (*models.ProfileModel, error) {
	strengths, err := json.Marshal(p.Strengths())
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to marshal strengths: " + err.Error())
	}
	weaknesses, err := json.Marshal(p.Weaknesses())
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to marshal weaknesses: " + err.Error())
	}

	return &models.ProfileModel{
		OwnerID:            p.OwnerID(),
		PersonalityType:    p.PersonalityType(),
		CommunicationStyle: p.CommunicationStyle(),
		ConversionRate:     p.ConversionRate(),
		EQScore:            p.EQScore(),
		Strengths:          string(strengths),
		Weaknesses:         string(weaknesses),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}, nil
}

func (r *GormProfileRepository) toEntity(m *models.ProfileModel) (*entity.BehavioralProfile, error) {
	var strengths, weaknesses []string
	if m.Strengths != "" {
		if err := json.Unmarshal([]byte(m.Strengths), &strengths); err != nil {
			strengths = nil
		}
	}
	if m.Weaknesses != "" {
		if err := json.Unmarshal([]byte(m.Weaknesses), &weaknesses); err != nil {
			weaknesses = nil
		}
	}

	return entity.ReconstructBehavioralProfile(
		m.OwnerID,
		m.PersonalityType,
		m.CommunicationStyle,
		m.ConversionRate,
		m.EQScore,
		strengths,
		weaknesses,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
