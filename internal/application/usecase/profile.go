package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/pkg/errors"
)

// ProfileInput is the inbound profile payload.
type ProfileInput struct {
	PersonalityType    string
	CommunicationStyle string
	ConversionRate     float64
	EQScore            float64
	Strengths          []string
	Weaknesses         []string
}

// ProfileUseCase reads and updates behavioral profiles.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewProfileUseCase creates the profile use-case.
func NewProfileUseCase(profiles repository.ProfileRepository, logger *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profiles: profiles,
		logger:   logger,
	}
}

// Get returns the owner's profile or a NOT_FOUND error.
func (uc *ProfileUseCase) Get(ctx context.Context, ownerID string) (*entity.BehavioralProfile, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	return uc.profiles.FindByOwner(ctx, ownerID)
}

// Upsert creates or replaces the owner's profile.
func (uc *ProfileUseCase) Upsert(ctx context.Context, ownerID string, input ProfileInput) (*entity.BehavioralProfile, error) {
	profile, err := entity.NewBehavioralProfile(
		ownerID,
		input.PersonalityType,
		input.CommunicationStyle,
		input.ConversionRate,
		input.EQScore,
		input.Strengths,
		input.Weaknesses,
	)
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}

	if err := uc.profiles.Upsert(ctx, profile); err != nil {
		uc.logger.Error("Failed to store profile",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}
	return profile, nil
}
