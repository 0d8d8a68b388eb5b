package repository

import (
	"context"

	"github.com/agentdna/agentdna/internal/domain/entity"
)

// ProfileRepository stores behavioral profiles, one per owner.
type ProfileRepository interface {
	// FindByOwner returns the owner's profile, or a NOT_FOUND error.
	// Absence is expected for new users and is not a failure of the
	// chat flow; callers decide how to treat it.
	FindByOwner(ctx context.Context, ownerID string) (*entity.BehavioralProfile, error)

	// Upsert creates or replaces the owner's profile.
	Upsert(ctx context.Context, profile *entity.BehavioralProfile) error
}
