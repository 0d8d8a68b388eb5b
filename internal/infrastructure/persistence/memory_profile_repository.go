package persistence

import (
	"context"
	"sync"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/pkg/errors"
)

// MemoryProfileRepository is an in-memory profile store for development
// and tests.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*entity.BehavioralProfile
}

// NewMemoryProfileRepository creates an in-memory profile repository.
func NewMemoryProfileRepository() repository.ProfileRepository {
	return &MemoryProfileRepository{
		profiles: make(map[string]*entity.BehavioralProfile),
	}
}

// FindByOwner returns the owner's profile or a NOT_FOUND error.
func (r *MemoryProfileRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.BehavioralProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[ownerID]
	if !ok {
		return nil, errors.NewNotFoundError("profile not found")
	}
	return profile, nil
}

// Upsert creates or replaces the owner's profile.
func (r *MemoryProfileRepository) Upsert(ctx context.Context, profile *entity.BehavioralProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.OwnerID()] = profile
	return nil
}
