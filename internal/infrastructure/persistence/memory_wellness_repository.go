package persistence

import (
	"context"
	"sync"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
)

// MemoryWellnessRepository is an in-memory wellness store for development
// and tests.
type MemoryWellnessRepository struct {
	mu      sync.RWMutex
	entries []*entity.WellnessEntry
}

// NewMemoryWellnessRepository creates an in-memory wellness repository.
func NewMemoryWellnessRepository() repository.WellnessRepository {
	return &MemoryWellnessRepository{}
}

// Save appends one check-in.
func (r *MemoryWellnessRepository) Save(ctx context.Context, entry *entity.WellnessEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

// ListByOwner returns an owner's check-ins, newest first.
func (r *MemoryWellnessRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*entity.WellnessEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.WellnessEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.OwnerID != ownerID {
			continue
		}
		copied := *e
		result = append(result, &copied)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
