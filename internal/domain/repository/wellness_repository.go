package repository

import (
	"context"

	"github.com/agentdna/agentdna/internal/domain/entity"
)

// WellnessRepository stores wellness check-ins.
type WellnessRepository interface {
	// Save appends one check-in.
	Save(ctx context.Context, entry *entity.WellnessEntry) error

	// ListByOwner returns an owner's check-ins, newest first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*entity.WellnessEntry, error)
}
