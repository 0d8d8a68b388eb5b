package repository

import (
	"context"
	"time"

	"github.com/agentdna/agentdna/internal/domain/entity"
)

// TaskRepository stores scheduled follow-up tasks.
type TaskRepository interface {
	// Save inserts or updates a task.
	Save(ctx context.Context, task *entity.FollowUpTask) error

	// FindDue returns pending tasks scheduled at or before the given time.
	FindDue(ctx context.Context, now time.Time) ([]*entity.FollowUpTask, error)

	// ListByOwner returns an owner's tasks, soonest scheduled first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*entity.FollowUpTask, error)
}
