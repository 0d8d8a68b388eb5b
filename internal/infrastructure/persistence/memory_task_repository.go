package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
)

// MemoryTaskRepository is an in-memory task store for development and tests.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*entity.FollowUpTask
}

// NewMemoryTaskRepository creates an in-memory task repository.
func NewMemoryTaskRepository() repository.TaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]*entity.FollowUpTask),
	}
}

// Save inserts or updates a task.
func (r *MemoryTaskRepository) Save(ctx context.Context, task *entity.FollowUpTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

// FindDue returns pending tasks scheduled at or before the given time,
// soonest first.
func (r *MemoryTaskRepository) FindDue(ctx context.Context, now time.Time) ([]*entity.FollowUpTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []*entity.FollowUpTask
	for _, t := range r.tasks {
		if t.IsDue(now) {
			copied := *t
			due = append(due, &copied)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledFor.Before(due[j].ScheduledFor)
	})
	return due, nil
}

// ListByOwner returns an owner's tasks, soonest scheduled first.
func (r *MemoryTaskRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*entity.FollowUpTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.FollowUpTask
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledFor.Before(result[j].ScheduledFor)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
