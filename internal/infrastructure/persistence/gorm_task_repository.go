package persistence

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence/models"
	domainErrors "github.com/agentdna/agentdna/pkg/errors"
)

// GormTaskRepository is the GORM-backed follow-up task store.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a GORM task repository.
func NewGormTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &GormTaskRepository{
		db: db,
	}
}

// Save inserts or updates a task.
func (r *GormTaskRepository) Save(ctx context.Context, task *entity.FollowUpTask) error {
	model, err := r.toModel(task)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return domainErrors.NewInternalError("failed to save task: " + err.Error())
	}
	return nil
}

// FindDue returns pending tasks scheduled at or before the given time,
// soonest first.
func (r *GormTaskRepository) FindDue(ctx context.Context, now time.Time) ([]*entity.FollowUpTask, error) {
	var rows []models.TaskModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_for <= ?", string(entity.TaskPending), now).
		Order("scheduled_for asc").
		Find(&rows).Error
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to find due tasks: " + err.Error())
	}
	return r.toEntities(rows)
}

// ListByOwner returns an owner's tasks, soonest scheduled first.
func (r *GormTaskRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*entity.FollowUpTask, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("scheduled_for asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.TaskModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, domainErrors.NewInternalError("failed to list tasks: " + err.Error())
	}
	return r.toEntities(rows)
}

func (r *GormTaskRepository) toModel(task *entity.FollowUpTask) (*models.TaskModel, error) {
	details, err := json.Marshal(task.Details)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to marshal task details: " + err.Error())
	}
	return &models.TaskModel{
		ID:           task.ID,
		OwnerID:      task.OwnerID,
		TaskType:     task.TaskType,
		Status:       string(task.Status),
		ScheduledFor: task.ScheduledFor,
		Details:      string(details),
		CreatedAt:    task.CreatedAt,
		CompletedAt:  task.CompletedAt,
	}, nil
}

func (r *GormTaskRepository) toEntities(rows []models.TaskModel) ([]*entity.FollowUpTask, error) {
	tasks := make([]*entity.FollowUpTask, 0, len(rows))
	for _, m := range rows {
		var details entity.FollowUpDetails
		if m.Details != "" {
			if err := json.Unmarshal([]byte(m.Details), &details); err != nil {
				details = entity.FollowUpDetails{}
			}
		}
		tasks = append(tasks, &entity.FollowUpTask{
			ID:           m.ID,
			OwnerID:      m.OwnerID,
			TaskType:     m.TaskType,
			Status:       entity.TaskStatus(m.Status),
			ScheduledFor: m.ScheduledFor,
			Details:      details,
			CreatedAt:    m.CreatedAt,
			CompletedAt:  m.CompletedAt,
		})
	}
	return tasks, nil
}
