package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/pkg/errors"
)

// WellnessResult is one recorded check-in with its assessed risk and
// recommendation.
type WellnessResult struct {
	Entry          *entity.WellnessEntry
	Recommendation string
}

// AutomationUseCase covers the non-chat workflow actions: scheduling
// follow-ups, scoring leads, sweeping due tasks, and wellness check-ins.
type AutomationUseCase struct {
	tasks    repository.TaskRepository
	wellness repository.WellnessRepository
	sweeper  *service.TaskSweeper
	logger   *zap.Logger
}

// NewAutomationUseCase creates the automation use-case.
func NewAutomationUseCase(
	tasks repository.TaskRepository,
	wellness repository.WellnessRepository,
	sweeper *service.TaskSweeper,
	logger *zap.Logger,
) *AutomationUseCase {
	return &AutomationUseCase{
		tasks:    tasks,
		wellness: wellness,
		sweeper:  sweeper,
		logger:   logger,
	}
}

// ScheduleFollowUp stores a pending task to be picked up by the sweep.
// An empty task type defaults to follow_up.
func (uc *AutomationUseCase) ScheduleFollowUp(ctx context.Context, ownerID, taskType string, scheduledFor time.Time, details entity.FollowUpDetails) (*entity.FollowUpTask, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	if scheduledFor.IsZero() {
		return nil, errors.NewInvalidInputError("followUpTime is required")
	}
	if taskType == "" {
		taskType = entity.TaskTypeFollowUp
	}

	task, err := entity.NewFollowUpTask(uuid.New().String(), ownerID, taskType, scheduledFor, details)
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	if err := uc.tasks.Save(ctx, task); err != nil {
		uc.logger.Error("Failed to schedule follow-up",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("Follow-up scheduled",
		zap.String("task_id", task.ID),
		zap.String("type", taskType),
		zap.Time("scheduled_for", scheduledFor),
	)
	return task, nil
}

// ScoreLeads ranks leads by the deterministic scoring rules.
func (uc *AutomationUseCase) ScoreLeads(leads []service.Lead) []service.ScoredLead {
	return service.ScoreLeads(leads)
}

// ProcessDueTasks runs one due-task sweep and returns the completed count.
func (uc *AutomationUseCase) ProcessDueTasks(ctx context.Context) (int, error) {
	return uc.sweeper.SweepOnce(ctx)
}

// ListTasks returns an owner's scheduled tasks.
func (uc *AutomationUseCase) ListTasks(ctx context.Context, ownerID string, limit int) ([]*entity.FollowUpTask, error) {
	if ownerID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	return uc.tasks.ListByOwner(ctx, ownerID, limit)
}

// RecordWellness stores one check-in with its assessed burnout risk and
// returns the canned recommendation for that band.
func (uc *AutomationUseCase) RecordWellness(ctx context.Context, ownerID string, stress, energy, mood int) (*WellnessResult, error) {
	entry, err := entity.NewWellnessEntry(uuid.New().String(), ownerID, stress, energy, mood)
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	entry.BurnoutRisk = service.AssessBurnoutRisk(stress, energy, mood)

	if err := uc.wellness.Save(ctx, entry); err != nil {
		uc.logger.Error("Failed to store wellness entry",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	return &WellnessResult{
		Entry:          entry,
		Recommendation: service.BurnoutRecommendation(entry.BurnoutRisk),
	}, nil
}
