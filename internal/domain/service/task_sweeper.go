package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/pkg/safego"
)

// SweeperConfig configures the periodic due-task sweep.
type SweeperConfig struct {
	Interval time.Duration // check interval (default: 1m)
	Enabled  bool
}

// TaskSweeper periodically completes follow-up tasks whose scheduled time
// has passed. The chat flow is strictly request/response; this is the one
// background loop in the service.
type TaskSweeper struct {
	config SweeperConfig
	tasks  repository.TaskRepository
	logger *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mu      sync.Mutex
}

// NewTaskSweeper creates a sweeper over the given task store.
func NewTaskSweeper(cfg SweeperConfig, tasks repository.TaskRepository, logger *zap.Logger) *TaskSweeper {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}

	return &TaskSweeper{
		config: cfg,
		tasks:  tasks,
		logger: logger.With(zap.String("component", "task-sweeper")),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the sweep loop. No-op when disabled or already running.
func (s *TaskSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Task sweeper disabled")
		return
	}
	if s.running {
		return
	}

	s.running = true
	s.logger.Info("Starting task sweeper",
		zap.Duration("interval", s.config.Interval),
	)

	safego.Go(s.logger, "task-sweeper", s.loop)
}

// Stop halts the sweep loop.
func (s *TaskSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.cancel()
		s.running = false
		s.logger.Info("Task sweeper stopped")
	}
}

func (s *TaskSweeper) loop() {
	// Run once immediately on start
	if _, err := s.SweepOnce(s.ctx); err != nil {
		s.logger.Warn("Initial sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(s.ctx); err != nil {
				s.logger.Warn("Sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce processes every due pending task and returns how many completed.
// Failures on individual tasks are logged and skipped so one bad record
// cannot stall the rest of the sweep.
func (s *TaskSweeper) SweepOnce(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	due, err := s.tasks.FindDue(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	processed := 0
	for _, task := range due {
		s.process(task)

		task.Complete(now)
		if err := s.tasks.Save(ctx, task); err != nil {
			s.logger.Error("Failed to complete task",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			continue
		}
		processed++
	}

	s.logger.Info("Due tasks processed",
		zap.Int("due", len(due)),
		zap.Int("completed", processed),
	)
	return processed, nil
}

// process dispatches one due task by kind. Delivery integrations (mail,
// SMS, push) hang off this switch.
func (s *TaskSweeper) process(task *entity.FollowUpTask) {
	switch task.TaskType {
	case entity.TaskTypeFollowUp:
		s.logger.Info("Processing follow-up",
			zap.String("task_id", task.ID),
			zap.String("owner", task.OwnerID),
			zap.String("customer", task.Details.CustomerName),
		)
	case entity.TaskTypeReminder:
		s.logger.Info("Processing reminder",
			zap.String("task_id", task.ID),
			zap.String("owner", task.OwnerID),
		)
	}
}
