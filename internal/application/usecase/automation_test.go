package usecase_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/internal/infrastructure/persistence"
	"github.com/agentdna/agentdna/pkg/errors"
)

func newAutomationUseCase() (*usecase.AutomationUseCase, *persistence.MemoryTaskRepository, *persistence.MemoryWellnessRepository) {
	taskRepo := persistence.NewMemoryTaskRepository().(*persistence.MemoryTaskRepository)
	wellnessRepo := persistence.NewMemoryWellnessRepository().(*persistence.MemoryWellnessRepository)
	sweeper := service.NewTaskSweeper(service.SweeperConfig{}, taskRepo, zap.NewNop())

	uc := usecase.NewAutomationUseCase(taskRepo, wellnessRepo, sweeper, zap.NewNop())
	return uc, taskRepo, wellnessRepo
}

func TestScheduleFollowUp_DefaultsTypeAndPersists(t *testing.T) {
	uc, taskRepo, _ := newAutomationUseCase()

	when := time.Now().Add(2 * time.Hour)
	task, err := uc.ScheduleFollowUp(context.Background(), "agent-1", "", when, entity.FollowUpDetails{
		CustomerName: "Dana",
		Phone:        "555-0100",
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if task.TaskType != entity.TaskTypeFollowUp {
		t.Errorf("empty task type must default to follow_up, got %s", task.TaskType)
	}
	if task.Status != entity.TaskPending {
		t.Errorf("new task must be pending, got %s", task.Status)
	}

	stored, _ := taskRepo.ListByOwner(context.Background(), "agent-1", 0)
	if len(stored) != 1 || stored[0].Details.CustomerName != "Dana" {
		t.Fatalf("task not persisted with details: %+v", stored)
	}
}

func TestScheduleFollowUp_RejectsUnknownType(t *testing.T) {
	uc, _, _ := newAutomationUseCase()

	_, err := uc.ScheduleFollowUp(context.Background(), "agent-1", "carrier_pigeon", time.Now(), entity.FollowUpDetails{})
	if !errors.IsInvalidInput(err) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestProcessDueTasks_CompletesOnlyDue(t *testing.T) {
	uc, taskRepo, _ := newAutomationUseCase()
	ctx := context.Background()

	past, _ := entity.NewFollowUpTask("t1", "agent-1", entity.TaskTypeFollowUp, time.Now().Add(-time.Hour), entity.FollowUpDetails{})
	future, _ := entity.NewFollowUpTask("t2", "agent-1", entity.TaskTypeReminder, time.Now().Add(time.Hour), entity.FollowUpDetails{})
	_ = taskRepo.Save(ctx, past)
	_ = taskRepo.Save(ctx, future)

	processed, err := uc.ProcessDueTasks(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 task processed, got %d", processed)
	}

	remaining, _ := taskRepo.FindDue(ctx, time.Now().Add(2*time.Hour))
	if len(remaining) != 1 || remaining[0].ID != "t2" {
		t.Errorf("future task should still be pending: %+v", remaining)
	}
}

func TestListTasks_RequiresOwner(t *testing.T) {
	uc, taskRepo, _ := newAutomationUseCase()
	ctx := context.Background()

	if _, err := uc.ListTasks(ctx, "", 0); !errors.IsInvalidInput(err) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}

	later, _ := entity.NewFollowUpTask("t-later", "agent-1", entity.TaskTypeFollowUp, time.Now().Add(2*time.Hour), entity.FollowUpDetails{})
	sooner, _ := entity.NewFollowUpTask("t-sooner", "agent-1", entity.TaskTypeFollowUp, time.Now().Add(time.Hour), entity.FollowUpDetails{})
	_ = taskRepo.Save(ctx, later)
	_ = taskRepo.Save(ctx, sooner)

	tasks, err := uc.ListTasks(ctx, "agent-1", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "t-sooner" {
		t.Errorf("tasks must come back soonest first: %+v", tasks)
	}
}

func TestRecordWellness_RiskBands(t *testing.T) {
	tests := []struct {
		name                 string
		stress, energy, mood int
		want                 entity.BurnoutRisk
	}{
		{"exhausted", 90, 10, 20, entity.BurnoutHigh},
		{"strained", 60, 50, 60, entity.BurnoutMedium},
		{"healthy", 20, 80, 85, entity.BurnoutLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, wellnessRepo := newAutomationUseCase()

			result, err := uc.RecordWellness(context.Background(), "agent-1", tt.stress, tt.energy, tt.mood)
			if err != nil {
				t.Fatalf("record failed: %v", err)
			}
			if result.Entry.BurnoutRisk != tt.want {
				t.Errorf("risk = %s, want %s", result.Entry.BurnoutRisk, tt.want)
			}
			if result.Recommendation == "" {
				t.Error("expected a recommendation")
			}

			stored, _ := wellnessRepo.ListByOwner(context.Background(), "agent-1", 0)
			if len(stored) != 1 || stored[0].BurnoutRisk != tt.want {
				t.Errorf("entry not persisted with risk: %+v", stored)
			}
		})
	}
}

func TestRecordWellness_ScoreOutOfRange(t *testing.T) {
	uc, _, _ := newAutomationUseCase()

	if _, err := uc.RecordWellness(context.Background(), "agent-1", 120, 50, 50); !errors.IsInvalidInput(err) {
		t.Fatalf("expected INVALID_INPUT for out-of-range score, got %v", err)
	}
}
