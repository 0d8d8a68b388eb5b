package entity

import "time"

// TaskStatus is the lifecycle state of a follow-up task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Known follow-up task kinds. Unknown kinds are rejected at the boundary.
const (
	TaskTypeFollowUp = "follow_up"
	TaskTypeReminder = "reminder"
)

// FollowUpDetails is the typed payload of a scheduled task.
type FollowUpDetails struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// FollowUpTask is a scheduled piece of work processed by the due-task sweep.
type FollowUpTask struct {
	ID           string
	OwnerID      string
	TaskType     string
	Status       TaskStatus
	ScheduledFor time.Time
	Details      FollowUpDetails
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// NewFollowUpTask creates a pending task (factory method).
func NewFollowUpTask(id, ownerID, taskType string, scheduledFor time.Time, details FollowUpDetails) (*FollowUpTask, error) {
	if id == "" {
		return nil, ErrInvalidTaskID
	}
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}
	switch taskType {
	case TaskTypeFollowUp, TaskTypeReminder:
	default:
		return nil, ErrInvalidTaskType
	}

	return &FollowUpTask{
		ID:           id,
		OwnerID:      ownerID,
		TaskType:     taskType,
		Status:       TaskPending,
		ScheduledFor: scheduledFor,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// IsDue reports whether the task should be processed at the given time.
func (t *FollowUpTask) IsDue(now time.Time) bool {
	return t.Status == TaskPending && !t.ScheduledFor.After(now)
}

// Complete marks the task done.
func (t *FollowUpTask) Complete(now time.Time) {
	t.Status = TaskCompleted
	completed := now.UTC()
	t.CompletedAt = &completed
}
