package models

import "time"

// TaskModel stores one scheduled follow-up task.
type TaskModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	OwnerID      string `gorm:"index;size:64;not null"`
	TaskType     string `gorm:"size:32;not null"` // follow_up, reminder
	Status       string `gorm:"index;size:16;not null"`
	ScheduledFor time.Time `gorm:"index"`
	Details      string    `gorm:"type:text"` // JSON encoded payload
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// TableName overrides the table name.
func (TaskModel) TableName() string {
	return "automation_tasks"
}
