package models

import "time"

// WellnessModel stores one wellness check-in.
type WellnessModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	OwnerID     string `gorm:"index;size:64;not null"`
	StressLevel int
	EnergyLevel int
	MoodScore   int
	BurnoutRisk string `gorm:"size:16"`
	CreatedAt   time.Time
}

// TableName overrides the table name.
func (WellnessModel) TableName() string {
	return "wellness_entries"
}
