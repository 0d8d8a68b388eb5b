package models

import "time"

// ProfileModel is the database behavioral-profile record, one per owner.
type ProfileModel struct {
	OwnerID            string `gorm:"primaryKey;size:64"`
	PersonalityType    string `gorm:"size:64"`
	CommunicationStyle string `gorm:"size:64"`
	ConversionRate     float64
	EQScore            float64
	Strengths          string `gorm:"type:text"` // JSON encoded list
	Weaknesses         string `gorm:"type:text"` // JSON encoded list
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the table name.
func (ProfileModel) TableName() string {
	return "behavioral_profiles"
}
