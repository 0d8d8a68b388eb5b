package models

import "time"

// CustomerInsightModel stores one customer analysis per (owner, customer).
type CustomerInsightModel struct {
	ID                      int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID                 string `gorm:"uniqueIndex:idx_insight_owner_customer;size:64;not null"`
	CustomerName            string `gorm:"uniqueIndex:idx_insight_owner_customer;size:128;not null"`
	PersonalityType         string `gorm:"size:64"`
	BuyingIntent            int
	RiskLevel               string `gorm:"size:32"`
	CommunicationPreference string `gorm:"size:64"`
	EmotionalState          string `gorm:"size:64"`
	ConversationHistory     string `gorm:"type:text"`
	UpdatedAt               time.Time
}

// TableName overrides the table name.
func (CustomerInsightModel) TableName() string {
	return "customer_insights"
}

// CoachingSessionModel stores one generated coaching session.
type CoachingSessionModel struct {
	ID               string `gorm:"primaryKey;size:64"`
	OwnerID          string `gorm:"index;size:64;not null"`
	SessionType      string `gorm:"size:64"`
	CustomerProfile  string `gorm:"type:text"`
	Insights         string `gorm:"type:text"`
	Suggestions      string `gorm:"type:text"` // JSON encoded list
	PerformanceScore float64
	DurationMinutes  int
	CreatedAt        time.Time
}

// TableName overrides the table name.
func (CoachingSessionModel) TableName() string {
	return "coaching_sessions"
}

// PerformanceMetricModel stores one tracked metric value.
type PerformanceMetricModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	OwnerID     string `gorm:"index;size:64;not null"`
	MetricType  string `gorm:"size:64;not null"`
	MetricValue float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
}

// TableName overrides the table name.
func (PerformanceMetricModel) TableName() string {
	return "performance_metrics"
}
