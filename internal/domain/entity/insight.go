package entity

import "time"

// CustomerInsight is the stored result of an LLM personality analysis of a
// customer conversation, keyed by (owner, customer name). Re-analysis
// overwrites the previous insight.
type CustomerInsight struct {
	OwnerID                 string
	CustomerName            string
	PersonalityType         string
	BuyingIntent            int // 0-100
	RiskLevel               string
	CommunicationPreference string
	EmotionalState          string
	ConversationHistory     string
	UpdatedAt               time.Time
}

// CoachingSession records one generated set of coaching suggestions together
// with the session context it was produced from.
type CoachingSession struct {
	ID               string
	OwnerID          string
	SessionType      string
	CustomerProfile  string
	Insights         string
	Suggestions      []string
	PerformanceScore float64
	DurationMinutes  int
	CreatedAt        time.Time
}

// PerformanceMetric is a single tracked metric value over a period.
type PerformanceMetric struct {
	ID          string
	OwnerID     string
	MetricType  string
	MetricValue float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
}
