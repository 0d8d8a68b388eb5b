package entity

import "time"

// BurnoutRisk is the assessed risk band for a wellness check-in.
type BurnoutRisk string

const (
	BurnoutLow    BurnoutRisk = "low"
	BurnoutMedium BurnoutRisk = "medium"
	BurnoutHigh   BurnoutRisk = "high"
)

// WellnessEntry is one self-reported wellness check-in with its computed
// burnout risk. Scores are on a 0-100 scale.
type WellnessEntry struct {
	ID          string
	OwnerID     string
	StressLevel int
	EnergyLevel int
	MoodScore   int
	BurnoutRisk BurnoutRisk
	CreatedAt   time.Time
}

// NewWellnessEntry creates a check-in, validating score ranges.
// BurnoutRisk is left for the wellness service to assess.
func NewWellnessEntry(id, ownerID string, stress, energy, mood int) (*WellnessEntry, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}
	for _, score := range []int{stress, energy, mood} {
		if score < 0 || score > 100 {
			return nil, ErrScoreOutOfRange
		}
	}

	return &WellnessEntry{
		ID:          id,
		OwnerID:     ownerID,
		StressLevel: stress,
		EnergyLevel: energy,
		MoodScore:   mood,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
