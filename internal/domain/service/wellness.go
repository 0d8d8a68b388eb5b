package service

import "github.com/agentdna/agentdna/internal/domain/entity"

// AssessBurnoutRisk bands a check-in into low/medium/high risk.
// The composite averages stress with inverted energy and mood so that all
// three contribute on the same "higher is worse" scale.
func AssessBurnoutRisk(stress, energy, mood int) entity.BurnoutRisk {
	avg := float64(stress+(100-energy)+(100-mood)) / 3

	switch {
	case avg > 70:
		return entity.BurnoutHigh
	case avg > 40:
		return entity.BurnoutMedium
	default:
		return entity.BurnoutLow
	}
}

// BurnoutRecommendation returns the canned guidance shown for a risk band.
func BurnoutRecommendation(risk entity.BurnoutRisk) string {
	switch risk {
	case entity.BurnoutHigh:
		return "Consider taking a break and practicing stress management techniques. Your well-being is important!"
	case entity.BurnoutMedium:
		return "Monitor your stress levels and ensure you're taking regular breaks between calls."
	default:
		return "Great job maintaining a healthy work-life balance!"
	}
}
