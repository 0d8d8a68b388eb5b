package service

import "sort"

// Lead is one prospect submitted for scoring.
type Lead struct {
	Name                string `json:"name"`
	PhoneAnswered       bool   `json:"phone_answered"`
	EmailOpened         bool   `json:"email_opened"`
	WebsiteVisited      bool   `json:"website_visited"`
	Income              int    `json:"income"`
	CreditScore         int    `json:"credit_score"`
	HasExistingProducts bool   `json:"has_existing_products"`
	TimeToDecision      string `json:"time_to_decision"` // immediate, week, month
}

// ScoredLead is a lead with its computed score attached.
type ScoredLead struct {
	Lead
	Score int `json:"score"`
}

// ScoreLead computes a deterministic 0-100 priority score from engagement,
// profile, and decision-timeline signals.
func ScoreLead(lead Lead) int {
	score := 0

	// Engagement signals
	if lead.PhoneAnswered {
		score += 20
	}
	if lead.EmailOpened {
		score += 15
	}
	if lead.WebsiteVisited {
		score += 10
	}

	// Profile signals
	if lead.Income > 50000 {
		score += 25
	}
	if lead.CreditScore > 700 {
		score += 20
	}
	if lead.HasExistingProducts {
		score += 15
	}

	// Decision timeline
	switch lead.TimeToDecision {
	case "immediate":
		score += 30
	case "week":
		score += 20
	case "month":
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// ScoreLeads scores a batch and returns it sorted highest first.
// The sort is stable so equally scored leads keep their submitted order.
func ScoreLeads(leads []Lead) []ScoredLead {
	scored := make([]ScoredLead, 0, len(leads))
	for _, lead := range leads {
		scored = append(scored, ScoredLead{Lead: lead, Score: ScoreLead(lead)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
