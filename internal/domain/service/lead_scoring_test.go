package service

import "testing"

func TestScoreLead_AllSignalsCappedAt100(t *testing.T) {
	lead := Lead{
		PhoneAnswered:       true,
		EmailOpened:         true,
		WebsiteVisited:      true,
		Income:              80000,
		CreditScore:         750,
		HasExistingProducts: true,
		TimeToDecision:      "immediate",
	}
	// Raw sum is 135; must be capped.
	if got := ScoreLead(lead); got != 100 {
		t.Errorf("ScoreLead = %d, want 100", got)
	}
}

func TestScoreLead_ColdLeadScoresZero(t *testing.T) {
	if got := ScoreLead(Lead{}); got != 0 {
		t.Errorf("ScoreLead = %d, want 0", got)
	}
}

func TestScoreLead_TimelineBands(t *testing.T) {
	tests := []struct {
		timeline string
		want     int
	}{
		{"immediate", 30},
		{"week", 20},
		{"month", 10},
		{"someday", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ScoreLead(Lead{TimeToDecision: tt.timeline}); got != tt.want {
			t.Errorf("ScoreLead(timeline=%q) = %d, want %d", tt.timeline, got, tt.want)
		}
	}
}

func TestScoreLead_Deterministic(t *testing.T) {
	lead := Lead{EmailOpened: true, Income: 60000, TimeToDecision: "week"}
	first := ScoreLead(lead)
	for i := 0; i < 5; i++ {
		if got := ScoreLead(lead); got != first {
			t.Fatalf("ScoreLead not deterministic: %d vs %d", got, first)
		}
	}
	if first != 60 {
		t.Errorf("ScoreLead = %d, want 60", first)
	}
}

func TestScoreLeads_SortedHighestFirstStable(t *testing.T) {
	leads := []Lead{
		{Name: "cold"},
		{Name: "hot", PhoneAnswered: true, Income: 60000, TimeToDecision: "immediate"},
		{Name: "warm-a", EmailOpened: true},   // 15
		{Name: "warm-b", WebsiteVisited: true}, // 10
	}

	scored := ScoreLeads(leads)
	if len(scored) != 4 {
		t.Fatalf("expected 4 scored leads, got %d", len(scored))
	}
	wantOrder := []string{"hot", "warm-a", "warm-b", "cold"}
	for i, name := range wantOrder {
		if scored[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, scored[i].Name, name)
		}
	}
	if scored[0].Score != 75 {
		t.Errorf("hot lead score = %d, want 75", scored[0].Score)
	}
}

func TestScoreLeads_EqualScoresKeepSubmittedOrder(t *testing.T) {
	leads := []Lead{
		{Name: "first", EmailOpened: true},
		{Name: "second", EmailOpened: true},
	}
	scored := ScoreLeads(leads)
	if scored[0].Name != "first" || scored[1].Name != "second" {
		t.Errorf("stable sort violated: %s, %s", scored[0].Name, scored[1].Name)
	}
}
