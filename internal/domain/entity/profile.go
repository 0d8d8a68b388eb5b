package entity

import "time"

// BehavioralProfile summarizes an agent's selling style and performance.
// The coaching responder reads it to personalize replies; it is owned and
// updated by the profile API, never by the chat flow.
type BehavioralProfile struct {
	ownerID            string
	personalityType    string
	communicationStyle string
	conversionRate     float64
	eqScore            float64
	strengths          []string
	weaknesses         []string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBehavioralProfile creates a profile for an owner (factory method).
func NewBehavioralProfile(
	ownerID, personalityType, communicationStyle string,
	conversionRate, eqScore float64,
	strengths, weaknesses []string,
) (*BehavioralProfile, error) {
	if ownerID == "" {
		return nil, ErrInvalidProfileOwner
	}

	now := time.Now().UTC()
	return &BehavioralProfile{
		ownerID:            ownerID,
		personalityType:    personalityType,
		communicationStyle: communicationStyle,
		conversionRate:     conversionRate,
		eqScore:            eqScore,
		strengths:          copyStrings(strengths),
		weaknesses:         copyStrings(weaknesses),
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructBehavioralProfile rebuilds a profile from the persistence layer.
func ReconstructBehavioralProfile(
	ownerID, personalityType, communicationStyle string,
	conversionRate, eqScore float64,
	strengths, weaknesses []string,
	createdAt, updatedAt time.Time,
) *BehavioralProfile {
	return &BehavioralProfile{
		ownerID:            ownerID,
		personalityType:    personalityType,
		communicationStyle: communicationStyle,
		conversionRate:     conversionRate,
		eqScore:            eqScore,
		strengths:          copyStrings(strengths),
		weaknesses:         copyStrings(weaknesses),
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (p *BehavioralProfile) OwnerID() string            { return p.ownerID }
func (p *BehavioralProfile) PersonalityType() string    { return p.personalityType }
func (p *BehavioralProfile) CommunicationStyle() string { return p.communicationStyle }
func (p *BehavioralProfile) ConversionRate() float64    { return p.conversionRate }
func (p *BehavioralProfile) EQScore() float64           { return p.eqScore }
func (p *BehavioralProfile) CreatedAt() time.Time       { return p.createdAt }
func (p *BehavioralProfile) UpdatedAt() time.Time       { return p.updatedAt }

func (p *BehavioralProfile) Strengths() []string {
	return copyStrings(p.strengths)
}

func (p *BehavioralProfile) Weaknesses() []string {
	return copyStrings(p.weaknesses)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
