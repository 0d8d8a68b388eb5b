package prompt

import (
	"fmt"
	"strings"

	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/valueobject"
)

// Default persona instructions, one per conversation type. A YAML override
// file can replace any of them at runtime (see Engine).
var defaultPersonas = map[valueobject.ConversationType]string{
	valueobject.TypeCoaching: "You are an expert sales coach specializing in financial products. " +
		"Provide personalized coaching advice, tips, and encouragement. Be supportive and actionable.",
	valueobject.TypeSupport: "You are a helpful support assistant for the AgentDNA platform. " +
		"Help users with technical questions, feature explanations, and troubleshooting.",
	valueobject.TypeGeneral: "You are a friendly AI assistant for AgentDNA, a sales coaching platform. " +
		"Help users with general questions about sales, motivation, and using the platform effectively.",
}

// buildProfileSection renders the agent-context block appended to coaching
// prompts when a behavioral profile exists.
func buildProfileSection(profile *entity.BehavioralProfile) string {
	if profile == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nAgent context:\n")
	if profile.PersonalityType() != "" {
		fmt.Fprintf(&b, "- Personality type: %s\n", profile.PersonalityType())
	}
	if profile.CommunicationStyle() != "" {
		fmt.Fprintf(&b, "- Communication style: %s\n", profile.CommunicationStyle())
	}
	fmt.Fprintf(&b, "- Conversion rate: %.1f%%\n", profile.ConversionRate())
	fmt.Fprintf(&b, "- EQ score: %.1f\n", profile.EQScore())
	if s := profile.Strengths(); len(s) > 0 {
		fmt.Fprintf(&b, "- Strengths: %s\n", strings.Join(s, ", "))
	}
	if w := profile.Weaknesses(); len(w) > 0 {
		fmt.Fprintf(&b, "- Areas to improve: %s\n", strings.Join(w, ", "))
	}
	b.WriteString("Tailor your coaching to this agent's profile.")
	return b.String()
}
