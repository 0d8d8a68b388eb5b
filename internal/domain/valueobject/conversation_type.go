package valueobject

// ConversationType selects the assistant persona for a conversation.
// A conversation keeps its type for its whole lifetime; switching persona
// means starting a new conversation.
type ConversationType string

const (
	TypeGeneral  ConversationType = "general"
	TypeCoaching ConversationType = "coaching"
	TypeSupport  ConversationType = "support"
)

// ParseConversationType validates a wire-format type string.
// An empty string maps to the general persona.
func ParseConversationType(s string) (ConversationType, bool) {
	if s == "" {
		return TypeGeneral, true
	}
	switch ConversationType(s) {
	case TypeGeneral, TypeCoaching, TypeSupport:
		return ConversationType(s), true
	}
	return "", false
}

func (t ConversationType) String() string {
	return string(t)
}
