package valueobject

// Role tags a transcript message with its author side.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole validates a wire-format role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAssistant:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
