package entity

import (
	"strings"
	"time"

	"github.com/agentdna/agentdna/internal/domain/valueobject"
)

// Message is one turn of a conversation transcript. Messages are immutable
// once created; a transcript only ever grows by appending new ones.
type Message struct {
	id             string
	conversationID string
	role           valueobject.Role
	content        string
	timestamp      time.Time

	// Generation metadata, set on assistant messages only.
	modelUsed  string
	tokensUsed int
}

// NewMessage creates a message (factory method).
func NewMessage(id, conversationID string, role valueobject.Role, content string) (*Message, error) {
	if id == "" {
		return nil, ErrInvalidMessageID
	}
	if conversationID == "" {
		return nil, ErrInvalidConversationID
	}
	switch role {
	case valueobject.RoleUser, valueobject.RoleAssistant:
	default:
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	return &Message{
		id:             id,
		conversationID: conversationID,
		role:           role,
		content:        content,
		timestamp:      time.Now().UTC(),
	}, nil
}

// ReconstructMessage rebuilds a message from the persistence layer.
func ReconstructMessage(
	id, conversationID string,
	role valueobject.Role,
	content string,
	timestamp time.Time,
	modelUsed string,
	tokensUsed int,
) *Message {
	return &Message{
		id:             id,
		conversationID: conversationID,
		role:           role,
		content:        content,
		timestamp:      timestamp,
		modelUsed:      modelUsed,
		tokensUsed:     tokensUsed,
	}
}

func (m *Message) ID() string                 { return m.id }
func (m *Message) ConversationID() string     { return m.conversationID }
func (m *Message) Role() valueobject.Role     { return m.role }
func (m *Message) Content() string            { return m.content }
func (m *Message) Timestamp() time.Time       { return m.timestamp }
func (m *Message) ModelUsed() string          { return m.modelUsed }
func (m *Message) TokensUsed() int            { return m.tokensUsed }

// SetGenerationInfo records which model produced an assistant reply.
func (m *Message) SetGenerationInfo(model string, tokens int) {
	m.modelUsed = model
	m.tokensUsed = tokens
}

func (m *Message) IsFromUser() bool {
	return m.role == valueobject.RoleUser
}

func (m *Message) IsFromAssistant() bool {
	return m.role == valueobject.RoleAssistant
}
