package entity

import (
	"time"

	"github.com/agentdna/agentdna/internal/domain/valueobject"
)

// Conversation is the durable append-only transcript of one chat session.
// It belongs to exactly one owner and keeps one persona type for life.
// Messages are never edited or removed.
type Conversation struct {
	id        string
	ownerID   string
	convType  valueobject.ConversationType
	messages  []*Message
	createdAt time.Time
	updatedAt time.Time
}

// NewConversation creates an empty conversation (factory method).
func NewConversation(id, ownerID string, convType valueobject.ConversationType) (*Conversation, error) {
	if id == "" {
		return nil, ErrInvalidConversationID
	}
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}
	switch convType {
	case valueobject.TypeGeneral, valueobject.TypeCoaching, valueobject.TypeSupport:
	default:
		return nil, ErrInvalidConversationType
	}

	now := time.Now().UTC()
	return &Conversation{
		id:        id,
		ownerID:   ownerID,
		convType:  convType,
		messages:  make([]*Message, 0),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructConversation rebuilds a conversation from the persistence layer.
// Messages must already be in append order.
func ReconstructConversation(
	id, ownerID string,
	convType valueobject.ConversationType,
	messages []*Message,
	createdAt, updatedAt time.Time,
) *Conversation {
	return &Conversation{
		id:        id,
		ownerID:   ownerID,
		convType:  convType,
		messages:  messages,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Conversation) ID() string                              { return c.id }
func (c *Conversation) OwnerID() string                         { return c.ownerID }
func (c *Conversation) Type() valueobject.ConversationType      { return c.convType }
func (c *Conversation) CreatedAt() time.Time                    { return c.createdAt }
func (c *Conversation) UpdatedAt() time.Time                    { return c.updatedAt }

// Messages returns the transcript in append order (copy).
func (c *Conversation) Messages() []*Message {
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) MessageCount() int {
	return len(c.messages)
}

// Append adds one message to the end of the transcript and refreshes
// the updated timestamp. Append order is chronological order.
func (c *Conversation) Append(msg *Message) {
	c.messages = append(c.messages, msg)
	c.updatedAt = time.Now().UTC()
}

// Window returns the n most recent messages, oldest first. The slice is a
// copy; n <= 0 returns an empty slice.
func (c *Conversation) Window(n int) []*Message {
	if n <= 0 {
		return []*Message{}
	}
	start := len(c.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]*Message, len(c.messages)-start)
	copy(out, c.messages[start:])
	return out
}

// LastMessage returns the newest message, or nil for an empty transcript.
func (c *Conversation) LastMessage() *Message {
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}
