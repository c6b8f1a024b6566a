package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party message thread. Like connections, at most
// one exists per unordered member pair.
type Conversation struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Involves reports whether the member is a party to the conversation
func (c *Conversation) Involves(memberID uuid.UUID) bool {
	return c.AuthorID == memberID || c.RecipientID == memberID
}

// OtherEnd returns the party opposite the given member
func (c *Conversation) OtherEnd(memberID uuid.UUID) uuid.UUID {
	if c.AuthorID == memberID {
		return c.RecipientID
	}
	return c.AuthorID
}

// Message is one message within a conversation
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	ReceiverID     uuid.UUID `json:"receiver_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
