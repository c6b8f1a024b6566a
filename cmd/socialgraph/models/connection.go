package models

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionStatus is the lifecycle state of an edge
type ConnectionStatus string

const (
	StatusPending  ConnectionStatus = "PENDING"
	StatusAccepted ConnectionStatus = "ACCEPTED"
)

// Connection is a directed edge from the member who sent the request
// (author) to the member who received it (recipient). At most one edge
// exists per unordered member pair; "undirected" neighbor resolution is
// a query-time union of both directions, never a second row.
type Connection struct {
	ID          uuid.UUID        `json:"id"`
	AuthorID    uuid.UUID        `json:"author_id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	Status      ConnectionStatus `json:"status"`
	Seen        bool             `json:"seen"`
	CreatedAt   time.Time        `json:"created_at"`
}

// OtherEnd resolves the neighbor on the far side of the edge from the
// given member.
func (c *Connection) OtherEnd(memberID uuid.UUID) uuid.UUID {
	if c.AuthorID == memberID {
		return c.RecipientID
	}
	return c.AuthorID
}

// Involves reports whether the member is one of the edge's endpoints
func (c *Connection) Involves(memberID uuid.UUID) bool {
	return c.AuthorID == memberID || c.RecipientID == memberID
}
