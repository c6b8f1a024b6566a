package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the closed set of notification variants. Only
// LIKE and COMMENT are persisted today; the connection variants exist
// so consumers of the event stream can switch over a total enum.
type NotificationType string

const (
	NotificationLike              NotificationType = "LIKE"
	NotificationComment           NotificationType = "COMMENT"
	NotificationConnectionRequest NotificationType = "CONNECTION_REQUEST"
	NotificationConnectionAccept  NotificationType = "CONNECTION_ACCEPT"
	NotificationConnectionRemove  NotificationType = "CONNECTION_REMOVE"
)

// Notification is a durably recorded event addressed to one member.
// The read flag only ever moves false -> true.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	ActorID     uuid.UUID        `json:"actor_id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	ResourceID  uuid.UUID        `json:"resource_id"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
