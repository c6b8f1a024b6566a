package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/db"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *db.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *db.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, actor_id, recipient_id, type, resource_id, read, created_at`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(
		&n.ID,
		&n.ActorID,
		&n.RecipientID,
		&n.Type,
		&n.ResourceID,
		&n.Read,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, actor_id, recipient_id, type, resource_id, read)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING created_at
	`

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, n.ID, n.ActorID, n.RecipientID, n.Type, n.ResourceID).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// Get retrieves a notification by id
func (r *NotificationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("notification", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// MarkRead sets the read flag and returns the updated row. Calling it
// on an already-read notification is not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	query := `
		UPDATE notifications SET read = true
		WHERE id = $1
		RETURNING ` + notificationColumns

	n, err := scanNotification(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("notification", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return n, nil
}

// ListForRecipient retrieves a member's notifications, newest first
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]*models.Notification, error) {
	query := `
		SELECT ` + notificationColumns + ` FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}
