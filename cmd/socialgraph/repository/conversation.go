package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/db"
)

// ConversationRepository handles database operations for conversations
// and messages.
type ConversationRepository struct {
	db *db.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *db.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

const conversationColumns = `id, author_id, recipient_id, created_at`

func scanConversation(row pgx.Row) (*models.Conversation, error) {
	c := &models.Conversation{}
	err := row.Scan(&c.ID, &c.AuthorID, &c.RecipientID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

const messageColumns = `id, conversation_id, sender_id, receiver_id, content, is_read, created_at`

func scanMessage(row pgx.Row) (*models.Message, error) {
	m := &models.Message{}
	err := row.Scan(
		&m.ID,
		&m.ConversationID,
		&m.SenderID,
		&m.ReceiverID,
		&m.Content,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a conversation. The unique pair index rejects a second
// conversation between the same two members regardless of direction.
func (r *ConversationRepository) Create(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Conversation, error) {
	query := `
		INSERT INTO conversations (id, author_id, recipient_id)
		VALUES ($1, $2, $3)
		RETURNING ` + conversationColumns

	conv, err := scanConversation(r.db.QueryRow(ctx, query, uuid.New(), authorID, recipientID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &models.ConflictError{Reason: "conversation already exists between these members"}
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conv, nil
}

// Get retrieves a conversation by id
func (r *ConversationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conv, err := scanConversation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("conversation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return conv, nil
}

// GetBetween retrieves the conversation between two members in either
// direction, if one exists.
func (r *ConversationRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + ` FROM conversations
		WHERE (author_id = $1 AND recipient_id = $2)
		   OR (author_id = $2 AND recipient_id = $1)
	`

	conv, err := scanConversation(r.db.QueryRow(ctx, query, a, b))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation between members: %w", err)
	}

	return conv, nil
}

// ListForMember retrieves the conversations a member is a party to,
// newest first.
func (r *ConversationRepository) ListForMember(ctx context.Context, memberID uuid.UUID) ([]*models.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + ` FROM conversations
		WHERE author_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var convs []*models.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		convs = append(convs, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}

	return convs, nil
}

// CreateMessage inserts a message into a conversation
func (r *ConversationRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, receiver_id, content, is_read)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING created_at
	`

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, msg.ID, msg.ConversationID, msg.SenderID, msg.ReceiverID, msg.Content).
		Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetMessage retrieves a message by id
func (r *ConversationRepository) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("message", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return msg, nil
}

// MarkMessageRead sets the read flag and reports whether this call
// flipped it. An already-read message yields changed == false.
func (r *ConversationRepository) MarkMessageRead(ctx context.Context, id uuid.UUID) (*models.Message, bool, error) {
	query := `
		UPDATE messages SET is_read = true
		WHERE id = $1 AND is_read = false
		RETURNING ` + messageColumns

	msg, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err == nil {
		return msg, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to mark message read: %w", err)
	}

	// no row updated: either unknown id or already read
	msg, err = r.GetMessage(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return msg, false, nil
}

// ListMessages retrieves a conversation's messages, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	query := `
		SELECT ` + messageColumns + ` FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return msgs, nil
}
