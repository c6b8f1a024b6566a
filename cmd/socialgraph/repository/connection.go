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

// ConnectionRepository handles database operations for connection edges
type ConnectionRepository struct {
	db *db.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *db.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

const connectionColumns = `id, author_id, recipient_id, status, seen, created_at`

func scanConnection(row pgx.Row) (*models.Connection, error) {
	c := &models.Connection{}
	err := row.Scan(
		&c.ID,
		&c.AuthorID,
		&c.RecipientID,
		&c.Status,
		&c.Seen,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateEdge inserts a pending edge from author to recipient. The
// unique pair index rejects a second edge between the same two members
// regardless of direction, which surfaces here as a ConflictError.
func (r *ConnectionRepository) CreateEdge(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Connection, error) {
	query := `
		INSERT INTO connections (id, author_id, recipient_id, status, seen)
		VALUES ($1, $2, $3, $4, false)
		RETURNING ` + connectionColumns

	conn, err := scanConnection(r.db.QueryRow(ctx, query, uuid.New(), authorID, recipientID, models.StatusPending))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &models.ConflictError{Reason: "connection already exists between these members"}
		}
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	return conn, nil
}

// Get retrieves an edge by id
func (r *ConnectionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE id = $1`

	conn, err := scanConnection(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("connection", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	return conn, nil
}

// SetAccepted flips a pending edge to ACCEPTED and returns the updated
// row.
func (r *ConnectionRepository) SetAccepted(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	query := `
		UPDATE connections SET status = $2, seen = true
		WHERE id = $1
		RETURNING ` + connectionColumns

	conn, err := scanConnection(r.db.QueryRow(ctx, query, id, models.StatusAccepted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("connection", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to accept connection: %w", err)
	}

	return conn, nil
}

// SetSeen marks the edge as seen by the recipient
func (r *ConnectionRepository) SetSeen(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	query := `
		UPDATE connections SET seen = true
		WHERE id = $1
		RETURNING ` + connectionColumns

	conn, err := scanConnection(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("connection", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark connection seen: %w", err)
	}

	return conn, nil
}

// Delete removes an edge
func (r *ConnectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM connections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.NewNotFound("connection", id)
	}

	return nil
}

// ListForMember retrieves the edges touching a member, newest first,
// optionally restricted to one status.
func (r *ConnectionRepository) ListForMember(ctx context.Context, memberID uuid.UUID, status models.ConnectionStatus) ([]*models.Connection, error) {
	query := `
		SELECT ` + connectionColumns + ` FROM connections
		WHERE (author_id = $1 OR recipient_id = $1)
	`
	args := []any{memberID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	return collectConnections(rows)
}

// GetBetween retrieves the edge between two members in either
// direction, if one exists.
func (r *ConnectionRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error) {
	query := `
		SELECT ` + connectionColumns + ` FROM connections
		WHERE (author_id = $1 AND recipient_id = $2)
		   OR (author_id = $2 AND recipient_id = $1)
	`

	conn, err := scanConnection(r.db.QueryRow(ctx, query, a, b))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection between members: %w", err)
	}

	return conn, nil
}

// AcceptedNeighborIDs retrieves the ids of members connected to the
// given member through an accepted edge.
func (r *ConnectionRepository) AcceptedNeighborIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT CASE WHEN author_id = $1 THEN recipient_id ELSE author_id END
		FROM connections
		WHERE (author_id = $1 OR recipient_id = $1) AND status = $2
	`

	rows, err := r.db.Query(ctx, query, memberID, models.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighbors: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan neighbor id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating neighbors: %w", err)
	}

	return ids, nil
}

func collectConnections(rows pgx.Rows) ([]*models.Connection, error) {
	var conns []*models.Connection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		conns = append(conns, conn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connections: %w", err)
	}

	return conns, nil
}
