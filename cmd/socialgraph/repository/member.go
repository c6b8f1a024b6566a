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

// MemberRepository handles database operations for members
type MemberRepository struct {
	db *db.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *db.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

const memberColumns = `id, first_name, last_name, company, position, location, profile_complete, created_at`

func scanMember(row pgx.Row) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Company,
		&m.Position,
		&m.Location,
		&m.ProfileComplete,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	member.RefreshProfileComplete()

	query := `
		INSERT INTO members (id, first_name, last_name, company, position, location, profile_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		member.ID,
		member.FirstName,
		member.LastName,
		member.Company,
		member.Position,
		member.Location,
		member.ProfileComplete,
	).Scan(&member.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// Get retrieves a member by id
func (r *MemberRepository) Get(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	member, err := scanMember(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("member", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetMany retrieves members by id, skipping unknown ids
func (r *MemberRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// ListOthers retrieves every member except the given one
func (r *MemberRepository) ListOthers(ctx context.Context, exclude uuid.UUID) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id <> $1`

	rows, err := r.db.Query(ctx, query, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// UpdateProfile updates the profile attributes and the derived
// profile_complete flag.
func (r *MemberRepository) UpdateProfile(ctx context.Context, member *models.Member) error {
	member.RefreshProfileComplete()

	query := `
		UPDATE members
		SET first_name = $2, last_name = $3, company = $4, position = $5,
		    location = $6, profile_complete = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		member.ID,
		member.FirstName,
		member.LastName,
		member.Company,
		member.Position,
		member.Location,
		member.ProfileComplete,
	)
	if err != nil {
		return fmt.Errorf("failed to update member profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.NewNotFound("member", member.ID)
	}

	return nil
}

// Delete removes a member. Edges, notifications, posts, likes,
// comments, conversations and messages referencing the member are
// removed by the schema's ON DELETE CASCADE.
func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.NewNotFound("member", id)
	}

	return nil
}

func collectMembers(rows pgx.Rows) ([]*models.Member, error) {
	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
