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

// PostRepository handles database operations for posts, likes and
// comments.
type PostRepository struct {
	db *db.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *db.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, author_id, content, picture, created_at, updated_at`

func scanPost(row pgx.Row) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Content,
		&p.Picture,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

const commentColumns = `id, post_id, author_id, content, created_at, updated_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreatePost inserts a post
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, author_id, content, picture)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, post.ID, post.AuthorID, post.Content, post.Picture).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPost retrieves a post by id
func (r *PostRepository) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// UpdatePost rewrites a post's content and picture
func (r *PostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET content = $2, picture = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, post.ID, post.Content, post.Picture).Scan(&post.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewNotFound("post", post.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// DeletePost removes a post and, via cascade, its likes and comments
func (r *PostRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.NewNotFound("post", id)
	}

	return nil
}

// ListPostsByAuthor retrieves a member's posts, newest first
func (r *PostRepository) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// AddLike records a member's like on a post. Returns false when the
// like was already present.
func (r *PostRepository) AddLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO post_likes (post_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, member_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, postID, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to add like: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RemoveLike removes a member's like on a post. Returns false when no
// like was present.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND member_id = $2`, postID, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// HasLike reports whether a member currently likes a post
func (r *PostRepository) HasLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND member_id = $2)`

	if err := r.db.QueryRow(ctx, query, postID, memberID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

// ListLikerIDs retrieves the members who like a post
func (r *PostRepository) ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT member_id FROM post_likes WHERE post_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}

	return ids, nil
}

// CreateComment inserts a comment
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query, comment.ID, comment.PostID, comment.AuthorID, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by id
func (r *PostRepository) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewNotFound("comment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// UpdateComment rewrites a comment's content
func (r *PostRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewNotFound("comment", comment.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

// DeleteComment removes a comment
func (r *PostRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.NewNotFound("comment", id)
	}

	return nil
}

// ListComments retrieves a post's comments, oldest first
func (r *PostRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + ` FROM comments
		WHERE post_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}
