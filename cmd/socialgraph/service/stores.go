package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
)

// The store interfaces below are satisfied by the pgx repositories and
// by in-memory fakes in tests.

// MemberStore persists member records
type MemberStore interface {
	Create(ctx context.Context, member *models.Member) error
	Get(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.Member, error)
	ListOthers(ctx context.Context, exclude uuid.UUID) ([]*models.Member, error)
	UpdateProfile(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConnectionStore persists connection edges
type ConnectionStore interface {
	CreateEdge(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Connection, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	SetAccepted(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	SetSeen(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForMember(ctx context.Context, memberID uuid.UUID, status models.ConnectionStatus) ([]*models.Connection, error)
	GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error)
	AcceptedNeighborIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error)
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	Get(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]*models.Notification, error)
}

// PostStore persists posts, likes and comments
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error)
	AddLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error)
	RemoveLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error)
	HasLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error)
	ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
}

// ConversationStore persists conversations and messages
type ConversationStore interface {
	Create(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Conversation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Conversation, error)
	ListForMember(ctx context.Context, memberID uuid.UUID) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error)
	MarkMessageRead(ctx context.Context, id uuid.UUID) (*models.Message, bool, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error)
}
