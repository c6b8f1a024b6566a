package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/logger"
	"github.com/linkhive/socialgraph/common/pubsub"
)

// FanoutService turns committed state changes into topic publishes and,
// for likes and comments, persisted notifications. Every publish goes
// through the dispatcher and is fire-and-forget: the caller's request
// never waits on, or fails because of, the broker.
//
// Callers invoke fanout only after their own write has committed, so
// subscribers never observe an event for state that is not durable.
type FanoutService struct {
	notifications NotificationStore
	dispatcher    *pubsub.Dispatcher
	log           *logger.Logger
}

// NewFanoutService creates a new fanout service
func NewFanoutService(notifications NotificationStore, dispatcher *pubsub.Dispatcher, log *logger.Logger) *FanoutService {
	return &FanoutService{
		notifications: notifications,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// LikeEvent is the payload published on a post's likes topic
type LikeEvent struct {
	PostID   uuid.UUID   `json:"post_id"`
	ActorID  uuid.UUID   `json:"actor_id"`
	Liked    bool        `json:"liked"`
	LikerIDs []uuid.UUID `json:"liker_ids"`
}

// CommentEvent is the payload published on a post's comments topics
type CommentEvent struct {
	Action  string          `json:"action"`
	Comment *models.Comment `json:"comment"`
}

// ConnectionEvent is the payload published on the per-member
// connection topics.
type ConnectionEvent struct {
	Connection *models.Connection `json:"connection"`
}

// MessageEvent is the payload published on a conversation's messages
// topic.
type MessageEvent struct {
	Message *models.Message `json:"message"`
}

// PostCreated fans a new post out to the feed topic of each accepted
// connection of the author.
func (s *FanoutService) PostCreated(post *models.Post, neighborIDs []uuid.UUID) {
	for _, id := range neighborIDs {
		s.dispatcher.Enqueue(FeedTopic(id), post)
	}
}

// PostEdited publishes the updated post on its edit topic
func (s *FanoutService) PostEdited(post *models.Post) {
	s.dispatcher.Enqueue(PostEditTopic(post.ID), post)
}

// PostDeleted announces a post's removal on its delete topic
func (s *FanoutService) PostDeleted(postID uuid.UUID) {
	s.dispatcher.Enqueue(PostDeleteTopic(postID), map[string]uuid.UUID{"post_id": postID})
}

// PostLiked records a LIKE notification for the post author (unless
// the actor liked their own post) and publishes the refreshed liker
// set. The resource-topic publish happens even for self-likes.
func (s *FanoutService) PostLiked(ctx context.Context, post *models.Post, actorID uuid.UUID, likerIDs []uuid.UUID) error {
	if actorID != post.AuthorID {
		n := &models.Notification{
			ActorID:     actorID,
			RecipientID: post.AuthorID,
			Type:        models.NotificationLike,
			ResourceID:  post.ID,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			return fmt.Errorf("failed to record like notification: %w", err)
		}
		s.dispatcher.Enqueue(NotificationsTopic(post.AuthorID), n)
	}

	s.dispatcher.Enqueue(PostLikesTopic(post.ID), &LikeEvent{
		PostID:   post.ID,
		ActorID:  actorID,
		Liked:    true,
		LikerIDs: likerIDs,
	})
	return nil
}

// PostUnliked publishes the refreshed liker set. Unliking never
// creates a notification.
func (s *FanoutService) PostUnliked(post *models.Post, actorID uuid.UUID, likerIDs []uuid.UUID) {
	s.dispatcher.Enqueue(PostLikesTopic(post.ID), &LikeEvent{
		PostID:   post.ID,
		ActorID:  actorID,
		Liked:    false,
		LikerIDs: likerIDs,
	})
}

// CommentAdded records a COMMENT notification for the post author
// (unless they commented on their own post) and publishes the comment.
func (s *FanoutService) CommentAdded(ctx context.Context, post *models.Post, comment *models.Comment) error {
	if comment.AuthorID != post.AuthorID {
		n := &models.Notification{
			ActorID:     comment.AuthorID,
			RecipientID: post.AuthorID,
			Type:        models.NotificationComment,
			ResourceID:  post.ID,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			return fmt.Errorf("failed to record comment notification: %w", err)
		}
		s.dispatcher.Enqueue(NotificationsTopic(post.AuthorID), n)
	}

	s.dispatcher.Enqueue(PostCommentsTopic(post.ID), &CommentEvent{Action: "added", Comment: comment})
	return nil
}

// CommentEdited publishes the updated comment
func (s *FanoutService) CommentEdited(comment *models.Comment) {
	s.dispatcher.Enqueue(PostCommentsTopic(comment.PostID), &CommentEvent{Action: "edited", Comment: comment})
}

// CommentDeleted announces a comment's removal
func (s *FanoutService) CommentDeleted(comment *models.Comment) {
	s.dispatcher.Enqueue(PostCommentsDeleteTopic(comment.PostID), &CommentEvent{Action: "deleted", Comment: comment})
}

// ConnectionRequested notifies both ends of a new pending edge
func (s *FanoutService) ConnectionRequested(conn *models.Connection) {
	event := &ConnectionEvent{Connection: conn}
	s.dispatcher.Enqueue(ConnectionNewTopic(conn.AuthorID), event)
	s.dispatcher.Enqueue(ConnectionNewTopic(conn.RecipientID), event)
}

// ConnectionAccepted notifies both ends of an accepted edge
func (s *FanoutService) ConnectionAccepted(conn *models.Connection) {
	event := &ConnectionEvent{Connection: conn}
	s.dispatcher.Enqueue(ConnectionAcceptedTopic(conn.AuthorID), event)
	s.dispatcher.Enqueue(ConnectionAcceptedTopic(conn.RecipientID), event)
}

// ConnectionRemoved notifies both ends of a removed or rejected edge.
// The payload is the edge as it existed before deletion.
func (s *FanoutService) ConnectionRemoved(conn *models.Connection) {
	event := &ConnectionEvent{Connection: conn}
	s.dispatcher.Enqueue(ConnectionRemoveTopic(conn.AuthorID), event)
	s.dispatcher.Enqueue(ConnectionRemoveTopic(conn.RecipientID), event)
}

// ConnectionSeen notifies the recipient's seen topic
func (s *FanoutService) ConnectionSeen(conn *models.Connection) {
	s.dispatcher.Enqueue(ConnectionSeenTopic(conn.RecipientID), &ConnectionEvent{Connection: conn})
}

// ConversationCreated notifies both parties' conversation lists
func (s *FanoutService) ConversationCreated(conv *models.Conversation) {
	s.dispatcher.Enqueue(ConversationsTopic(conv.AuthorID), conv)
	s.dispatcher.Enqueue(ConversationsTopic(conv.RecipientID), conv)
}

// MessageAdded publishes a new message to the conversation topic and
// refreshes both parties' conversation lists.
func (s *FanoutService) MessageAdded(conv *models.Conversation, msg *models.Message) {
	s.dispatcher.Enqueue(ConversationMessagesTopic(conv.ID), &MessageEvent{Message: msg})
	s.dispatcher.Enqueue(ConversationsTopic(conv.AuthorID), conv)
	s.dispatcher.Enqueue(ConversationsTopic(conv.RecipientID), conv)
}

// MessageRead publishes a message's read-state change on the
// conversation topic.
func (s *FanoutService) MessageRead(msg *models.Message) {
	s.dispatcher.Enqueue(ConversationMessagesTopic(msg.ConversationID), &MessageEvent{Message: msg})
}

// MarkNotificationRead flips a notification's read flag and republishes
// it to the recipient's notification topic. The republish happens even
// when the flag was already set, so clients relying on at-least-once
// refresh semantics still get an event.
func (s *FanoutService) MarkNotificationRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	n, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}

	s.dispatcher.Enqueue(NotificationsTopic(n.RecipientID), n)
	return n, nil
}

// ListNotifications retrieves a member's notifications, newest first
func (s *FanoutService) ListNotifications(ctx context.Context, memberID uuid.UUID) ([]*models.Notification, error) {
	return s.notifications.ListForRecipient(ctx, memberID)
}
