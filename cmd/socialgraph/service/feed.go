package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/logger"
)

// FeedService owns posts, likes and comments, handing each committed
// mutation to fanout.
type FeedService struct {
	posts       PostStore
	connections ConnectionStore
	fanout      *FanoutService
	log         *logger.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(posts PostStore, connections ConnectionStore, fanout *FanoutService, log *logger.Logger) *FeedService {
	return &FeedService{
		posts:       posts,
		connections: connections,
		fanout:      fanout,
		log:         log,
	}
}

// CreatePost stores a post and fans it out to the feeds of the
// author's accepted connections.
func (s *FeedService) CreatePost(ctx context.Context, authorID uuid.UUID, content, picture string) (*models.Post, error) {
	if content == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	post := &models.Post{AuthorID: authorID, Content: content, Picture: picture}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	neighborIDs, err := s.connections.AcceptedNeighborIDs(ctx, authorID)
	if err != nil {
		// The post is durable; treat feed resolution like a publish
		// failure rather than failing the request.
		s.log.Warn("failed to resolve feed audience", "post_id", post.ID, "error", err)
		return post, nil
	}

	s.fanout.PostCreated(post, neighborIDs)
	return post, nil
}

// GetPost retrieves a post
func (s *FeedService) GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	return s.posts.GetPost(ctx, postID)
}

// ListPostsByAuthor retrieves a member's posts, newest first
func (s *FeedService) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	return s.posts.ListPostsByAuthor(ctx, authorID)
}

// EditPost rewrites a post's content. Author only.
func (s *FeedService) EditPost(ctx context.Context, postID, actingMember uuid.UUID, content, picture string) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actingMember {
		return nil, &models.AuthorizationError{Action: "edit this post"}
	}

	post.Content = content
	post.Picture = picture
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.fanout.PostEdited(post)
	return post, nil
}

// DeletePost removes a post. Author only.
func (s *FeedService) DeletePost(ctx context.Context, postID, actingMember uuid.UUID) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actingMember {
		return &models.AuthorizationError{Action: "delete this post"}
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return err
	}

	s.fanout.PostDeleted(postID)
	return nil
}

// ToggleLike likes the post if the member has not liked it, unlikes it
// otherwise. Returns whether the post is liked after the call. A LIKE
// notification is recorded only on the like path and only when the
// actor is not the post's author; the likes topic is refreshed either
// way.
func (s *FeedService) ToggleLike(ctx context.Context, postID, actingMember uuid.UUID) (bool, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return false, err
	}

	added, err := s.posts.AddLike(ctx, postID, actingMember)
	if err != nil {
		return false, err
	}

	if !added {
		if _, err := s.posts.RemoveLike(ctx, postID, actingMember); err != nil {
			return false, err
		}
	}

	likerIDs, err := s.posts.ListLikerIDs(ctx, postID)
	if err != nil {
		return added, err
	}

	if added {
		if err := s.fanout.PostLiked(ctx, post, actingMember, likerIDs); err != nil {
			return true, err
		}
	} else {
		s.fanout.PostUnliked(post, actingMember, likerIDs)
	}

	return added, nil
}

// ListLikerIDs retrieves the members who like a post
func (s *FeedService) ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListLikerIDs(ctx, postID)
}

// AddComment stores a comment and fans it out. A COMMENT notification
// is recorded for the post author unless they commented themselves.
func (s *FeedService) AddComment(ctx context.Context, postID, authorID uuid.UUID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.posts.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.fanout.CommentAdded(ctx, post, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment rewrites a comment's content. Comment author only.
func (s *FeedService) EditComment(ctx context.Context, commentID, actingMember uuid.UUID, content string) (*models.Comment, error) {
	comment, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actingMember {
		return nil, &models.AuthorizationError{Action: "edit this comment"}
	}

	comment.Content = content
	if err := s.posts.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.fanout.CommentEdited(comment)
	return comment, nil
}

// DeleteComment removes a comment. The comment author or the post
// author may delete.
func (s *FeedService) DeleteComment(ctx context.Context, commentID, actingMember uuid.UUID) error {
	comment, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actingMember {
		post, err := s.posts.GetPost(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != actingMember {
			return &models.AuthorizationError{Action: "delete this comment"}
		}
	}

	if err := s.posts.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.fanout.CommentDeleted(comment)
	return nil
}

// ListComments retrieves a post's comments, oldest first
func (s *FeedService) ListComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}
