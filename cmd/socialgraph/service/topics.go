package service

import (
	"fmt"

	"github.com/google/uuid"
)

// Topic names are stable string keys shared with gateway subscribers.
// Keep these in sync with cmd/gateway.

// FeedTopic addresses a member's home feed
func FeedTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("feed/%s/post", memberID)
}

// PostLikesTopic addresses like/unlike events on one post
func PostLikesTopic(postID uuid.UUID) string {
	return fmt.Sprintf("posts/%s/likes", postID)
}

// PostCommentsTopic addresses comment add/edit events on one post
func PostCommentsTopic(postID uuid.UUID) string {
	return fmt.Sprintf("posts/%s/comments", postID)
}

// PostCommentsDeleteTopic addresses comment removal events on one post
func PostCommentsDeleteTopic(postID uuid.UUID) string {
	return fmt.Sprintf("posts/%s/comments/delete", postID)
}

// PostEditTopic addresses edits of one post
func PostEditTopic(postID uuid.UUID) string {
	return fmt.Sprintf("posts/%s/edit", postID)
}

// PostDeleteTopic addresses deletion of one post
func PostDeleteTopic(postID uuid.UUID) string {
	return fmt.Sprintf("posts/%s/delete", postID)
}

// NotificationsTopic addresses a member's notification stream
func NotificationsTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("users/%s/notifications", memberID)
}

// ConnectionNewTopic addresses new connection requests touching a member
func ConnectionNewTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("users/%s/connections/new", memberID)
}

// ConnectionAcceptedTopic addresses accepted connections touching a member
func ConnectionAcceptedTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("users/%s/connections/accepted", memberID)
}

// ConnectionRemoveTopic addresses removed or rejected connections
// touching a member.
func ConnectionRemoveTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("users/%s/connections/remove", memberID)
}

// ConnectionSeenTopic addresses seen-state changes on a member's
// incoming requests.
func ConnectionSeenTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("users/%s/connections/seen", memberID)
}

// ConversationsTopic addresses a member's conversation list
func ConversationsTopic(memberID uuid.UUID) string {
	return fmt.Sprintf("users/%s/conversations", memberID)
}

// ConversationMessagesTopic addresses messages within one conversation
func ConversationMessagesTopic(conversationID uuid.UUID) string {
	return fmt.Sprintf("conversations/%s/messages", conversationID)
}
