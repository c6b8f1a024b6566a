package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Topic strings are a wire contract with gateway subscribers; pin the
// exact formats.
func TestTopicNames(t *testing.T) {
	member := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	post := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	conv := uuid.MustParse("99999999-8888-7777-6666-555555555555")

	assert.Equal(t, "feed/11111111-2222-3333-4444-555555555555/post", FeedTopic(member))
	assert.Equal(t, "posts/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/likes", PostLikesTopic(post))
	assert.Equal(t, "posts/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/comments", PostCommentsTopic(post))
	assert.Equal(t, "posts/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/comments/delete", PostCommentsDeleteTopic(post))
	assert.Equal(t, "posts/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/edit", PostEditTopic(post))
	assert.Equal(t, "posts/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/delete", PostDeleteTopic(post))
	assert.Equal(t, "users/11111111-2222-3333-4444-555555555555/notifications", NotificationsTopic(member))
	assert.Equal(t, "users/11111111-2222-3333-4444-555555555555/connections/new", ConnectionNewTopic(member))
	assert.Equal(t, "users/11111111-2222-3333-4444-555555555555/connections/accepted", ConnectionAcceptedTopic(member))
	assert.Equal(t, "users/11111111-2222-3333-4444-555555555555/connections/remove", ConnectionRemoveTopic(member))
	assert.Equal(t, "users/11111111-2222-3333-4444-555555555555/connections/seen", ConnectionSeenTopic(member))
	assert.Equal(t, "users/11111111-2222-3333-4444-555555555555/conversations", ConversationsTopic(member))
	assert.Equal(t, "conversations/99999999-8888-7777-6666-555555555555/messages", ConversationMessagesTopic(conv))
}
