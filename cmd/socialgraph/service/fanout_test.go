package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreated_FansOutToNeighborFeeds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	friend1 := env.addMember("Acme", "Engineer", "Berlin")
	friend2 := env.addMember("Acme", "Engineer", "Berlin")
	outsider := env.addMember("Acme", "Engineer", "Berlin")
	env.connect(author.ID, friend1.ID)
	env.connect(author.ID, friend2.ID)

	post, err := env.feed.CreatePost(ctx, author.ID, "hello network", "")
	require.NoError(t, err)
	env.dispatcher.Flush()

	assert.Equal(t, 1, env.recorder.count(FeedTopic(friend1.ID)))
	assert.Equal(t, 1, env.recorder.count(FeedTopic(friend2.ID)))
	assert.Equal(t, 0, env.recorder.count(FeedTopic(outsider.ID)))

	var got models.Post
	require.NoError(t, json.Unmarshal(env.recorder.last(FeedTopic(friend1.ID)), &got))
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "hello network", got.Content)
}

func TestLike_NotifiesAuthorAndPublishesLikers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	liker := env.addMember("Acme", "Engineer", "Berlin")

	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)

	liked, err := env.feed.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	env.dispatcher.Flush()

	assert.Equal(t, 1, env.recorder.count(PostLikesTopic(post.ID)))
	assert.Equal(t, 1, env.recorder.count(NotificationsTopic(author.ID)))

	notifications, err := env.fanout.ListNotifications(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationLike, notifications[0].Type)
	assert.Equal(t, liker.ID, notifications[0].ActorID)
	assert.Equal(t, post.ID, notifications[0].ResourceID)
	assert.False(t, notifications[0].Read)
}

func TestSelfLike_PublishesTopicButSkipsNotification(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)

	liked, err := env.feed.ToggleLike(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	env.dispatcher.Flush()

	// The likes topic still fires for a self-like
	assert.Equal(t, 1, env.recorder.count(PostLikesTopic(post.ID)))
	assert.Equal(t, 0, env.recorder.count(NotificationsTopic(author.ID)))

	notifications, err := env.fanout.ListNotifications(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestUnlike_NeverNotifies(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	liker := env.addMember("Acme", "Engineer", "Berlin")
	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)

	_, err = env.feed.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)

	liked, err := env.feed.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	env.dispatcher.Flush()

	// Two likes-topic events (like then unlike), one notification
	assert.Equal(t, 2, env.recorder.count(PostLikesTopic(post.ID)))
	assert.Equal(t, 1, env.recorder.count(NotificationsTopic(author.ID)))

	var event LikeEvent
	require.NoError(t, json.Unmarshal(env.recorder.last(PostLikesTopic(post.ID)), &event))
	assert.False(t, event.Liked)
	assert.Empty(t, event.LikerIDs)
}

func TestSelfComment_PublishesTopicButSkipsNotification(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)

	_, err = env.feed.AddComment(ctx, post.ID, author.ID, "my own take")
	require.NoError(t, err)
	env.dispatcher.Flush()

	assert.Equal(t, 1, env.recorder.count(PostCommentsTopic(post.ID)))

	notifications, err := env.fanout.ListNotifications(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestComment_NotifiesPostAuthor(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	commenter := env.addMember("Acme", "Engineer", "Berlin")
	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)

	comment, err := env.feed.AddComment(ctx, post.ID, commenter.ID, "nice")
	require.NoError(t, err)
	env.dispatcher.Flush()

	assert.Equal(t, 1, env.recorder.count(PostCommentsTopic(post.ID)))
	assert.Equal(t, 1, env.recorder.count(NotificationsTopic(author.ID)))

	notifications, err := env.fanout.ListNotifications(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)
	assert.Equal(t, post.ID, notifications[0].ResourceID)

	var event CommentEvent
	require.NoError(t, json.Unmarshal(env.recorder.last(PostCommentsTopic(post.ID)), &event))
	assert.Equal(t, "added", event.Action)
	assert.Equal(t, comment.ID, event.Comment.ID)
}

func TestMarkNotificationRead_IdempotentAndAlwaysRepublishes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	liker := env.addMember("Acme", "Engineer", "Berlin")
	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)
	_, err = env.feed.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)

	notifications, err := env.fanout.ListNotifications(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	env.dispatcher.Flush()
	before := env.recorder.count(NotificationsTopic(author.ID))

	first, err := env.fanout.MarkNotificationRead(ctx, notifications[0].ID)
	require.NoError(t, err)
	assert.True(t, first.Read)

	second, err := env.fanout.MarkNotificationRead(ctx, notifications[0].ID)
	require.NoError(t, err)
	assert.True(t, second.Read)

	env.dispatcher.Flush()
	// Each call republishes, even the already-read one
	assert.Equal(t, before+2, env.recorder.count(NotificationsTopic(author.ID)))
}

func TestMarkNotificationRead_Unknown(t *testing.T) {
	env := newTestEnv()

	_, err := env.fanout.MarkNotificationRead(context.Background(), uuid.New())
	assert.True(t, models.IsNotFound(err))
}
