package service

import (
	"context"
	"testing"

	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditPost_AuthorOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	other := env.addMember("Acme", "Engineer", "Berlin")

	post, err := env.feed.CreatePost(ctx, author.ID, "v1", "")
	require.NoError(t, err)

	_, err = env.feed.EditPost(ctx, post.ID, other.ID, "hijacked", "")
	assert.True(t, models.IsAuthorization(err))

	updated, err := env.feed.EditPost(ctx, post.ID, author.ID, "v2", "")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	env.dispatcher.Flush()
	assert.Equal(t, 1, env.recorder.count(PostEditTopic(post.ID)))
}

func TestDeletePost_AuthorOnlyAndPublishes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	author := env.addMember("Acme", "Engineer", "Berlin")
	other := env.addMember("Acme", "Engineer", "Berlin")

	post, err := env.feed.CreatePost(ctx, author.ID, "content", "")
	require.NoError(t, err)

	err = env.feed.DeletePost(ctx, post.ID, other.ID)
	assert.True(t, models.IsAuthorization(err))

	require.NoError(t, env.feed.DeletePost(ctx, post.ID, author.ID))

	_, err = env.feed.GetPost(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))

	env.dispatcher.Flush()
	assert.Equal(t, 1, env.recorder.count(PostDeleteTopic(post.ID)))
}

func TestDeleteComment_CommentOrPostAuthor(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	postAuthor := env.addMember("Acme", "Engineer", "Berlin")
	commenter := env.addMember("Acme", "Engineer", "Berlin")
	stranger := env.addMember("Acme", "Engineer", "Berlin")

	post, err := env.feed.CreatePost(ctx, postAuthor.ID, "content", "")
	require.NoError(t, err)

	comment, err := env.feed.AddComment(ctx, post.ID, commenter.ID, "first")
	require.NoError(t, err)

	err = env.feed.DeleteComment(ctx, comment.ID, stranger.ID)
	assert.True(t, models.IsAuthorization(err))

	// The post author may moderate comments on their post
	require.NoError(t, env.feed.DeleteComment(ctx, comment.ID, postAuthor.ID))

	// And the comment author may delete their own
	comment, err = env.feed.AddComment(ctx, post.ID, commenter.ID, "second")
	require.NoError(t, err)
	require.NoError(t, env.feed.DeleteComment(ctx, comment.ID, commenter.ID))

	env.dispatcher.Flush()
	assert.Equal(t, 2, env.recorder.count(PostCommentsDeleteTopic(post.ID)))
}

func TestEditComment_AuthorOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	postAuthor := env.addMember("Acme", "Engineer", "Berlin")
	commenter := env.addMember("Acme", "Engineer", "Berlin")

	post, err := env.feed.CreatePost(ctx, postAuthor.ID, "content", "")
	require.NoError(t, err)
	comment, err := env.feed.AddComment(ctx, post.ID, commenter.ID, "v1")
	require.NoError(t, err)

	// Unlike deletion, editing stays with the comment author
	_, err = env.feed.EditComment(ctx, comment.ID, postAuthor.ID, "reworded")
	assert.True(t, models.IsAuthorization(err))

	updated, err := env.feed.EditComment(ctx, comment.ID, commenter.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv()
	author := env.addMember("Acme", "Engineer", "Berlin")

	_, err := env.feed.CreatePost(context.Background(), author.ID, "", "")
	assert.True(t, models.IsValidation(err))
}
