package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// PostHandler handles post, like and comment requests
type PostHandler struct {
	container *container.Container
}

// NewPostHandler creates a new post handler
func NewPostHandler(c *container.Container) *PostHandler {
	return &PostHandler{container: c}
}

type postBody struct {
	Content string `json:"content"`
	Picture string `json:"picture"`
}

type commentBody struct {
	Content string `json:"content"`
}

// Create stores a post and fans it out to connected members' feeds
// POST /api/v1/posts
func (h *PostHandler) Create(c echo.Context) error {
	var req postBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	post, err := h.container.FeedService.CreatePost(c.Request().Context(), middleware.MemberID(c), req.Content, req.Picture)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, post)
}

// Get retrieves a post
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.container.FeedService.GetPost(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, post)
}

// Edit rewrites a post
// PUT /api/v1/posts/:id
func (h *PostHandler) Edit(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req postBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	post, err := h.container.FeedService.EditPost(c.Request().Context(), id, middleware.MemberID(c), req.Content, req.Picture)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, post)
}

// Delete removes a post
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.container.FeedService.DeletePost(c.Request().Context(), id, middleware.MemberID(c)); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListByAuthor retrieves a member's posts
// GET /api/v1/members/:id/posts
func (h *PostHandler) ListByAuthor(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	posts, err := h.container.FeedService.ListPostsByAuthor(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, posts)
}

// ToggleLike likes or unlikes a post for the acting member
// PUT /api/v1/posts/:id/like
func (h *PostHandler) ToggleLike(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	liked, err := h.container.FeedService.ToggleLike(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"liked": liked})
}

// ListLikes retrieves the members who like a post
// GET /api/v1/posts/:id/likes
func (h *PostHandler) ListLikes(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	likerIDs, err := h.container.FeedService.ListLikerIDs(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"liker_ids": likerIDs})
}

// AddComment stores a comment on a post
// POST /api/v1/posts/:id/comments
func (h *PostHandler) AddComment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req commentBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	comment, err := h.container.FeedService.AddComment(c.Request().Context(), id, middleware.MemberID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListComments retrieves a post's comments
// GET /api/v1/posts/:id/comments
func (h *PostHandler) ListComments(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := h.container.FeedService.ListComments(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, comments)
}

// EditComment rewrites a comment
// PUT /api/v1/comments/:id
func (h *PostHandler) EditComment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req commentBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	comment, err := h.container.FeedService.EditComment(c.Request().Context(), id, middleware.MemberID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment
// DELETE /api/v1/comments/:id
func (h *PostHandler) DeleteComment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.container.FeedService.DeleteComment(c.Request().Context(), id, middleware.MemberID(c)); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
