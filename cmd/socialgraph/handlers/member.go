package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
	"github.com/linkhive/socialgraph/cmd/socialgraph/service"
)

// MemberHandler handles member lifecycle requests
type MemberHandler struct {
	container *container.Container
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(c *container.Container) *MemberHandler {
	return &MemberHandler{container: c}
}

type registerMemberRequest struct {
	ID uuid.UUID `json:"id"`
	service.ProfileInput
}

// Register creates a member
// POST /api/v1/members
func (h *MemberHandler) Register(c echo.Context) error {
	var req registerMemberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	member, err := h.container.MemberService.Register(c.Request().Context(), req.ID, req.ProfileInput)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, member)
}

// Get retrieves a member
// GET /api/v1/members/:id
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	member, err := h.container.MemberService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, member)
}

// UpdateProfile replaces the acting member's profile attributes
// PUT /api/v1/members/me
func (h *MemberHandler) UpdateProfile(c echo.Context) error {
	var req service.ProfileInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	member, err := h.container.MemberService.UpdateProfile(c.Request().Context(), middleware.MemberID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, member)
}

// Delete removes the acting member and everything referencing it
// DELETE /api/v1/members/me
func (h *MemberHandler) Delete(c echo.Context) error {
	if err := h.container.MemberService.Delete(c.Request().Context(), middleware.MemberID(c)); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
