package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	container *container.Container
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(c *container.Container) *NotificationHandler {
	return &NotificationHandler{container: c}
}

// List retrieves the acting member's notifications, newest first
// GET /api/v1/notifications
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.container.FanoutService.ListNotifications(c.Request().Context(), middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkRead flips a notification's read flag and republishes it
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	n, err := h.container.FanoutService.MarkNotificationRead(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, n)
}
