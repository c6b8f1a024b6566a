package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// ConversationHandler handles conversation and message requests
type ConversationHandler struct {
	container *container.Container
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(c *container.Container) *ConversationHandler {
	return &ConversationHandler{container: c}
}

type startConversationBody struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
}

type messageBody struct {
	Content string `json:"content"`
}

// Start creates a conversation with its first message
// POST /api/v1/conversations
func (h *ConversationHandler) Start(c echo.Context) error {
	var req startConversationBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	conv, err := h.container.MessagingService.StartConversation(c.Request().Context(), middleware.MemberID(c), req.RecipientID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, conv)
}

// Get retrieves a conversation
// GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	conv, err := h.container.MessagingService.GetConversation(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, conv)
}

// List retrieves the acting member's conversations
// GET /api/v1/conversations
func (h *ConversationHandler) List(c echo.Context) error {
	convs, err := h.container.MessagingService.ListConversations(c.Request().Context(), middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, convs)
}

// SendMessage appends a message to a conversation
// POST /api/v1/conversations/:id/messages
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req messageBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	msg, err := h.container.MessagingService.SendMessage(c.Request().Context(), id, middleware.MemberID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, msg)
}

// ListMessages retrieves a conversation's messages
// GET /api/v1/conversations/:id/messages
func (h *ConversationHandler) ListMessages(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	msgs, err := h.container.MessagingService.ListMessages(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, msgs)
}

// MarkMessageRead flips a message's read flag
// PUT /api/v1/messages/:id/read
func (h *ConversationHandler) MarkMessageRead(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	msg, err := h.container.MessagingService.MarkMessageRead(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, msg)
}
