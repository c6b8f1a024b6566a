package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
)

// ConnectionHandler handles connection-edge requests
type ConnectionHandler struct {
	container *container.Container
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(c *container.Container) *ConnectionHandler {
	return &ConnectionHandler{container: c}
}

type sendRequestBody struct {
	RecipientID uuid.UUID `json:"recipient_id"`
}

// SendRequest creates a pending connection toward another member
// POST /api/v1/connections
func (h *ConnectionHandler) SendRequest(c echo.Context) error {
	var req sendRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
	}

	conn, err := h.container.GraphService.SendRequest(c.Request().Context(), middleware.MemberID(c), req.RecipientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, conn)
}

// Accept transitions a pending edge to ACCEPTED
// PUT /api/v1/connections/:id/accept
func (h *ConnectionHandler) Accept(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	conn, err := h.container.GraphService.Accept(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, conn)
}

// Remove deletes an edge (reject, cancel or sever)
// DELETE /api/v1/connections/:id
func (h *ConnectionHandler) Remove(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	conn, err := h.container.GraphService.RemoveOrReject(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, conn)
}

// MarkSeen marks an incoming request as seen
// PUT /api/v1/connections/:id/seen
func (h *ConnectionHandler) MarkSeen(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	conn, err := h.container.GraphService.MarkSeen(c.Request().Context(), id, middleware.MemberID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, conn)
}

// List retrieves the acting member's edges. ?status=PENDING widens the
// default ACCEPTED filter.
// GET /api/v1/connections
func (h *ConnectionHandler) List(c echo.Context) error {
	status := models.ConnectionStatus(c.QueryParam("status"))

	conns, err := h.container.GraphService.ListForMember(c.Request().Context(), middleware.MemberID(c), status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, conns)
}

// Recommendations retrieves ranked connection candidates
// GET /api/v1/connections/recommendations?limit=10
func (h *ConnectionHandler) Recommendations(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, &models.ValidationError{Field: "limit", Reason: "must be an integer"})
		}
		limit = parsed
	}

	candidates, err := h.container.RecommendationService.Recommend(c.Request().Context(), middleware.MemberID(c), limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, candidates)
}
