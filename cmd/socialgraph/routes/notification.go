package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/handlers"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// RegisterNotificationRoutes registers notification routes
func RegisterNotificationRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewNotificationHandler(c)

	n := e.Group("/api/v1/notifications")
	n.Use(middleware.ExtractMember())
	{
		n.GET("", h.List)
		n.PUT("/:id/read", h.MarkRead)
	}
}
