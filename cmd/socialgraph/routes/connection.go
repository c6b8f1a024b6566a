package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/handlers"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// RegisterConnectionRoutes registers connection-edge and
// recommendation routes.
func RegisterConnectionRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewConnectionHandler(c)

	conn := e.Group("/api/v1/connections")
	conn.Use(middleware.ExtractMember())
	{
		conn.POST("", h.SendRequest)
		conn.GET("", h.List)
		conn.GET("/recommendations", h.Recommendations)
		conn.PUT("/:id/accept", h.Accept)
		conn.PUT("/:id/seen", h.MarkSeen)
		conn.DELETE("/:id", h.Remove)
	}
}
