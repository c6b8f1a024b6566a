package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/handlers"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// RegisterMemberRoutes registers member lifecycle routes
func RegisterMemberRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewMemberHandler(c)
	ph := handlers.NewPostHandler(c)

	// Registration happens before the member has an identity to act as
	e.POST("/api/v1/members", h.Register)

	m := e.Group("/api/v1/members")
	m.Use(middleware.ExtractMember())
	{
		m.GET("/:id", h.Get)
		m.GET("/:id/posts", ph.ListByAuthor)
		m.PUT("/me", h.UpdateProfile)
		m.DELETE("/me", h.Delete)
	}
}
