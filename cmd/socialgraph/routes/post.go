package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/handlers"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// RegisterPostRoutes registers post, like and comment routes
func RegisterPostRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewPostHandler(c)

	p := e.Group("/api/v1/posts")
	p.Use(middleware.ExtractMember())
	{
		p.POST("", h.Create)
		p.GET("/:id", h.Get)
		p.PUT("/:id", h.Edit)
		p.DELETE("/:id", h.Delete)
		p.PUT("/:id/like", h.ToggleLike)
		p.GET("/:id/likes", h.ListLikes)
		p.POST("/:id/comments", h.AddComment)
		p.GET("/:id/comments", h.ListComments)
	}

	cm := e.Group("/api/v1/comments")
	cm.Use(middleware.ExtractMember())
	{
		cm.PUT("/:id", h.EditComment)
		cm.DELETE("/:id", h.DeleteComment)
	}
}
