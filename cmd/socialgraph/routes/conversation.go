package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/container"
	"github.com/linkhive/socialgraph/cmd/socialgraph/handlers"
	"github.com/linkhive/socialgraph/cmd/socialgraph/middleware"
)

// RegisterConversationRoutes registers conversation and message routes
func RegisterConversationRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewConversationHandler(c)

	conv := e.Group("/api/v1/conversations")
	conv.Use(middleware.ExtractMember())
	{
		conv.POST("", h.Start)
		conv.GET("", h.List)
		conv.GET("/:id", h.Get)
		conv.POST("/:id/messages", h.SendMessage)
		conv.GET("/:id/messages", h.ListMessages)
	}

	msg := e.Group("/api/v1/messages")
	msg.Use(middleware.ExtractMember())
	{
		msg.PUT("/:id/read", h.MarkMessageRead)
	}
}
