package routes

import (
	"github.com/gin-gonic/gin"

	chathandlers "parlor/internal/interfaces/http/handlers/chat"
	"parlor/internal/interfaces/http/middleware"
)

type ChatRouteConfig struct {
	SessionHandler *chathandlers.SessionHandler
	RateLimiter    *middleware.RateLimiter
}

func SetupChatRoutes(engine *gin.Engine, config *ChatRouteConfig) {
	sessions := engine.Group("/api/chat/sessions")
	if config.RateLimiter != nil {
		sessions.Use(config.RateLimiter.Handle())
	}
	{
		sessions.POST("", config.SessionHandler.StartSession)

		// The "me" resource is addressed by the bearer token, not a path ID,
		// so a session token never appears in access logs.
		sessions.GET("/me", config.SessionHandler.GetStatus)
		sessions.POST("/me/heartbeat", config.SessionHandler.Heartbeat)
		sessions.POST("/me/messages", config.SessionHandler.Converse)
		sessions.DELETE("/me", config.SessionHandler.EndSession)
	}
}
