package routes

import (
	"github.com/gin-gonic/gin"

	"parlor/internal/infrastructure/auth"
	adminhandlers "parlor/internal/interfaces/http/handlers/admin"
	"parlor/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	AdminHandler *adminhandlers.AdminHandler
	JWTService   *auth.JWTService
}

func SetupAdminRoutes(engine *gin.Engine, config *AdminRouteConfig) {
	admin := engine.Group("/api/admin")

	admin.POST("/login", config.AdminHandler.Login)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuth(config.JWTService))
	{
		protected.GET("/sessions", config.AdminHandler.ListSessions)
		protected.GET("/sessions/:sid", config.AdminHandler.GetSession)
		protected.POST("/sessions/reap", config.AdminHandler.ReapSessions)

		protected.GET("/knowledge/articles", config.AdminHandler.ListArticles)
		protected.PUT("/knowledge/articles/:slug", config.AdminHandler.SaveArticle)
		protected.GET("/knowledge/articles/:slug", config.AdminHandler.GetArticle)
		protected.DELETE("/knowledge/articles/:slug", config.AdminHandler.DeleteArticle)
	}
}
