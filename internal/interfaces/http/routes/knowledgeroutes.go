package routes

import (
	"github.com/gin-gonic/gin"

	knowledgehandlers "parlor/internal/interfaces/http/handlers/knowledge"
)

type KnowledgeRouteConfig struct {
	ArticleHandler *knowledgehandlers.ArticleHandler
}

func SetupKnowledgeRoutes(engine *gin.Engine, config *KnowledgeRouteConfig) {
	articles := engine.Group("/api/knowledge/articles")
	{
		articles.GET("", config.ArticleHandler.ListArticles)
		articles.GET("/:slug", config.ArticleHandler.GetArticle)
	}
}
