package knowledge

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parlor/internal/application/knowledge/usecases"
	"parlor/internal/shared/logger"
	"parlor/internal/shared/utils"
)

// ArticleHandler serves the public, read-only view of the knowledge base.
// Only published articles are visible here; authoring goes through the
// admin surface.
type ArticleHandler struct {
	getArticleUC   usecases.GetArticleExecutor
	listArticlesUC usecases.ListArticlesExecutor
	logger         logger.Interface
}

func NewArticleHandler(
	getArticleUC usecases.GetArticleExecutor,
	listArticlesUC usecases.ListArticlesExecutor,
) *ArticleHandler {
	return &ArticleHandler{
		getArticleUC:   getArticleUC,
		listArticlesUC: listArticlesUC,
		logger:         logger.NewLogger(),
	}
}

// ListArticles handles GET /api/knowledge/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	result, err := h.listArticlesUC.Execute(c.Request.Context(), usecases.ListArticlesQuery{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"articles": NewArticleSummaryResponses(result.Articles),
	})
}

// GetArticle handles GET /api/knowledge/articles/:slug
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	result, err := h.getArticleUC.Execute(c.Request.Context(), usecases.GetArticleQuery{
		Slug: c.Param("slug"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", NewArticleResponse(result))
}
