package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	chatusecases "parlor/internal/application/chat/usecases"
	knowledgeusecases "parlor/internal/application/knowledge/usecases"
	"parlor/internal/infrastructure/auth"
	"parlor/internal/shared/config"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
	"parlor/internal/shared/utils"
)

type AdminHandler struct {
	cfg             *config.AdminConfig
	jwtService      *auth.JWTService
	hasher          *auth.BcryptPasswordHasher
	listSessionsUC  chatusecases.ListSessionsExecutor
	sessionDetailUC chatusecases.GetSessionDetailExecutor
	reapSessionsUC  chatusecases.ReapSessionsExecutor
	saveArticleUC   knowledgeusecases.SaveArticleExecutor
	getArticleUC    knowledgeusecases.GetArticleExecutor
	listArticlesUC  knowledgeusecases.ListArticlesExecutor
	deleteArticleUC knowledgeusecases.DeleteArticleExecutor
	logger          logger.Interface
}

func NewAdminHandler(
	cfg *config.AdminConfig,
	jwtService *auth.JWTService,
	hasher *auth.BcryptPasswordHasher,
	listSessionsUC chatusecases.ListSessionsExecutor,
	sessionDetailUC chatusecases.GetSessionDetailExecutor,
	reapSessionsUC chatusecases.ReapSessionsExecutor,
	saveArticleUC knowledgeusecases.SaveArticleExecutor,
	getArticleUC knowledgeusecases.GetArticleExecutor,
	listArticlesUC knowledgeusecases.ListArticlesExecutor,
	deleteArticleUC knowledgeusecases.DeleteArticleExecutor,
) *AdminHandler {
	return &AdminHandler{
		cfg:             cfg,
		jwtService:      jwtService,
		hasher:          hasher,
		listSessionsUC:  listSessionsUC,
		sessionDetailUC: sessionDetailUC,
		reapSessionsUC:  reapSessionsUC,
		saveArticleUC:   saveArticleUC,
		getArticleUC:    getArticleUC,
		listArticlesUC:  listArticlesUC,
		deleteArticleUC: deleteArticleUC,
		logger:          logger.NewLogger(),
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("username and password are required"))
		return
	}

	if req.Username != h.cfg.Username {
		h.logger.Warnw("admin login rejected", "username", req.Username, "ip", c.ClientIP())
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid credentials"))
		return
	}
	if err := h.hasher.Verify(req.Password, h.cfg.PasswordHash); err != nil {
		h.logger.Warnw("admin login rejected", "username", req.Username, "ip", c.ClientIP())
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid credentials"))
		return
	}

	token, expiresIn, err := h.jwtService.Generate(req.Username)
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewInternalError("failed to issue token"))
		return
	}

	h.logger.Infow("admin logged in", "username", req.Username, "ip", c.ClientIP())
	utils.SuccessResponse(c, http.StatusOK, "", LoginResponse{Token: token, ExpiresIn: expiresIn})
}

// ListSessions handles GET /api/admin/sessions
func (h *AdminHandler) ListSessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	query := chatusecases.ListSessionsQuery{
		Status:   c.Query("status"),
		Email:    c.Query("email"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.listSessionsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, NewSessionResponses(result.Sessions), result.Total, result.Page, result.PageSize)
}

// GetSession handles GET /api/admin/sessions/:sid
func (h *AdminHandler) GetSession(c *gin.Context) {
	result, err := h.sessionDetailUC.Execute(c.Request.Context(), chatusecases.GetSessionDetailQuery{
		SID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", NewSessionDetailResponse(result))
}

// ReapSessions handles POST /api/admin/sessions/reap
func (h *AdminHandler) ReapSessions(c *gin.Context) {
	result, err := h.reapSessionsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sweep completed", ReapResponse{
		HardExpired:       result.HardExpired,
		InactivityExpired: result.InactivityExpired,
		QueueActivated:    result.QueueActivated,
	})
}

// SaveArticle handles PUT /api/admin/knowledge/articles/:slug
func (h *AdminHandler) SaveArticle(c *gin.Context) {
	var req SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid article payload"))
		return
	}

	result, err := h.saveArticleUC.Execute(c.Request.Context(), req.ToCommand(c.Param("slug")))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result, "Article created")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Article updated", result)
}

// GetArticle handles GET /api/admin/knowledge/articles/:slug
func (h *AdminHandler) GetArticle(c *gin.Context) {
	result, err := h.getArticleUC.Execute(c.Request.Context(), knowledgeusecases.GetArticleQuery{
		Slug:               c.Param("slug"),
		IncludeUnpublished: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListArticles handles GET /api/admin/knowledge/articles
func (h *AdminHandler) ListArticles(c *gin.Context) {
	result, err := h.listArticlesUC.Execute(c.Request.Context(), knowledgeusecases.ListArticlesQuery{
		IncludeUnpublished: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"articles": result.Articles})
}

// DeleteArticle handles DELETE /api/admin/knowledge/articles/:slug
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	if err := h.deleteArticleUC.Execute(c.Request.Context(), c.Param("slug")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Article deleted", nil)
}
