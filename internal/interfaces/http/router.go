package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	chatusecases "parlor/internal/application/chat/usecases"
	"parlor/internal/application/knowledge/retriever"
	knowledgeusecases "parlor/internal/application/knowledge/usecases"
	"parlor/internal/infrastructure/assistant"
	"parlor/internal/infrastructure/auth"
	"parlor/internal/infrastructure/config"
	"parlor/internal/infrastructure/email"
	"parlor/internal/infrastructure/repository"
	"parlor/internal/infrastructure/scheduler"
	"parlor/internal/infrastructure/token"
	adminhandlers "parlor/internal/interfaces/http/handlers/admin"
	chathandlers "parlor/internal/interfaces/http/handlers/chat"
	knowledgehandlers "parlor/internal/interfaces/http/handlers/knowledge"
	"parlor/internal/interfaces/http/middleware"
	"parlor/internal/interfaces/http/routes"
	"parlor/internal/shared/logger"
	"parlor/internal/shared/services/markdown"
	"parlor/internal/shared/utils"
)

type Router struct {
	engine          *gin.Engine
	sessionHandler  *chathandlers.SessionHandler
	articleHandler  *knowledgehandlers.ArticleHandler
	adminHandler    *adminhandlers.AdminHandler
	jwtService      *auth.JWTService
	rateLimiter     *middleware.RateLimiter
	reaperScheduler *scheduler.ReaperScheduler
	seedKnowledgeUC knowledgeusecases.SaveArticleExecutor
	logger          logger.Interface
}

func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	sessionRepo := repository.NewChatSessionRepository(db)
	articleRepo := repository.NewArticleRepository(db)

	var notifier chatusecases.SessionNotifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(&cfg.Email, cfg.Server.BaseURL)
	}

	estimator := chatusecases.NewWaitEstimator(sessionRepo, &cfg.Chat, log)
	reconcileUC := chatusecases.NewReconcileQueueUseCase(sessionRepo, notifier, &cfg.Chat, log)
	startSessionUC := chatusecases.NewStartSessionUseCase(sessionRepo, token.NewSessionTokenGenerator(), estimator, &cfg.Chat, log)
	getStatusUC := chatusecases.NewGetSessionStatusUseCase(sessionRepo, reconcileUC, estimator, &cfg.Chat, log)
	heartbeatUC := chatusecases.NewHeartbeatUseCase(sessionRepo, log)
	endSessionUC := chatusecases.NewEndSessionUseCase(sessionRepo, reconcileUC, log)
	reapSessionsUC := chatusecases.NewReapSessionsUseCase(sessionRepo, reconcileUC, &cfg.Chat, log)
	converseUC := chatusecases.NewConverseUseCase(
		sessionRepo,
		retriever.NewKeywordRetriever(articleRepo),
		assistant.NewClient(&cfg.Assistant, log),
		log,
	)
	listSessionsUC := chatusecases.NewListSessionsUseCase(sessionRepo, log)
	sessionDetailUC := chatusecases.NewGetSessionDetailUseCase(sessionRepo, log)

	renderer := markdown.NewRenderer()
	saveArticleUC := knowledgeusecases.NewSaveArticleUseCase(articleRepo, log)
	getArticleUC := knowledgeusecases.NewGetArticleUseCase(articleRepo, renderer, log)
	listArticlesUC := knowledgeusecases.NewListArticlesUseCase(articleRepo, log)
	deleteArticleUC := knowledgeusecases.NewDeleteArticleUseCase(articleRepo, log)

	jwtService := auth.NewJWTService(cfg.Admin.JWTSecret, cfg.Admin.JWTExpMinutes)
	hasher := auth.NewBcryptPasswordHasher(0)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute, log)
	}

	reaperScheduler := scheduler.NewReaperScheduler(reapSessionsUC, cfg.Chat.ReaperInterval(), log)

	return &Router{
		engine:         engine,
		sessionHandler: chathandlers.NewSessionHandler(startSessionUC, getStatusUC, heartbeatUC, endSessionUC, converseUC),
		articleHandler: knowledgehandlers.NewArticleHandler(getArticleUC, listArticlesUC),
		adminHandler: adminhandlers.NewAdminHandler(
			&cfg.Admin,
			jwtService,
			hasher,
			listSessionsUC,
			sessionDetailUC,
			reapSessionsUC,
			saveArticleUC,
			getArticleUC,
			listArticlesUC,
			deleteArticleUC,
		),
		jwtService:      jwtService,
		rateLimiter:     rateLimiter,
		reaperScheduler: reaperScheduler,
		seedKnowledgeUC: saveArticleUC,
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.healthCheck)

	routes.SetupChatRoutes(r.engine, &routes.ChatRouteConfig{
		SessionHandler: r.sessionHandler,
		RateLimiter:    r.rateLimiter,
	})
	routes.SetupKnowledgeRoutes(r.engine, &routes.KnowledgeRouteConfig{
		ArticleHandler: r.articleHandler,
	})
	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		AdminHandler: r.adminHandler,
		JWTService:   r.jwtService,
	})
}

// StartSchedulers launches the background expiry sweep.
func (r *Router) StartSchedulers(ctx context.Context) {
	r.reaperScheduler.Start(ctx)
}

// SeedKnowledge returns the executor used by the seed command.
func (r *Router) SeedKnowledge() knowledgeusecases.SaveArticleExecutor {
	return r.seedKnowledgeUC
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown stops background schedulers.
func (r *Router) Shutdown() {
	if r.reaperScheduler != nil {
		r.reaperScheduler.Stop()
	}
}

func (r *Router) healthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}
