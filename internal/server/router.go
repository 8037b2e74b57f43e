package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/verdantmarket/verdant-backend/internal/handlers"
	"github.com/verdantmarket/verdant-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName        string
	AllowOrigins       []string
	TracingEnabled     bool
	AuthMiddleware     *middleware.AuthMiddleware
	SectionsHandler    *handlers.SectionsHandler
	AnswersHandler     *handlers.AnswersHandler
	OnboardingHandler  *handlers.OnboardingHandler
	DocumentsHandler   *handlers.DocumentsHandler
	ProfileHandler     *handlers.ProfileHandler
	ToolProfileHandler *handlers.ToolProfileHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/api/tool-profiles", cfg.ToolProfileHandler.List)
	router.POST("/api/tool-profiles/:id/unlock", cfg.ToolProfileHandler.Unlock)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Profile
	protected.GET("/profile", cfg.ProfileHandler.GetMe)
	protected.POST("/profile", cfg.ProfileHandler.Create)
	protected.GET("/profile/aggregate", cfg.ProfileHandler.GetAggregate)
	protected.PUT("/profile/intake/seller", cfg.ProfileHandler.SaveSellerIntake)
	protected.PUT("/profile/intake/real-estate", cfg.ProfileHandler.SaveRealEstateIntake)
	// Forms
	protected.GET("/flows/:flow/form", cfg.AnswersHandler.GetForm)
	protected.PUT("/answers", cfg.AnswersHandler.SaveAnswers)
	// Stages
	protected.GET("/stages", cfg.OnboardingHandler.ListStages)
	protected.GET("/progress", cfg.OnboardingHandler.GetProgress)
	protected.POST("/stages/:id/enter", cfg.OnboardingHandler.EnterStage)
	protected.POST("/stages/:id/contract/accept", cfg.OnboardingHandler.AcceptContract)
	protected.POST("/stages/:id/complete", cfg.OnboardingHandler.CompleteStage)
	protected.GET("/payment/link", cfg.OnboardingHandler.GetPaymentLink)
	// Documents
	protected.POST("/stages/:id/documents", cfg.DocumentsHandler.Upload)
	protected.GET("/stages/:id/documents", cfg.DocumentsHandler.List)
	protected.DELETE("/stages/:id/documents/:docId", cfg.DocumentsHandler.Delete)
	protected.GET("/stages/:id/documents/zip", cfg.DocumentsHandler.DownloadZip)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/flows", cfg.SectionsHandler.ListFlows)
	admin.GET("/sections", cfg.SectionsHandler.GetSections)
	admin.PUT("/sections", cfg.SectionsHandler.SaveSections)
	admin.POST("/stages/status", cfg.OnboardingHandler.SetStageStatus)
	admin.POST("/tool-profiles", cfg.ToolProfileHandler.Create)

	return router
}
