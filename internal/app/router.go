package app

import (
	"github.com/gin-gonic/gin"

	"github.com/verdantmarket/verdant-backend/internal/observability"
	"github.com/verdantmarket/verdant-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AllowOrigins:       cfg.AllowOrigins,
		TracingEnabled:     observability.Enabled(),
		AuthMiddleware:     m.Auth,
		SectionsHandler:    h.Sections,
		AnswersHandler:     h.Answers,
		OnboardingHandler:  h.Onboarding,
		DocumentsHandler:   h.Documents,
		ProfileHandler:     h.Profile,
		ToolProfileHandler: h.ToolProfile,
	})
}
