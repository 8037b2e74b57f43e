package app

import (
	"github.com/verdantmarket/verdant-backend/internal/handlers"
	"github.com/verdantmarket/verdant-backend/internal/logger"
)

type Handlers struct {
	Sections    *handlers.SectionsHandler
	Answers     *handlers.AnswersHandler
	Onboarding  *handlers.OnboardingHandler
	Documents   *handlers.DocumentsHandler
	Profile     *handlers.ProfileHandler
	ToolProfile *handlers.ToolProfileHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Sections:    handlers.NewSectionsHandler(s.Schema),
		Answers:     handlers.NewAnswersHandler(s.Answer),
		Onboarding:  handlers.NewOnboardingHandler(s.Onboarding),
		Documents:   handlers.NewDocumentsHandler(s.Document),
		Profile:     handlers.NewProfileHandler(s.Profile),
		ToolProfile: handlers.NewToolProfileHandler(s.ToolProfile),
	}
}
