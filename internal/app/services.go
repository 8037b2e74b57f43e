package app

import (
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/onboarding"
	"github.com/verdantmarket/verdant-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Schema      services.SchemaService
	Answer      services.AnswerService
	Onboarding  services.OnboardingService
	Document    services.DocumentService
	Profile     services.ProfileService
	ToolProfile services.ToolProfileService
	Email       services.EmailService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients, orders onboarding.WorkflowOrders) Services {
	log.Info("Wiring services...")
	email := services.NewEmailService(log, c.Sendgrid)
	schema := services.NewSchemaService(db, log, r.Flow, c.SchemaCache)
	return Services{
		Auth:    services.NewAuthService(db, log, r.Profile, cfg.JWTSecretKey),
		Schema:  schema,
		Answer:  services.NewAnswerService(db, log, r.Profile, r.Progress, schema),
		Email:   email,
		Onboarding: services.NewOnboardingService(
			db,
			log,
			r.Stage,
			r.Progress,
			r.Profile,
			r.ContractSignature,
			email,
			orders,
			cfg.PaymentLinkURL,
			cfg.TrialLinkURL,
		),
		Document:    services.NewDocumentService(db, log, r.StageDocument, r.Progress, c.Bucket),
		Profile:     services.NewProfileService(db, log, r.Profile, r.Intake),
		ToolProfile: services.NewToolProfileService(db, log, r.ToolProfile),
	}
}
