package services

import (
	"context"
	"fmt"

	"github.com/verdantmarket/verdant-backend/internal/clients/sendgrid"
	"github.com/verdantmarket/verdant-backend/internal/logger"
)

// EmailService sends transactional onboarding mail. A nil sendgrid
// client turns every send into a logged no-op, which is how local
// environments run.
type EmailService interface {
	SendStageCompletionEmail(ctx context.Context, toEmail, toName, stageLabel string) error
}

type emailService struct {
	log    *logger.Logger
	client sendgrid.Client
}

func NewEmailService(baseLog *logger.Logger, client sendgrid.Client) EmailService {
	return &emailService{
		log:    baseLog.With("service", "EmailService"),
		client: client,
	}
}

func (es *emailService) SendStageCompletionEmail(ctx context.Context, toEmail, toName, stageLabel string) error {
	if es.client == nil {
		es.log.Info("Email client not configured, skipping stage completion email", "to", toEmail, "stage", stageLabel)
		return nil
	}
	if toEmail == "" {
		return fmt.Errorf("recipient email is empty")
	}
	subject := fmt.Sprintf("You've completed the %s stage", stageLabel)
	plain := fmt.Sprintf("Nice work! The %s stage of your onboarding is complete. Log back in to continue to the next step.", stageLabel)
	html := fmt.Sprintf("<p>Nice work! The <strong>%s</strong> stage of your onboarding is complete.</p><p>Log back in to continue to the next step.</p>", stageLabel)
	return es.client.Send(ctx, sendgrid.SendEmailRequest{
		ToEmail:   toEmail,
		ToName:    toName,
		Subject:   subject,
		PlainBody: plain,
		HTMLBody:  html,
	})
}
