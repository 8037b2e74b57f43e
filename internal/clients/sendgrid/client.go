package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/utils"
)

// Client sends transactional mail through the SendGrid v3 API. The
// only caller is the stage-completion notification, which treats every
// failure as non-fatal.
type Client interface {
	Send(ctx context.Context, req SendEmailRequest) error
}

type Config struct {
	APIKey           string
	BaseURL          string
	DefaultFromEmail string
	DefaultFromName  string
	Timeout          time.Duration
	MaxRetries       int
}

type SendEmailRequest struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainBody string
	HTMLBody  string
}

type client struct {
	log        *logger.Logger
	http       *http.Client
	cfg        Config
	maxRetries int
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		APIKey:           strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		BaseURL:          strings.TrimSpace(os.Getenv("SENDGRID_BASE_URL")),
		DefaultFromEmail: strings.TrimSpace(os.Getenv("SENDGRID_FROM_EMAIL")),
		DefaultFromName:  strings.TrimSpace(os.Getenv("SENDGRID_FROM_NAME")),
		Timeout:          time.Duration(utils.GetEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 30, log)) * time.Second,
		MaxRetries:       utils.GetEnvAsInt("SENDGRID_MAX_RETRIES", 3, log),
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv(log))
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &client{
		log:        log.With("client", "SendgridClient"),
		http:       &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		maxRetries: cfg.MaxRetries,
	}, nil
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgMail struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

func (c *client) Send(ctx context.Context, req SendEmailRequest) error {
	if req.ToEmail == "" {
		return fmt.Errorf("recipient email required")
	}
	payload := sgMail{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: req.ToEmail, Name: req.ToName}}}},
		From:             sgAddress{Email: c.cfg.DefaultFromEmail, Name: c.cfg.DefaultFromName},
		Subject:          req.Subject,
	}
	if req.PlainBody != "" {
		payload.Content = append(payload.Content, sgContent{Type: "text/plain", Value: req.PlainBody})
	}
	if req.HTMLBody != "" {
		payload.Content = append(payload.Content, sgContent{Type: "text/html", Value: req.HTMLBody})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		lastErr = c.sendOnce(ctx, body)
		if lastErr == nil {
			return nil
		}
		c.log.Warn("sendgrid send attempt failed", "attempt", attempt+1, "error", lastErr)
	}
	return fmt.Errorf("sendgrid send failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *client) sendOnce(ctx context.Context, body []byte) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
}
