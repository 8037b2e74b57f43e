package app

import (
	"strings"
	"time"

	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/utils"
)

type Config struct {
	ServiceName        string
	Environment        string
	Version            string
	JWTSecretKey       string
	AccessTokenTTL     time.Duration
	PaymentLinkURL     string
	TrialLinkURL       string
	WorkflowConfigPath string
	AllowOrigins       []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		ServiceName:        utils.GetEnv("SERVICE_NAME", "verdant-backend", log),
		Environment:        utils.GetEnv("ENVIRONMENT", "development", log),
		Version:            utils.GetEnv("SERVICE_VERSION", "dev", log),
		JWTSecretKey:       jwtSecretKey,
		AccessTokenTTL:     time.Duration(accessTokenTTLSeconds) * time.Second,
		PaymentLinkURL:     utils.GetEnv("PAYMENT_LINK_URL", "", log),
		TrialLinkURL:       utils.GetEnv("TRIAL_PAYMENT_LINK_URL", "", log),
		WorkflowConfigPath: utils.GetEnv("WORKFLOW_CONFIG_PATH", "configs/stages.yaml", log),
		AllowOrigins:       origins,
	}
}
