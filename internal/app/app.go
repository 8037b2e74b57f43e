package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/db"
	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/observability"
	"github.com/verdantmarket/verdant-backend/internal/onboarding"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()

	workflowCfg, err := onboarding.LoadWorkflowConfig(cfg.WorkflowConfigPath)
	if err != nil {
		log.Warn("Workflow config load failed, using defaults", "error", err)
	}

	clientset := wireClients(log)
	reposet := wireRepos(theDB, log)

	if err := db.SeedStageCatalog(context.Background(), reposet.Stage, workflowCfg); err != nil {
		log.Warn("Stage catalog seed failed", "error", err)
	}

	serviceset := wireServices(theDB, log, cfg, reposet, clientset, workflowCfg.Orders)
	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clientset,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Clients.SchemaCache != nil {
		if err := a.Clients.SchemaCache.Close(); err != nil {
			a.Log.Warn("schema cache close failed", "error", err)
		}
	}
	a.Log.Sync()
}
