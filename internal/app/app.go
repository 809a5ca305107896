package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/greenmeansgo/verdant/internal/common"
	"github.com/greenmeansgo/verdant/internal/handlers"
	"github.com/greenmeansgo/verdant/internal/interfaces"
	"github.com/greenmeansgo/verdant/internal/services/charts"
	"github.com/greenmeansgo/verdant/internal/services/llm"
	"github.com/greenmeansgo/verdant/internal/services/pdf"
	"github.com/greenmeansgo/verdant/internal/services/report"
	"github.com/greenmeansgo/verdant/internal/services/scheduler"
	badgerstorage "github.com/greenmeansgo/verdant/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager

	// Generation pipeline services
	LLMService    interfaces.TextGenerator
	ChartService  interfaces.ChartService
	PDFService    interfaces.PDFService
	ReportService interfaces.ReportService

	// Background maintenance
	Scheduler *scheduler.Service

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	AssessmentHandler *handlers.AssessmentHandler
	ReportHandler     *handlers.ReportHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if err := app.Scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start maintenance scheduler: %w", err)
	}

	logger.Info().Msg("Application initialized")
	return app, nil
}

func (a *App) initDatabase() error {
	manager, err := badgerstorage.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.StorageManager = manager
	return nil
}

func (a *App) initServices() error {
	llmService, err := llm.NewClaudeService(&a.Config.Claude, a.Logger)
	if err != nil {
		return err
	}
	a.LLMService = llmService

	a.ChartService = charts.NewService(a.Config, a.Logger)
	a.PDFService = pdf.NewService(a.Config, a.ChartService, a.Logger)
	a.ReportService = report.NewService(a.Config, a.StorageManager, a.LLMService, a.Logger)
	a.Scheduler = scheduler.NewService(&a.Config.Maintenance, a.StorageManager, a.Logger)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Config, a.LLMService, a.StorageManager, a.Logger)
	a.AssessmentHandler = handlers.NewAssessmentHandler(a.StorageManager, a.ReportService, a.Logger)
	a.ReportHandler = handlers.NewReportHandler(a.StorageManager, a.ReportService, a.PDFService, a.Logger)
}

// Close releases application resources in reverse initialization order
func (a *App) Close() error {
	a.Logger.Info().Msg("Shutting down application")

	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
