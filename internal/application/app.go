package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/repository"
	"github.com/agentdna/agentdna/internal/domain/service"
	"github.com/agentdna/agentdna/internal/infrastructure/config"
	"github.com/agentdna/agentdna/internal/infrastructure/llm"
	_ "github.com/agentdna/agentdna/internal/infrastructure/llm/openai" // register openai provider factory
	"github.com/agentdna/agentdna/internal/infrastructure/persistence"
	"github.com/agentdna/agentdna/internal/infrastructure/prompt"
	httpServer "github.com/agentdna/agentdna/internal/interfaces/http"
)

// App is the dependency-injection container. Construction wires every
// layer; Start/Stop manage the long-running pieces.
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB

	// repositories
	conversationRepo repository.ConversationRepository
	profileRepo      repository.ProfileRepository
	insightRepo      repository.InsightRepository
	taskRepo         repository.TaskRepository
	wellnessRepo     repository.WellnessRepository

	// infrastructure
	llmRouter    *llm.Router
	promptEngine *prompt.Engine
	sweeper      *service.TaskSweeper

	// application services
	respondUseCase      *usecase.RespondUseCase
	conversationQueries *usecase.ConversationQueryUseCase
	profileUseCase      *usecase.ProfileUseCase
	intelligenceUseCase *usecase.IntelligenceUseCase
	automationUseCase   *usecase.AutomationUseCase

	// interfaces
	httpServer *httpServer.Server

	watcherCtx    context.Context
	watcherCancel context.CancelFunc
}

// NewApp creates the application container.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{
		config: cfg,
		logger: logger,
	}

	if err := app.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	if err := app.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to init infrastructure: %w", err)
	}
	if err := app.initApplicationServices(); err != nil {
		return nil, fmt.Errorf("failed to init application services: %w", err)
	}
	if err := app.initInterfaces(); err != nil {
		return nil, fmt.Errorf("failed to init interfaces: %w", err)
	}

	return app, nil
}

func (app *App) initRepositories() error {
	app.logger.Info("Initializing repositories")

	if app.config.Database.Type == "memory" {
		app.conversationRepo = persistence.NewMemoryConversationRepository()
		app.profileRepo = persistence.NewMemoryProfileRepository()
		app.insightRepo = persistence.NewMemoryInsightRepository()
		app.taskRepo = persistence.NewMemoryTaskRepository()
		app.wellnessRepo = persistence.NewMemoryWellnessRepository()
		return nil
	}

	db, err := persistence.NewDBConnection(&app.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db

	app.conversationRepo = persistence.NewGormConversationRepository(db)
	app.profileRepo = persistence.NewGormProfileRepository(db)
	app.insightRepo = persistence.NewGormInsightRepository(db)
	app.taskRepo = persistence.NewGormTaskRepository(db)
	app.wellnessRepo = persistence.NewGormWellnessRepository(db)
	return nil
}

func (app *App) initInfrastructure() error {
	app.logger.Info("Initializing infrastructure")

	// Generation router with provider failover
	app.llmRouter = llm.NewRouter(app.logger)
	for _, p := range app.config.LLM.Providers {
		provider, err := llm.CreateProvider(llm.ProviderConfig{
			Name:     p.Name,
			Type:     p.Type,
			BaseURL:  p.BaseURL,
			APIKey:   p.APIKey,
			Models:   p.Models,
			Priority: p.Priority,
		}, app.logger)
		if err != nil {
			app.logger.Error("Failed to create generation provider",
				zap.String("name", p.Name),
				zap.String("type", p.Type),
				zap.Error(err),
			)
			continue
		}
		app.llmRouter.AddProvider(provider, p.Priority)
	}
	app.logger.Info("Generation router initialized",
		zap.Int("providers", len(app.config.LLM.Providers)),
	)

	// Persona prompt engine with optional hot-reloaded overrides
	app.promptEngine = prompt.NewEngine(app.config.Prompts.Path, app.logger)

	// Due-task sweeper
	app.sweeper = service.NewTaskSweeper(service.SweeperConfig{
		Interval: app.config.Automation.SweepInterval,
		Enabled:  app.config.Automation.SweepEnabled,
	}, app.taskRepo, app.logger)

	return nil
}

func (app *App) initApplicationServices() error {
	app.logger.Info("Initializing application services")

	app.respondUseCase = usecase.NewRespondUseCase(
		app.conversationRepo,
		app.profileRepo,
		app.promptEngine,
		app.llmRouter,
		usecase.RespondConfig{
			Model:         app.config.LLM.Model,
			MaxTokens:     app.config.LLM.MaxTokens,
			Temperature:   app.config.LLM.Temperature,
			ContextWindow: app.config.LLM.ContextWindow,
		},
		app.logger,
	)

	app.conversationQueries = usecase.NewConversationQueryUseCase(app.conversationRepo, app.logger)
	app.profileUseCase = usecase.NewProfileUseCase(app.profileRepo, app.logger)

	app.intelligenceUseCase = usecase.NewIntelligenceUseCase(
		app.insightRepo,
		app.llmRouter,
		usecase.IntelligenceConfig{Model: app.config.LLM.Model},
		app.logger,
	)

	app.automationUseCase = usecase.NewAutomationUseCase(
		app.taskRepo,
		app.wellnessRepo,
		app.sweeper,
		app.logger,
	)

	return nil
}

func (app *App) initInterfaces() error {
	app.logger.Info("Initializing interfaces")

	app.httpServer = httpServer.NewServer(
		httpServer.Config{
			Host:        app.config.Server.Host,
			Port:        app.config.Server.Port,
			Mode:        app.config.Server.Mode,
			AuthEnabled: app.config.Auth.Enabled,
			AuthSecret:  app.config.Auth.Secret,
		},
		httpServer.UseCases{
			Respond:       app.respondUseCase,
			Conversations: app.conversationQueries,
			Profiles:      app.profileUseCase,
			Intelligence:  app.intelligenceUseCase,
			Automation:    app.automationUseCase,
			Providers:     app.llmRouter,
		},
		app.logger,
	)
	return nil
}

// Start brings up the HTTP server, the persona watcher, and the task sweep.
func (app *App) Start(ctx context.Context) error {
	app.logger.Info("Starting application")

	if err := app.httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	app.watcherCtx, app.watcherCancel = context.WithCancel(context.Background())
	if app.config.Prompts.Watch {
		if err := app.promptEngine.StartWatching(app.watcherCtx); err != nil {
			app.logger.Warn("Persona watching unavailable", zap.Error(err))
		}
	}

	app.sweeper.Start()

	app.logger.Info("Application started successfully")
	return nil
}

// Stop shuts everything down in reverse order.
func (app *App) Stop(ctx context.Context) error {
	app.logger.Info("Stopping application")

	app.sweeper.Stop()

	if app.watcherCancel != nil {
		app.watcherCancel()
	}
	if err := app.promptEngine.Close(); err != nil {
		app.logger.Error("Failed to close prompt engine", zap.Error(err))
	}

	if err := app.httpServer.Stop(ctx); err != nil {
		app.logger.Error("Failed to stop HTTP server", zap.Error(err))
	}

	if app.db != nil {
		sqlDB, err := app.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				app.logger.Error("Failed to close database connection", zap.Error(err))
			}
		}
	}

	app.logger.Info("Application stopped successfully")
	return nil
}

// AutomationUseCase exposes the automation service for the one-shot
// sweep command.
func (app *App) AutomationUseCase() *usecase.AutomationUseCase {
	return app.automationUseCase
}

// Logger returns the application logger.
func (app *App) Logger() *zap.Logger {
	return app.logger
}
