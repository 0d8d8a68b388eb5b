package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/interfaces/http/handlers"
	"github.com/agentdna/agentdna/internal/interfaces/http/middleware"
)

// Server is the HTTP API front-end.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// Config configures the HTTP server.
type Config struct {
	Host        string
	Port        int
	Mode        string // local, production
	AuthEnabled bool
	AuthSecret  string
}

// UseCases bundles the application services the API exposes.
type UseCases struct {
	Respond       *usecase.RespondUseCase
	Conversations *usecase.ConversationQueryUseCase
	Profiles      *usecase.ProfileUseCase
	Intelligence  *usecase.IntelligenceUseCase
	Automation    *usecase.AutomationUseCase
	Providers     handlers.ProviderStatusSource
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg Config, ucs UseCases, logger *zap.Logger) *Server {
	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	chatHandler := handlers.NewChatHandler(ucs.Respond, ucs.Conversations, logger)
	profileHandler := handlers.NewProfileHandler(ucs.Profiles, logger)
	intelligenceHandler := handlers.NewIntelligenceHandler(ucs.Intelligence, logger)
	automationHandler := handlers.NewAutomationHandler(ucs.Automation, logger)
	statusHandler := handlers.NewStatusHandler(ucs.Providers)

	setupRoutes(router, cfg, chatHandler, profileHandler, intelligenceHandler, automationHandler, statusHandler, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return &Server{
		server: server,
		logger: logger,
	}
}

// Start begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.server.Addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

func setupRoutes(
	router *gin.Engine,
	cfg Config,
	chatHandler *handlers.ChatHandler,
	profileHandler *handlers.ProfileHandler,
	intelligenceHandler *handlers.IntelligenceHandler,
	automationHandler *handlers.AutomationHandler,
	statusHandler *handlers.StatusHandler,
	logger *zap.Logger,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	v1 := router.Group("/api/v1")
	if cfg.AuthEnabled {
		v1.Use(middleware.RequireAuth(cfg.AuthSecret, logger))
	}
	{
		v1.POST("/chat", chatHandler.Chat)
		v1.GET("/conversations", chatHandler.ListConversations)
		v1.GET("/conversations/:id", chatHandler.GetConversation)

		v1.GET("/profiles/:user_id", profileHandler.Get)
		v1.PUT("/profiles/:user_id", profileHandler.Upsert)

		v1.POST("/intelligence", intelligenceHandler.Dispatch)
		v1.POST("/automation", automationHandler.Dispatch)

		v1.GET("/providers", statusHandler.Providers)
	}
}

// ginLogger logs each request with zap.
func ginLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
