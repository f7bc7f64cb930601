package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ipremium/repairdesk-api/internal/application/service"
	"github.com/ipremium/repairdesk-api/internal/config"
	"github.com/ipremium/repairdesk-api/internal/infrastructure/database"
	"github.com/ipremium/repairdesk-api/internal/infrastructure/repository"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/handler"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/routes"
	"github.com/ipremium/repairdesk-api/pkg/document"
	"github.com/ipremium/repairdesk-api/pkg/textgen"
	"github.com/ipremium/repairdesk-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Initialize repositories
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the text service client; an empty key disables it and
	// every operation falls back to deterministic local text
	textgenClient := textgen.NewClient(textgen.Config{
		APIKey:  cfg.TextGen.APIKey,
		BaseURL: cfg.TextGen.BaseURL,
		Model:   cfg.TextGen.Model,
		Timeout: cfg.TextGen.Timeout,
	}, logger)

	// Initialize the document renderer
	renderer, err := document.NewRendererFromConfig(cfg.Document.Renderer)
	if err != nil {
		logger.Fatal("Failed to initialize document renderer", zap.Error(err))
	}

	shop := document.ShopInfo{
		Name:         cfg.Shop.Name,
		TagLine:      cfg.Shop.TagLine,
		AddressLines: []string{cfg.Shop.AddressLine1, cfg.Shop.AddressLine2},
		Phone:        cfg.Shop.Phone,
		Email:        cfg.Shop.Email,
	}

	// Initialize services
	feed := service.NewReceiptFeed(receiptRepo, cfg.Feed.PollInterval, logger)
	defer feed.Close()

	authService := service.NewAuthService(cfg.Auth, jwtManager, logger)
	documentService := service.NewDocumentService(receiptRepo, renderer, shop)
	receiptService := service.NewReceiptService(receiptRepo, textgenClient, documentService, feed, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Receipt: handler.NewReceiptHandler(receiptService, documentService, feed),
		Assist:  handler.NewAssistHandler(textgenClient),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
