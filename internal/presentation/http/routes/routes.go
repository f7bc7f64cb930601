package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ipremium/repairdesk-api/internal/config"
	domainRepo "github.com/ipremium/repairdesk-api/internal/domain/repository"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/handler"
	"github.com/ipremium/repairdesk-api/internal/presentation/http/middleware"
	"github.com/ipremium/repairdesk-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Receipt *handler.ReceiptHandler
	Assist  *handler.AssistHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.Auth(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerReceiptRoutes(protected, h, deps)
		registerAssistRoutes(protected, h)
	}

	return router
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		// Receipt creation uses idempotency middleware so a retried
		// submission never appends twice
		receipts.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Receipt.Create)
		receipts.GET("/stream", h.Receipt.Stream)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/document", h.Receipt.Document)
		receipts.POST("/:id/message", h.Receipt.Message)
		receipts.POST("/:id/status", h.Receipt.UpdateStatus)
	}
}

func registerAssistRoutes(protected *gin.RouterGroup, h *Handlers) {
	assist := protected.Group("/assist")
	{
		assist.POST("/estimate", h.Assist.Estimate)
		assist.POST("/followup", h.Assist.FollowUp)
	}
}
