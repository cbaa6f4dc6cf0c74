package api

import (
	"context"

	"github.com/etude-app/etude-api/internal/api/handlers"
	apimiddleware "github.com/etude-app/etude-api/internal/api/middleware"
	"github.com/etude-app/etude-api/internal/config"
	"github.com/etude-app/etude-api/internal/logger"
	"github.com/etude-app/etude-api/internal/metrics"
	"github.com/etude-app/etude-api/internal/middleware"
	"github.com/etude-app/etude-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, version string) *gin.Engine {
	router := gin.New()

	// CloudWatch metrics are only emitted in production
	cloudwatch, err := metrics.NewClient(context.Background(), cfg.Environment)
	if err != nil {
		logger.Warn("CloudWatch metrics disabled", logger.Fields{"error": err.Error()})
		cloudwatch = nil
	}

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking, structured logging and request metrics
	router.Use(apimiddleware.RequestTracking(cloudwatch))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Check)

	// Bootstrap endpoint (one-time admin setup)
	bootstrapHandler := handlers.NewBootstrapHandler(db, cfg)
	router.POST("/api/bootstrap/set-admin", bootstrapHandler.SetAdminRole)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(db, version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Initialize email service for all handlers
	emailService := services.NewEmailService(db, cfg)

	// Auth routes (public)
	auth := router.Group("/api/auth")
	{
		authHandler := handlers.NewAuthHandler(db, cfg, emailService)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/verify-email", authHandler.VerifyEmail)
		auth.POST("/resend-verification", authHandler.ResendVerification)

		// OAuth routes
		oauthHandler := handlers.NewOAuthHandler(db, cfg)
		auth.GET("/:provider", oauthHandler.BeginAuth)         // /api/auth/google or /api/auth/github
		auth.GET("/:provider/callback", oauthHandler.Callback) // OAuth callback
	}

	// Protected API routes v1 (require JWT)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(db, cfg))
	{
		// Exercise generation and library
		exerciseHandler := handlers.NewExerciseHandler(db, cfg, cloudwatch)
		v1.POST("/exercises/generate", exerciseHandler.Generate)
		v1.POST("/exercises", exerciseHandler.Save)
		v1.GET("/exercises", exerciseHandler.List)
		v1.GET("/exercises/:id", exerciseHandler.Get)
		v1.DELETE("/exercises/:id", exerciseHandler.Delete)

		// Practice settings
		settingsHandler := handlers.NewSettingsHandler(db)
		v1.GET("/settings", settingsHandler.Get)
		v1.PUT("/settings", settingsHandler.Update)

		// User/dashboard endpoints
		userHandler := handlers.NewUserHandler(db)
		v1.GET("/me", userHandler.GetProfile)
		v1.GET("/practice/stats", userHandler.GetPracticeStats)
		v1.GET("/practice/history", userHandler.GetPracticeHistory)
	}

	// Admin API routes (admin only)
	admin := router.Group("/api/admin")
	admin.Use(middleware.JWTAuth(db, cfg), middleware.AdminRequired())
	{
		adminHandler := handlers.NewAdminHandler(db)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUserDetails)
		admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
		admin.PUT("/users/:id/toggle-active", adminHandler.ToggleUserActive)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
	}

	return router
}
