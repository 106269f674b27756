package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"meridian/internal/clients/audience"
	"meridian/internal/clients/vectorizer"
	"meridian/internal/config"
	"meridian/internal/database"
	"meridian/internal/extract"
	"meridian/internal/forms"
	"meridian/internal/handlers"
	"meridian/internal/logger"
	"meridian/internal/mail"
	"meridian/internal/metrics"
	"meridian/internal/middleware"
	"meridian/internal/models"
	"meridian/internal/services"
	"meridian/internal/tokens"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "meridian/internal/docs" // Import swagger docs
)

// @title           Meridian API
// @version         1.0
// @description     Meridian is the backend for a venture fund's marketing site and investor portal: portfolio, podcast, newsletter, and the multi-step investment form.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Redis backs the single-use magic-link tokens and their rate limits.
	rdb, err := tokens.Open(appConfig.RedisAddr, appConfig.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	tokenStore := tokens.NewStore(rdb)

	// Outbound mail. Without SES credentials we log messages instead of
	// sending them, which keeps local development working offline.
	var sender mail.Sender
	if appConfig.MailEnabled {
		sender, err = mail.NewSESSender(context.Background(), appConfig.AWSRegion, appConfig.MailFrom)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		log.Info("Mail delivery disabled, logging outbound messages instead")
		sender = mail.LogSender{}
	}

	audienceClient := audience.NewClient(appConfig.AudienceBaseURL, appConfig.AudienceAPIKey, appConfig.AudienceListID, nil)
	vectorizerClient := vectorizer.NewClient(appConfig.VectorizerBaseURL, appConfig.VectorizerAPIKey, nil)
	fetcher := extract.NewFetcher(nil)

	// Custom form validation tags, registered on both the package
	// validator and gin's binding engine.
	forms.Register()

	// Initialize services
	db := dbManager.DB()
	companyService := services.NewCompanyService(db)
	founderService := services.NewFounderService(db)
	guestService := services.NewGuestService(db)
	newsletterService := services.NewNewsletterService(db, audienceClient, sender, appConfig.BaseURL)
	authService := services.NewAuthService(db, tokenStore, sender, appConfig.BaseURL)
	toolsService := services.NewToolsService(fetcher, vectorizerClient)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService, auditService)
	founderHandler := handlers.NewFounderHandler(founderService, auditService)
	guestHandler := handlers.NewGuestHandler(guestService, toolsService, auditService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	toolsHandler := handlers.NewToolsHandler(toolsService, auditService)
	seoHandler := handlers.NewSEOHandler(companyService, guestService, appConfig.BaseURL)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(metrics.Middleware())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Crawler surface lives at the site root, not under the API prefix.
	router.GET("/sitemap.xml", seoHandler.Sitemap)
	router.GET("/robots.txt", seoHandler.Robots)

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/magic-link", authHandler.RequestMagicLink)
	auth.POST("/verify", authHandler.VerifyMagicLink)
	auth.POST("/login", authHandler.PasswordLogin)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/portfolio", companyHandler.ListPublic)
	v1.GET("/portfolio/:slug", companyHandler.GetBySlug)
	v1.GET("/podcast", guestHandler.ListPublished)

	newsletter := v1.Group("/newsletter")
	newsletter.POST("/subscribe", newsletterHandler.Subscribe)
	newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/profile", authHandler.GetProfile)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))

	companies := admin.Group("/companies")
	companies.POST("", companyHandler.Create)
	companies.GET("", companyHandler.List)
	companies.POST("/validate-step", companyHandler.ValidateStep)
	companies.GET("/:id", companyHandler.Get)
	companies.PUT("/:id", companyHandler.Update)
	companies.DELETE("/:id", companyHandler.Delete)
	companies.PUT("/:id/logo", companyHandler.SetLogo)
	companies.POST("/:id/founders", founderHandler.Add)
	companies.GET("/:id/founders", founderHandler.List)

	founders := admin.Group("/founders")
	founders.PUT("/:id", founderHandler.Update)
	founders.DELETE("/:id", founderHandler.Delete)

	guests := admin.Group("/guests")
	guests.POST("", guestHandler.Create)
	guests.GET("", guestHandler.List)
	guests.PUT("/:id", guestHandler.Update)
	guests.POST("/:id/sync-episode", guestHandler.SyncEpisode)
	guests.DELETE("/:id", guestHandler.Delete)

	admin.GET("/subscribers", newsletterHandler.ListSubscribers)

	tools := admin.Group("/tools")
	tools.POST("/extract-logo", toolsHandler.ExtractLogo)
	tools.POST("/extract-episode", toolsHandler.ExtractEpisode)
	tools.POST("/vectorize", toolsHandler.Vectorize)

	log.Infof("Starting Meridian backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
