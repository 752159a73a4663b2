package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repoforge-core/internal/application/service"
	"repoforge-core/internal/config"
	"repoforge-core/internal/github"
	"repoforge-core/internal/middleware"
	"repoforge-core/internal/presentation/handlers"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title RepoForge Core API
// @version 1.0
// @description A thin proxy/dashboard over the GitHub REST API: search, fork, and merge repositories, with analytics and comparison helpers.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description GitHub personal access token, passed as "Bearer <token>"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "repoforge",
	})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "err", err)
	}

	// Gateway to the GitHub REST API
	githubClient, err := github.NewClient(&cfg.GitHub, logger)
	if err != nil {
		logger.Fatal("Failed to initialize GitHub client", "err", err)
	}

	// Application services (use cases)
	repositoryService := service.NewRepositoryService(githubClient)
	userService := service.NewUserService(githubClient)

	// HTTP handlers
	healthHandler := handlers.NewHealthHandler()
	repositoryHandler := handlers.NewRepositoryHandler(repositoryService)
	userHandler := handlers.NewUserHandler(userService)
	insightsHandler := handlers.NewInsightsHandler()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(middleware.BearerToken())

	// API routes
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		api.GET("/search-repos", repositoryHandler.SearchRepos)
		api.POST("/fork-repo", repositoryHandler.ForkRepo)
		api.POST("/create-merged-repo", repositoryHandler.CreateMergedRepo)
		api.GET("/repo-content", repositoryHandler.RepoContent)

		api.GET("/user", middleware.RequireToken(), userHandler.GetUser)
		api.GET("/validate-token", userHandler.ValidateToken)

		api.POST("/analyze-repos", insightsHandler.AnalyzeRepos)
		api.POST("/compare-repos", insightsHandler.CompareRepos)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "addr", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "err", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "err", err)
	}

	logger.Info("Server exited")
}
