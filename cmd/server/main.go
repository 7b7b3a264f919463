package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/propfix/api/internal/auth"
	"github.com/stwalsh4118/propfix/api/internal/config"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/handlers"
	"github.com/stwalsh4118/propfix/api/internal/logger"
	"github.com/stwalsh4118/propfix/api/internal/middleware"
	"github.com/stwalsh4118/propfix/api/internal/repository"
	"github.com/stwalsh4118/propfix/api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Propfix API", map[string]interface{}{
		"version":            "0.1.0",
		"environment":        cfg.Server.Env,
		"port":               cfg.Server.Port,
		"strict_transitions": cfg.Lifecycle.StrictTransitions,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	// Ensure schema exists
	if err := db.Bootstrap(ctx); err != nil {
		log.Fatal("Failed to bootstrap database schema", err, nil)
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository layer
	propertyRepo := repository.NewPropertyRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	contractorRepo := repository.NewContractorRepository(db)
	repairRepo := repository.NewRepairRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)

	// Initialize service layer
	authService := auth.NewService(cfg.Auth)
	propertyService := services.NewPropertyService(propertyRepo, tenantRepo, repairRepo, log)
	tenantService := services.NewTenantService(tenantRepo, propertyRepo, log)
	contractorService := services.NewContractorService(contractorRepo, repairRepo, log)
	repairService := services.NewRepairService(
		repairRepo,
		propertyRepo,
		tenantRepo,
		contractorRepo,
		profileRepo,
		cfg.Lifecycle.StrictTransitions,
		log,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, profileRepo)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	contractorHandler := handlers.NewContractorHandler(contractorService)
	repairHandler := handlers.NewRepairHandler(repairService)

	// Token exchange stays outside the authenticated group
	router.POST("/api/v1/auth/token", authHandler.Token)

	// Register API v1 routes; everything below requires a verified identity
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(authService))
	{
		properties := v1.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/:id", propertyHandler.Get)
		}

		tenants := v1.Group("/tenants")
		{
			tenants.POST("", tenantHandler.Create)
		}

		contractors := v1.Group("/contractors")
		{
			contractors.GET("", contractorHandler.List)
			contractors.POST("", contractorHandler.Create)
			contractors.PATCH("/:id", contractorHandler.Update)
		}

		repairs := v1.Group("/repairs")
		{
			repairs.GET("", repairHandler.List)
			repairs.POST("", repairHandler.Create)
			repairs.GET("/:id", repairHandler.Get)
			repairs.PATCH("/:id/status", repairHandler.UpdateStatus)
			repairs.POST("/:id/assign", repairHandler.Assign)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
