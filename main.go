package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ksriramreddy/procurement-ai/config"
	"github.com/ksriramreddy/procurement-ai/db"
	"github.com/ksriramreddy/procurement-ai/handler"
	"github.com/ksriramreddy/procurement-ai/middleware"
	"github.com/ksriramreddy/procurement-ai/pkg/logger"
	"github.com/ksriramreddy/procurement-ai/service"
)

const uploadDir = "./uploads"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Connect(ctx, &cfg.Mongo)
	cancel()
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to MongoDB", "database", cfg.Mongo.Database)

	database.EnsureIndexes(context.Background())

	// Initialize services
	s3Svc, err := service.NewS3Service(&cfg.S3)
	if err != nil {
		slog.Error("failed to initialize S3 service", "error", err)
		os.Exit(1)
	}

	lyzrSvc := service.NewLyzrService(&cfg.Lyzr)
	sendDocSvc := service.NewSendDocumentService(database)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())             // Request ID for tracing
	router.Use(middleware.Recovery())              // Panic recovery
	router.Use(middleware.RequestLogger())         // Access logging
	router.Use(middleware.CORS(cfg.CORSOrigins())) // CORS

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Procurement Automation API",
			"version": "1.0.0",
		})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := database.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"detail": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")
	handler.NewVendorHandler(database).Register(api)
	handler.NewEmailThreadHandler(database).Register(api)
	handler.NewMessageHandler(database).Register(api)
	handler.NewVendorComplianceHandler(database).Register(api)
	handler.NewContractHandler(database).Register(api)
	handler.NewInternalVendorHandler(database).Register(api)
	handler.NewSendDocumentHandler(sendDocSvc).Register(api)
	handler.NewUploadHandler(uploadDir).Register(api)
	handler.NewS3UploadHandler(s3Svc, database).Register(api)
	handler.NewLyzrProxyHandler(lyzrSvc).Register(api)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	if err := database.Close(shutdownCtx); err != nil {
		slog.Error("failed to close MongoDB connection", "error", err)
	}

	slog.Info("server exited gracefully")
}
