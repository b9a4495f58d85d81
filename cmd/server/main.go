package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "invare-backend/internal/api/http"
	"invare-backend/internal/config"
	"invare-backend/internal/logger"
	"invare-backend/internal/push"
	"invare-backend/internal/repository/postgres"
	"invare-backend/internal/security"
	"invare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Invare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewSendGridService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Push Sender. Push is optional: without Firebase credentials
	// the server runs and notifications fall back to logs and email.
	var pushSender service.PushSender
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := push.NewFCMSender(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM, push disabled", "error", err)
		} else {
			pushSender = fcm
			logger.Info("FCM push sender initialized")
		}
	} else {
		logger.Warn("No Firebase credentials configured, push disabled")
	}

	// Initialize Services
	noteSvc := service.NewNotificationService(store.NotificationRepository, store.UserRepository, pushSender, emailSvc)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, cfg.Auth.AdminSetupKey)
	userSvc := service.NewUserService(store.UserRepository)
	projectSvc := service.NewProjectService(
		store.ProjectRepository,
		store.PaymentRepository,
		store.ModificationRepository,
		store.UserRepository,
		noteSvc,
		cfg.Projects.EnforceModificationFlow,
	)
	fileSvc := service.NewProjectFileService(store.ProjectFileRepository, store.ProjectRepository, store.UserRepository)

	// Initialize HTTP handlers
	mw := httpapi.NewMiddleware(tokenManager)
	router := httpapi.NewRouter(
		mw,
		httpapi.NewAuthHandler(authSvc),
		httpapi.NewUserHandler(userSvc),
		httpapi.NewProjectHandler(projectSvc),
		httpapi.NewProjectFileHandler(fileSvc),
		httpapi.NewNotificationHandler(noteSvc),
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
