package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachhub/coaching-app/internal/api"
	"coachhub/coaching-app/internal/config"
	"coachhub/coaching-app/internal/notification"
	"coachhub/coaching-app/internal/repository/postgres"
	"coachhub/coaching-app/internal/service"
	"coachhub/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Coaching Platform API
// @version 1.0
// @description API for coaches composing training plans and customers tracking daily nutrition.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Coaching App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// --- Database Connection ---
	db, err := postgres.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to PostgreSQL: %v", err)
	}
	defer func() {
		log.Println("Disconnecting PostgreSQL...")
		if err := postgres.DisconnectDB(db); err != nil {
			log.Printf("ERROR: Failed to disconnect PostgreSQL: %v", err)
		}
	}()
	log.Println("Database connection established, schema migrated.")

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Notifier ---
	notifier := notification.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" {
		notifier, err = notification.NewTelegramNotifier(cfg.Telegram.BotToken)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize Telegram notifier: %v", err)
		}
		log.Println("Telegram notifier enabled.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := postgres.NewUserRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	planRepo := postgres.NewTrainingPlanRepository(db)
	dietRepo := postgres.NewDietRepository(db)
	productRepo := postgres.NewProductRepository(db)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	customerService := service.NewCustomerService(userRepo, planRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	planService := service.NewPlanService(userRepo, exerciseRepo, planRepo, logger)
	nutritionService := service.NewNutritionService(dietRepo, productRepo, logger)
	profileService := service.NewProfileService(userRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		customerService,
		planService,
		nutritionService,
		exerciseService,
		profileService,
		notifier,
		logger,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
