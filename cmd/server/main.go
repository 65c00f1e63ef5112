package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitacare/health-app/internal/api"
	"vitacare/health-app/internal/config"
	"vitacare/health-app/internal/repository/mongo"
	"vitacare/health-app/internal/service"
	"vitacare/health-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting VitaCare Health App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("user_saved_plans"))
		mongo.EnsureScheduleIndexes(ctx, appDB.Collection("user_daily_schedules"))
		mongo.EnsureActivityIndexes(ctx, appDB.Collection("user_ai_activities"))
		mongo.EnsureInsightIndexes(ctx, appDB.Collection("user_ai_insights"))
		mongo.EnsureGoalIndexes(ctx, appDB.Collection("user_ai_goals"))
		mongo.EnsureRecommendationIndexes(ctx, appDB.Collection("user_ai_recommendations"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("user_ai_sessions"))
		mongo.EnsureHealthScoreIndexes(ctx, appDB.Collection("user_health_scores"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing document storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)
	activityRepo := mongo.NewMongoActivityRepository(appDB)
	insightRepo := mongo.NewMongoInsightRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	recommendationRepo := mongo.NewMongoRecommendationRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	healthScoreRepo := mongo.NewMongoHealthScoreRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	integrationService := service.NewIntegrationService(planRepo, scheduleRepo, activityRepo, insightRepo, goalRepo, recommendationRepo, sessionRepo)
	retrievalService := service.NewRetrievalService(planRepo, scheduleRepo, activityRepo, insightRepo, goalRepo, recommendationRepo, sessionRepo)
	scoreService := service.NewScoreService(healthScoreRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, integrationService, retrievalService, scoreService, fileStorage)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// In-flight requests get five seconds to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
