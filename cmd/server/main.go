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

	"github.com/gin-gonic/gin"

	"vlosev/teamops-app/internal/api"
	"vlosev/teamops-app/internal/config"
	"vlosev/teamops-app/internal/defaults"
	"vlosev/teamops-app/internal/repository/mongo"
	"vlosev/teamops-app/internal/service"
	"vlosev/teamops-app/internal/storage"
)

func main() {
	log.Println("Starting TeamOps Server...")

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
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTeamIndexes(ctx, appDB.Collection("teams"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("sessions"))
		mongo.EnsureEventIndexes(ctx, appDB.Collection("events"))
		mongo.EnsureFacilityIndexes(ctx, appDB.Collection("facility_days"))
		mongo.EnsurePreferenceIndexes(ctx, appDB.Collection("preference_counters"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		// Export archives are optional; everything else works without S3.
		log.Printf("ERROR: Failed to initialize S3 storage, export archives disabled: %v", err)
		fileStorage = nil
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	teamRepo := mongo.NewMongoTeamRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	eventRepo := mongo.NewMongoEventRepository(appDB)
	facilityRepo := mongo.NewMongoFacilityRepository(appDB)
	preferenceRepo := mongo.NewMongoPreferenceRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	learnerService := service.NewLearnerService(preferenceRepo)
	defaultsService := service.NewDefaultsService(
		preferenceRepo, sessionRepo, teamRepo, eventRepo, facilityRepo,
		defaults.SystemClock(), cfg.Defaults.Debounce,
	)
	sessionService := service.NewSessionService(sessionRepo, learnerService)
	teamService := service.NewTeamService(teamRepo, userRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo, fileStorage)
	scheduleService := service.NewScheduleService(eventRepo, facilityRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, defaultsService, sessionService,
		teamService, preferenceService, scheduleService,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
