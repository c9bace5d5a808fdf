package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alphabetquest/internal/config"
	"alphabetquest/internal/database"
	"alphabetquest/internal/handlers"
	"alphabetquest/internal/repository"
	"alphabetquest/internal/scheduler"
	"alphabetquest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	letterRepo := repository.NewLetterRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(letterRepo, cfg.ImagesPath, cfg.CustomWordsPath)
	schedulerService := service.NewSchedulerService(progressRepo, sessionRepo, profileRepo)
	graderService := service.NewGraderService(progressRepo)
	sessionService := service.NewSessionService(sessionRepo, progressRepo, profileRepo)
	reportService := service.NewReportService(progressRepo, sessionRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo, progressRepo)
	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTokenTTL)

	// Seed the letter catalog
	if err := catalogService.Seed(); err != nil {
		log.Fatalf("Failed to seed letter catalog: %v", err)
	}

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	reportMailer := service.NewReportMailer(reportService, profileRepo, emailService, cfg.ReportEmail)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	sessionHandler := handlers.NewSessionHandler(schedulerService, graderService, sessionService)
	progressHandler := handlers.NewProgressHandler(reportService, sessionService)
	profileHandler := handlers.NewProfileHandler(profileService)
	lettersHandler := handlers.NewLettersHandler(catalogService, db)
	adminHandler := handlers.NewAdminHandler(authService, catalogService, cfg.UploadMaxSize)

	// Setup routes
	mux := http.NewServeMux()

	// Static letter images
	mux.Handle("GET /images/letters/", http.StripPrefix("/images/letters/", http.FileServer(http.Dir(cfg.ImagesPath))))

	// Session routes
	mux.HandleFunc("GET /api/session/start", sessionHandler.StartSession)
	mux.HandleFunc("POST /api/session/grade", sessionHandler.GradeCard)
	mux.HandleFunc("POST /api/session/complete", sessionHandler.CompleteSession)
	mux.HandleFunc("DELETE /api/session/{id}", sessionHandler.DeleteSession)

	// Progress routes
	mux.HandleFunc("GET /api/progress", progressHandler.GetSummary)
	mux.HandleFunc("GET /api/progress/letters", progressHandler.GetLetters)
	mux.HandleFunc("POST /api/progress/reset", progressHandler.ResetProgress)

	// Profile routes
	mux.HandleFunc("GET /api/profiles", profileHandler.ListProfiles)
	mux.HandleFunc("POST /api/profiles", profileHandler.CreateProfile)
	mux.HandleFunc("PUT /api/profiles/{id}", profileHandler.UpdateProfile)
	mux.HandleFunc("DELETE /api/profiles/{id}", profileHandler.DeleteProfile)

	// Catalog routes
	mux.HandleFunc("GET /api/letters", lettersHandler.ListLetters)
	mux.HandleFunc("GET /api/health", lettersHandler.Health)

	// Admin routes
	mux.HandleFunc("POST /api/admin/login", adminHandler.Login)
	mux.HandleFunc("GET /api/admin/letters", middleware.RequireAdmin(adminHandler.ListLetters))
	mux.HandleFunc("POST /api/admin/letters/{letter}/image", middleware.RequireAdmin(adminHandler.UploadImage))
	mux.HandleFunc("DELETE /api/admin/letters/{letter}/image", middleware.RequireAdmin(adminHandler.RemoveImage))
	mux.HandleFunc("PUT /api/admin/letters/{letter}/word", middleware.RequireAdmin(adminHandler.SetDisplayWord))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the daily progress report job
	reportScheduler := scheduler.New(reportMailer, cfg.ReportHour)
	reportScheduler.Start()
	defer reportScheduler.Stop()

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
