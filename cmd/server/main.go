package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studymate-backend/internal/config"
	"studymate-backend/internal/database"
	"studymate-backend/internal/handlers"
	"studymate-backend/internal/repository"
	"studymate-backend/internal/router"
	"studymate-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting StudyMate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 5: Initialize External Clients ────
	ctx := context.Background()

	geminiClient, err := services.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiClient.Close()
	log.Println("✓ Gemini client initialized")

	youtubeService, err := services.NewYouTubeService(ctx, cfg.YouTubeAPIKey, redisClient, cfg.VideoCacheTTL)
	if err != nil {
		log.Fatalf("✗ YouTube client initialization failed: %v", err)
	}
	log.Println("✓ YouTube client initialized")

	// ──── Step 6: Wire Repositories, Services, Handlers ────
	studyRepo := repository.NewStudyRepo(pool, cfg.StudyTable)
	extractService := services.NewFileExtractService()
	studyService := services.NewStudyService(geminiClient, studyRepo, youtubeService)

	studyHandler := handlers.NewStudyHandler(studyService, extractService)
	examHandler := handlers.NewExamHandler(studyService)
	videoHandler := handlers.NewVideoHandler(studyService)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(studyHandler, examHandler, videoHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("✓ StudyMate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
