package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportiq/internal/config"
	"sportiq/internal/database"
	"sportiq/internal/generator"
	"sportiq/internal/handlers"
	"sportiq/internal/llm"
	"sportiq/internal/repository"
	"sportiq/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.Database.Type)

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize the text-generation client
	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	gen := generator.New(llmClient, generator.Config{
		Attempts:       cfg.Generation.Attempts,
		AttemptTimeout: cfg.Generation.AttemptTimeout,
	})

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	gameRepo := repository.NewGameRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.Email.Region, cfg.Email.FromEmail, cfg.Email.FromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	profileService := service.NewProfileService(profileRepo, emailService)
	moduleService := service.NewModuleService(moduleRepo, profileRepo, gen, cfg.Generation.Flashcards)
	teamService := service.NewTeamService(teamRepo, playerRepo, gameRepo)
	searchService := service.NewSearchService(teamRepo, playerRepo, moduleRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo, teamRepo, playerRepo)

	// Initialize handlers
	middleware := handlers.NewMiddleware(cfg.Auth.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileService)
	moduleHandler := handlers.NewModuleHandler(moduleService)
	teamHandler := handlers.NewTeamHandler(teamService)
	searchHandler := handlers.NewSearchHandler(searchService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)

	// Setup routes
	mux := http.NewServeMux()

	// Profile routes
	mux.HandleFunc("POST /api/profiles", middleware.RequireAuth(profileHandler.Register))
	mux.HandleFunc("GET /api/profiles/me", middleware.RequireAuth(profileHandler.GetProfile))
	mux.HandleFunc("GET /api/profiles/username-check", middleware.RequireAuth(profileHandler.CheckUsername))

	// Module routes
	mux.HandleFunc("POST /api/modules", middleware.RequireAuth(moduleHandler.CreateModule))
	mux.HandleFunc("GET /api/modules", middleware.RequireAuth(moduleHandler.ListModules))
	mux.HandleFunc("GET /api/modules/{id}", middleware.RequireAuth(moduleHandler.GetModule))
	mux.HandleFunc("POST /api/modules/{id}/library", middleware.RequireAuth(moduleHandler.AddModule))
	mux.HandleFunc("DELETE /api/modules/{id}/library", middleware.RequireAuth(moduleHandler.RemoveModule))
	mux.HandleFunc("PUT /api/modules/{id}/status", middleware.RequireAuth(moduleHandler.SetModuleStatus))

	// Team routes
	mux.HandleFunc("GET /api/teams", teamHandler.ListTeams)
	mux.HandleFunc("GET /api/teams/{id}", teamHandler.GetTeam)
	mux.HandleFunc("GET /api/teams/{id}/roster", teamHandler.GetRoster)

	// Search route
	mux.HandleFunc("GET /api/search", searchHandler.Search)

	// Preference routes
	mux.HandleFunc("GET /api/preferences", middleware.RequireAuth(preferenceHandler.GetPreferences))
	mux.HandleFunc("POST /api/preferences/teams/{id}", middleware.RequireAuth(preferenceHandler.FollowTeam))
	mux.HandleFunc("DELETE /api/preferences/teams/{id}", middleware.RequireAuth(preferenceHandler.UnfollowTeam))
	mux.HandleFunc("POST /api/preferences/players/{id}", middleware.RequireAuth(preferenceHandler.FollowPlayer))
	mux.HandleFunc("DELETE /api/preferences/players/{id}", middleware.RequireAuth(preferenceHandler.UnfollowPlayer))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
