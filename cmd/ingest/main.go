// Command ingest loads MLB teams, rosters and the current scoreboard from
// the ESPN site API into the SportIQ database. Run it on a schedule to keep
// reference data fresh.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sportiq/internal/config"
	"sportiq/internal/database"
	"sportiq/internal/ingest"
	"sportiq/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := ingest.NewRunner(
		ingest.NewESPNClient(cfg.Ingest.BaseURL),
		repository.NewTeamRepository(db),
		repository.NewPlayerRepository(db),
		repository.NewGameRepository(db),
	)

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	log.Println("Ingest completed successfully")
}
