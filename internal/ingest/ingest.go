package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"sportiq/internal/models"
	"sportiq/internal/repository"
)

// Runner pulls reference data from ESPN and upserts it into the database
type Runner struct {
	client     *ESPNClient
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	gameRepo   *repository.GameRepository
}

// NewRunner creates a new ingest runner
func NewRunner(client *ESPNClient, teamRepo *repository.TeamRepository, playerRepo *repository.PlayerRepository, gameRepo *repository.GameRepository) *Runner {
	return &Runner{
		client:     client,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
	}
}

// Run ingests teams, rosters and the current scoreboard. Teams must load
// before rosters and games because of foreign keys.
func (r *Runner) Run(ctx context.Context) error {
	teams, err := r.ingestTeams(ctx)
	if err != nil {
		return err
	}

	if err := r.ingestRosters(ctx, teams); err != nil {
		return err
	}

	if err := r.ingestGames(ctx); err != nil {
		return err
	}

	return nil
}

// ingestTeams upserts every MLB team and returns what was loaded
func (r *Runner) ingestTeams(ctx context.Context) ([]TeamInfo, error) {
	teams, err := r.client.GetTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	for _, t := range teams {
		err := r.teamRepo.Upsert(&models.Team{
			TeamID:       t.ID,
			DisplayName:  t.DisplayName,
			Abbreviation: t.Abbreviation,
			LogoURL:      t.LogoURL,
			TeamURL:      t.TeamURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upsert team %s: %w", t.DisplayName, err)
		}
	}

	log.Printf("Ingested %d teams", len(teams))
	return teams, nil
}

// ingestRosters upserts every team's roster
func (r *Runner) ingestRosters(ctx context.Context, teams []TeamInfo) error {
	total := 0
	for _, t := range teams {
		players, err := r.client.GetRoster(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch roster for %s: %w", t.DisplayName, err)
		}

		for _, p := range players {
			err := r.playerRepo.Upsert(&models.Player{
				PlayerID:     p.ID,
				TeamID:       t.ID,
				Name:         p.Name,
				HeadshotURL:  p.HeadshotURL,
				Position:     p.Position,
				PositionCode: p.PositionCode,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert player %s: %w", p.Name, err)
			}
		}
		total += len(players)
	}

	log.Printf("Ingested %d players across %d teams", total, len(teams))
	return nil
}

// ingestGames upserts the current scoreboard, routing completed games to
// the results table and the rest to the upcoming table
func (r *Runner) ingestGames(ctx context.Context) error {
	games, err := r.client.GetScoreboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	completed, upcoming := 0, 0
	for _, g := range games {
		if g.Completed {
			err = r.gameRepo.UpsertGame(&models.Game{
				TeamID:        g.TeamID,
				Opponent:      g.Opponent,
				Date:          g.Date,
				TeamScore:     g.TeamScore,
				OpponentScore: g.OpponentScore,
				HomeGame:      g.HomeGame,
			})
			completed++
		} else {
			err = r.gameRepo.UpsertUpcomingGame(&models.UpcomingGame{
				TeamID:   g.TeamID,
				Opponent: g.Opponent,
				Date:     g.Date,
				Venue:    g.Venue,
				HomeGame: g.HomeGame,
			})
			upcoming++
		}
		if err != nil {
			return fmt.Errorf("failed to upsert game vs %s: %w", g.Opponent, err)
		}
	}

	// Played games age out of the upcoming table.
	if err := r.gameRepo.DeleteUpcomingBefore(time.Now().AddDate(0, 0, -1)); err != nil {
		return err
	}

	log.Printf("Ingested %d completed and %d upcoming games", completed, upcoming)
	return nil
}
