package repository

import (
	"fmt"
	"time"

	"sportiq/internal/database"
	"sportiq/internal/models"
)

// GameRepository handles game schedule database operations
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// GetRecentGames retrieves a team's most recent completed games, newest
// first
func (r *GameRepository) GetRecentGames(teamID int64, limit int) ([]models.Game, error) {
	query := `
		SELECT game_id, team_id, opponent, date, team_score, opponent_score, home_game
		FROM games
		WHERE team_id = ?
		ORDER BY date DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(
			&g.GameID,
			&g.TeamID,
			&g.Opponent,
			&g.Date,
			&g.TeamScore,
			&g.OpponentScore,
			&g.HomeGame,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// GetUpcomingGames retrieves a team's next scheduled games, soonest first
func (r *GameRepository) GetUpcomingGames(teamID int64, limit int) ([]models.UpcomingGame, error) {
	query := `
		SELECT game_id, team_id, opponent, date, venue, home_game
		FROM upcoming_games
		WHERE team_id = ?
		ORDER BY date ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming games: %w", err)
	}
	defer rows.Close()

	var games []models.UpcomingGame
	for rows.Next() {
		var g models.UpcomingGame
		if err := rows.Scan(
			&g.GameID,
			&g.TeamID,
			&g.Opponent,
			&g.Date,
			&g.Venue,
			&g.HomeGame,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// UpsertGame inserts a completed game or refreshes its score. Games are
// keyed by team, opponent and date.
func (r *GameRepository) UpsertGame(game *models.Game) error {
	result, err := r.db.Exec(`
		UPDATE games
		SET team_score = ?, opponent_score = ?, home_game = ?
		WHERE team_id = ? AND opponent = ? AND date = ?
	`, game.TeamScore, game.OpponentScore, game.HomeGame, game.TeamID, game.Opponent, game.Date)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO games (team_id, opponent, date, team_score, opponent_score, home_game)
		VALUES (?, ?, ?, ?, ?, ?)
	`, game.TeamID, game.Opponent, game.Date, game.TeamScore, game.OpponentScore, game.HomeGame)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

// UpsertUpcomingGame inserts a scheduled game or refreshes its venue
func (r *GameRepository) UpsertUpcomingGame(game *models.UpcomingGame) error {
	result, err := r.db.Exec(`
		UPDATE upcoming_games
		SET venue = ?, home_game = ?
		WHERE team_id = ? AND opponent = ? AND date = ?
	`, game.Venue, game.HomeGame, game.TeamID, game.Opponent, game.Date)
	if err != nil {
		return fmt.Errorf("failed to update upcoming game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO upcoming_games (team_id, opponent, date, venue, home_game)
		VALUES (?, ?, ?, ?, ?)
	`, game.TeamID, game.Opponent, game.Date, game.Venue, game.HomeGame)
	if err != nil {
		return fmt.Errorf("failed to insert upcoming game: %w", err)
	}
	return nil
}

// DeleteUpcomingBefore removes scheduled games older than the cutoff.
// Ingest calls this so games that have been played move out of the
// upcoming table.
func (r *GameRepository) DeleteUpcomingBefore(cutoff time.Time) error {
	_, err := r.db.Exec("DELETE FROM upcoming_games WHERE date < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune upcoming games: %w", err)
	}
	return nil
}
