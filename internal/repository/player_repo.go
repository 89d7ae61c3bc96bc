package repository

import (
	"database/sql"
	"fmt"

	"sportiq/internal/database"
	"sportiq/internal/models"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByID retrieves a player by ID. Returns nil when not found.
func (r *PlayerRepository) GetByID(playerID int64) (*models.Player, error) {
	query := `
		SELECT player_id, team_id, name, headshot_url, position, position_code
		FROM players
		WHERE player_id = ?
	`

	player := &models.Player{}
	err := r.db.QueryRow(query, playerID).Scan(
		&player.PlayerID,
		&player.TeamID,
		&player.Name,
		&player.HeadshotURL,
		&player.Position,
		&player.PositionCode,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// GetByTeam retrieves a team's roster ordered by name
func (r *PlayerRepository) GetByTeam(teamID int64) ([]models.Player, error) {
	query := `
		SELECT player_id, team_id, name, headshot_url, position, position_code
		FROM players
		WHERE team_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// SearchByName finds players whose name matches the keywords,
// case-insensitively
func (r *PlayerRepository) SearchByName(keywords string, limit int) ([]models.Player, error) {
	query := `
		SELECT player_id, team_id, name, headshot_url, position, position_code
		FROM players
		WHERE LOWER(name) LIKE LOWER(?)
		ORDER BY name ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, "%"+keywords+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// Upsert inserts a player or refreshes their fields when the ID already
// exists
func (r *PlayerRepository) Upsert(player *models.Player) error {
	result, err := r.db.Exec(`
		UPDATE players
		SET team_id = ?, name = ?, headshot_url = ?, position = ?, position_code = ?
		WHERE player_id = ?
	`, player.TeamID, player.Name, player.HeadshotURL, player.Position, player.PositionCode, player.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO players (player_id, team_id, name, headshot_url, position, position_code)
		VALUES (?, ?, ?, ?, ?, ?)
	`, player.PlayerID, player.TeamID, player.Name, player.HeadshotURL, player.Position, player.PositionCode)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func scanPlayers(rows *sql.Rows) ([]models.Player, error) {
	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(
			&p.PlayerID,
			&p.TeamID,
			&p.Name,
			&p.HeadshotURL,
			&p.Position,
			&p.PositionCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
