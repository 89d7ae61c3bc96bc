package repository

import (
	"fmt"

	"sportiq/internal/database"
	"sportiq/internal/models"
)

// PreferenceRepository handles saved team and player preference operations
type PreferenceRepository struct {
	db *database.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *database.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetTeams retrieves the teams a user follows
func (r *PreferenceRepository) GetTeams(userID string) ([]models.Team, error) {
	query := `
		SELECT t.team_id, t.display_name, t.abbreviation, t.logo_url, t.team_url, t.standing, t.created_at
		FROM user_teams ut
		JOIN teams t ON t.team_id = ut.team_id
		WHERE ut.user_id = ?
		ORDER BY t.display_name ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query followed teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(
			&t.TeamID,
			&t.DisplayName,
			&t.Abbreviation,
			&t.LogoURL,
			&t.TeamURL,
			&t.Standing,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan followed team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

// GetPlayers retrieves the players a user follows
func (r *PreferenceRepository) GetPlayers(userID string) ([]models.Player, error) {
	query := `
		SELECT p.player_id, p.team_id, p.name, p.headshot_url, p.position, p.position_code
		FROM user_players up
		JOIN players p ON p.player_id = up.player_id
		WHERE up.user_id = ?
		ORDER BY p.name ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query followed players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// HasTeam checks whether a user already follows a team
func (r *PreferenceRepository) HasTeam(userID string, teamID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM user_teams WHERE user_id = ? AND team_id = ?",
		userID, teamID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check followed team: %w", err)
	}
	return count > 0, nil
}

// AddTeam records that a user follows a team
func (r *PreferenceRepository) AddTeam(userID string, teamID int64) error {
	_, err := r.db.Exec(
		"INSERT INTO user_teams (user_id, team_id) VALUES (?, ?)",
		userID, teamID,
	)
	if err != nil {
		return fmt.Errorf("failed to add followed team: %w", err)
	}
	return nil
}

// RemoveTeam removes a team from a user's followed set
func (r *PreferenceRepository) RemoveTeam(userID string, teamID int64) error {
	_, err := r.db.Exec(
		"DELETE FROM user_teams WHERE user_id = ? AND team_id = ?",
		userID, teamID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove followed team: %w", err)
	}
	return nil
}

// HasPlayer checks whether a user already follows a player
func (r *PreferenceRepository) HasPlayer(userID string, playerID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM user_players WHERE user_id = ? AND player_id = ?",
		userID, playerID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check followed player: %w", err)
	}
	return count > 0, nil
}

// AddPlayer records that a user follows a player
func (r *PreferenceRepository) AddPlayer(userID string, playerID int64) error {
	_, err := r.db.Exec(
		"INSERT INTO user_players (user_id, player_id) VALUES (?, ?)",
		userID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to add followed player: %w", err)
	}
	return nil
}

// RemovePlayer removes a player from a user's followed set
func (r *PreferenceRepository) RemovePlayer(userID string, playerID int64) error {
	_, err := r.db.Exec(
		"DELETE FROM user_players WHERE user_id = ? AND player_id = ?",
		userID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove followed player: %w", err)
	}
	return nil
}
