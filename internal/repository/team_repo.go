package repository

import (
	"database/sql"
	"fmt"

	"sportiq/internal/database"
	"sportiq/internal/models"
)

// TeamRepository handles team database operations
type TeamRepository struct {
	db *database.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll retrieves every team ordered by display name
func (r *TeamRepository) GetAll() ([]models.Team, error) {
	query := `
		SELECT team_id, display_name, abbreviation, logo_url, team_url, standing, created_at
		FROM teams
		ORDER BY display_name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
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
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

// GetByID retrieves a team by ID. Returns nil when not found.
func (r *TeamRepository) GetByID(teamID int64) (*models.Team, error) {
	query := `
		SELECT team_id, display_name, abbreviation, logo_url, team_url, standing, created_at
		FROM teams
		WHERE team_id = ?
	`

	team := &models.Team{}
	err := r.db.QueryRow(query, teamID).Scan(
		&team.TeamID,
		&team.DisplayName,
		&team.Abbreviation,
		&team.LogoURL,
		&team.TeamURL,
		&team.Standing,
		&team.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// GetRecord retrieves a team's win/loss record. Returns nil when the team
// has no record row yet.
func (r *TeamRepository) GetRecord(teamID int64) (*models.TeamRecord, error) {
	record := &models.TeamRecord{}
	err := r.db.QueryRow(
		"SELECT team_id, wins, losses FROM records WHERE team_id = ?", teamID,
	).Scan(&record.TeamID, &record.Wins, &record.Losses)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}

// GetLeaders retrieves the players flagged as a team's statistical leaders
func (r *TeamRepository) GetLeaders(teamID int64) ([]models.Player, error) {
	query := `
		SELECT p.player_id, p.team_id, p.name, p.headshot_url, p.position, p.position_code
		FROM team_leaders tl
		JOIN players p ON p.player_id = tl.player_id
		WHERE tl.team_id = ?
		ORDER BY p.name ASC
	`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team leaders: %w", err)
	}
	defer rows.Close()

	var leaders []models.Player
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
			return nil, fmt.Errorf("failed to scan leader: %w", err)
		}
		leaders = append(leaders, p)
	}

	return leaders, rows.Err()
}

// Upsert inserts a team or refreshes its fields when the ID already exists
func (r *TeamRepository) Upsert(team *models.Team) error {
	result, err := r.db.Exec(`
		UPDATE teams
		SET display_name = ?, abbreviation = ?, logo_url = ?, team_url = ?, standing = ?
		WHERE team_id = ?
	`, team.DisplayName, team.Abbreviation, team.LogoURL, team.TeamURL, team.Standing, team.TeamID)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO teams (team_id, display_name, abbreviation, logo_url, team_url, standing)
		VALUES (?, ?, ?, ?, ?, ?)
	`, team.TeamID, team.DisplayName, team.Abbreviation, team.LogoURL, team.TeamURL, team.Standing)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

// UpsertRecord inserts or refreshes a team's win/loss record
func (r *TeamRepository) UpsertRecord(record *models.TeamRecord) error {
	result, err := r.db.Exec(
		"UPDATE records SET wins = ?, losses = ? WHERE team_id = ?",
		record.Wins, record.Losses, record.TeamID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(
		"INSERT INTO records (team_id, wins, losses) VALUES (?, ?, ?)",
		record.TeamID, record.Wins, record.Losses,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// SetLeaders replaces a team's leader set
func (r *TeamRepository) SetLeaders(teamID int64, playerIDs []int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM team_leaders WHERE team_id = ?", teamID); err != nil {
		return fmt.Errorf("failed to clear team leaders: %w", err)
	}

	for _, playerID := range playerIDs {
		_, err := tx.Exec(
			"INSERT INTO team_leaders (team_id, player_id) VALUES (?, ?)",
			teamID, playerID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert team leader: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team leaders: %w", err)
	}
	return nil
}

// SearchByName finds teams whose display name matches the keywords,
// case-insensitively
func (r *TeamRepository) SearchByName(keywords string, limit int) ([]models.Team, error) {
	query := `
		SELECT team_id, display_name, abbreviation, logo_url, team_url, standing, created_at
		FROM teams
		WHERE LOWER(display_name) LIKE LOWER(?)
		ORDER BY display_name ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, "%"+keywords+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
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
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}
