package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sportiq/internal/database"
	"sportiq/internal/models"
	"sportiq/internal/streak"
)

// ProfileRepository handles user profile database operations
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile creates a new user profile with a zero streak
func (r *ProfileRepository) CreateProfile(userID, username string) (*models.UserProfile, error) {
	query := "INSERT INTO user_profiles (user_id, username, streak) VALUES (?, ?, 0)"
	if _, err := r.db.Exec(query, userID, username); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &models.UserProfile{
		UserID:    userID,
		Username:  username,
		Streak:    0,
		CreatedAt: time.Now(),
	}, nil
}

// GetProfile retrieves a profile by user ID. Returns nil when not found.
func (r *ProfileRepository) GetProfile(userID string) (*models.UserProfile, error) {
	query := `
		SELECT user_id, username, streak, streak_updated_at, created_at
		FROM user_profiles
		WHERE user_id = ?
	`

	profile := &models.UserProfile{}
	var updatedAt sql.NullTime

	err := r.db.QueryRow(query, userID).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.Streak,
		&updatedAt,
		&profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if updatedAt.Valid {
		profile.StreakUpdatedAt = &updatedAt.Time
	}

	return profile, nil
}

// UsernameExists checks whether a username is already taken
func (r *ProfileRepository) UsernameExists(username string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM user_profiles WHERE username = ?"
	if err := r.db.QueryRow(query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// GetStreakState reads the streak counter and its last-advanced timestamp
func (r *ProfileRepository) GetStreakState(userID string) (streak.State, error) {
	query := "SELECT streak, streak_updated_at FROM user_profiles WHERE user_id = ?"

	var current int
	var updatedAt sql.NullTime
	err := r.db.QueryRow(query, userID).Scan(&current, &updatedAt)
	if err != nil {
		return streak.State{}, fmt.Errorf("failed to get streak state: %w", err)
	}

	state := streak.State{Current: current}
	if updatedAt.Valid {
		state.UpdatedAt = updatedAt.Time
	}
	return state, nil
}

// CompareAndSetStreak writes the new streak state only if the stored
// last-advanced timestamp still matches the one the caller read. Returns
// false when another completion event won the race; the caller should
// re-read instead of retrying the write.
func (r *ProfileRepository) CompareAndSetStreak(userID string, observed streak.State, next streak.State) (bool, error) {
	var result sql.Result
	var err error

	if observed.UpdatedAt.IsZero() {
		query := `
			UPDATE user_profiles
			SET streak = ?, streak_updated_at = ?
			WHERE user_id = ? AND streak_updated_at IS NULL
		`
		result, err = r.db.Exec(query, next.Current, next.UpdatedAt, userID)
	} else {
		query := `
			UPDATE user_profiles
			SET streak = ?, streak_updated_at = ?
			WHERE user_id = ? AND streak_updated_at = ?
		`
		result, err = r.db.Exec(query, next.Current, next.UpdatedAt, userID, observed.UpdatedAt)
	}

	if err != nil {
		return false, fmt.Errorf("failed to update streak: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}

	return affected == 1, nil
}
