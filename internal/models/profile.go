package models

import "time"

// UserProfile is the application-side record for a user. The user ID is the
// UUID issued by the external identity provider; SportIQ stores no
// credentials of its own.
type UserProfile struct {
	UserID          string     `json:"userId"`
	Username        string     `json:"username"`
	Streak          int        `json:"streak"`
	StreakUpdatedAt *time.Time `json:"streak_updated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
