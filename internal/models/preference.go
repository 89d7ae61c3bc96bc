package models

// UserTeam links a user to a saved team preference
type UserTeam struct {
	UserID string `json:"userId"`
	TeamID int64  `json:"teamId"`
}

// UserPlayer links a user to a saved player preference
type UserPlayer struct {
	UserID   string `json:"userId"`
	PlayerID int64  `json:"playerId"`
}
