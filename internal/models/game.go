package models

import "time"

// Game represents a completed game from a team's schedule
type Game struct {
	GameID        int64     `json:"gameId"`
	TeamID        int64     `json:"teamId"`
	Opponent      string    `json:"opponent"`
	Date          time.Time `json:"date"`
	TeamScore     int       `json:"teamScore"`
	OpponentScore int       `json:"opponentScore"`
	HomeGame      bool      `json:"homeGame"`
}

// UpcomingGame represents a scheduled game that has not been played yet
type UpcomingGame struct {
	GameID   int64     `json:"gameId"`
	TeamID   int64     `json:"teamId"`
	Opponent string    `json:"opponent"`
	Date     time.Time `json:"date"`
	Venue    string    `json:"venue"`
	HomeGame bool      `json:"homeGame"`
}
