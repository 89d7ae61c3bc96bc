package models

// Player represents an MLB player on a team roster
type Player struct {
	PlayerID     int64  `json:"playerId"`
	TeamID       int64  `json:"teamId"`
	Name         string `json:"name"`
	HeadshotURL  string `json:"headshotUrl"`
	Position     string `json:"position"`
	PositionCode string `json:"position_code"`
}
