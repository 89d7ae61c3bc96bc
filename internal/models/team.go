package models

import "time"

// Team represents an MLB team
type Team struct {
	TeamID       int64     `json:"teamId"`
	DisplayName  string    `json:"displayName"`
	Abbreviation string    `json:"abbreviation"`
	LogoURL      string    `json:"logoUrl"`
	TeamURL      string    `json:"teamUrl"`
	Standing     string    `json:"standing"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamRecord holds a team's win/loss record for the current season
type TeamRecord struct {
	TeamID int64 `json:"teamId"`
	Wins   int   `json:"wins"`
	Losses int   `json:"losses"`
}

// TeamLeader links a team to one of its statistical leaders
type TeamLeader struct {
	TeamID   int64 `json:"teamId"`
	PlayerID int64 `json:"playerId"`
}

// TeamDetail aggregates everything the team page shows
type TeamDetail struct {
	Team
	Record        *TeamRecord    `json:"record,omitempty"`
	Leaders       []Player       `json:"leaders"`
	Roster        []Player       `json:"roster"`
	RecentGames   []Game         `json:"recentGames"`
	UpcomingGames []UpcomingGame `json:"upcomingGames"`
}
