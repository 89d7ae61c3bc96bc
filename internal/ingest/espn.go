// Package ingest loads MLB reference data from the public ESPN site API
// into the local database.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ESPNClient fetches team, roster and scoreboard data from the ESPN site
// API
type ESPNClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewESPNClient creates a client for the given API base URL, e.g.
// http://site.api.espn.com/apis/site/v2/sports/baseball/mlb
func NewESPNClient(baseURL string) *ESPNClient {
	return &ESPNClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TeamInfo is one team from the teams endpoint with the derived logo and
// stats page URLs
type TeamInfo struct {
	ID           int64
	DisplayName  string
	Abbreviation string
	LogoURL      string
	TeamURL      string
}

// RosterPlayer is one athlete from a team's roster endpoint
type RosterPlayer struct {
	ID           int64
	Name         string
	HeadshotURL  string
	Position     string
	PositionCode string
}

// ScoreboardGame is one event from the scoreboard endpoint, seen from a
// single competitor's side
type ScoreboardGame struct {
	TeamID        int64
	Opponent      string
	Date          time.Time
	TeamScore     int
	OpponentScore int
	HomeGame      bool
	Venue         string
	Completed     bool
}

type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team struct {
					ID           string `json:"id"`
					DisplayName  string `json:"displayName"`
					Abbreviation string `json:"abbreviation"`
					Slug         string `json:"slug"`
				} `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type rosterResponse struct {
	Athletes []struct {
		Items []struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
			Headshot    struct {
				Href string `json:"href"`
			} `json:"headshot"`
			Position struct {
				DisplayName  string `json:"displayName"`
				Abbreviation string `json:"abbreviation"`
			} `json:"position"`
		} `json:"items"`
	} `json:"athletes"`
}

type scoreboardResponse struct {
	Events []struct {
		Date         string `json:"date"`
		Competitions []struct {
			Venue struct {
				FullName string `json:"fullName"`
			} `json:"venue"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					ID          string `json:"id"`
					DisplayName string `json:"displayName"`
				} `json:"team"`
			} `json:"competitors"`
			Status struct {
				Type struct {
					Completed bool `json:"completed"`
				} `json:"type"`
			} `json:"status"`
		} `json:"competitions"`
	} `json:"events"`
}

// GetTeams fetches every MLB team
func (c *ESPNClient) GetTeams(ctx context.Context) ([]TeamInfo, error) {
	var resp teamsResponse
	if err := c.getJSON(ctx, c.baseURL+"/teams", &resp); err != nil {
		return nil, err
	}

	if len(resp.Sports) == 0 || len(resp.Sports[0].Leagues) == 0 {
		return nil, fmt.Errorf("teams response missing sports/leagues structure")
	}

	var teams []TeamInfo
	for _, entry := range resp.Sports[0].Leagues[0].Teams {
		t := entry.Team
		id, err := strconv.ParseInt(t.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid team id %q: %w", t.ID, err)
		}
		teams = append(teams, TeamInfo{
			ID:           id,
			DisplayName:  t.DisplayName,
			Abbreviation: t.Abbreviation,
			LogoURL:      fmt.Sprintf("https://a.espncdn.com/i/teamlogos/mlb/500/scoreboard/%s.png", t.Abbreviation),
			TeamURL:      fmt.Sprintf("https://www.espn.com/mlb/team/stats/_/name/%s/%s", t.Abbreviation, t.Slug),
		})
	}

	return teams, nil
}

// GetRoster fetches a team's current roster
func (c *ESPNClient) GetRoster(ctx context.Context, teamID int64) ([]RosterPlayer, error) {
	var resp rosterResponse
	url := fmt.Sprintf("%s/teams/%d/roster", c.baseURL, teamID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	var players []RosterPlayer
	for _, group := range resp.Athletes {
		for _, item := range group.Items {
			id, err := strconv.ParseInt(item.ID, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid player id %q: %w", item.ID, err)
			}
			players = append(players, RosterPlayer{
				ID:           id,
				Name:         item.DisplayName,
				HeadshotURL:  item.Headshot.Href,
				Position:     item.Position.DisplayName,
				PositionCode: item.Position.Abbreviation,
			})
		}
	}

	return players, nil
}

// GetScoreboard fetches the current scoreboard. Each event yields two
// entries, one per competitor, so every team's schedule sees the game.
func (c *ESPNClient) GetScoreboard(ctx context.Context) ([]ScoreboardGame, error) {
	var resp scoreboardResponse
	if err := c.getJSON(ctx, c.baseURL+"/scoreboard", &resp); err != nil {
		return nil, err
	}

	var games []ScoreboardGame
	for _, event := range resp.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]
		if len(comp.Competitors) != 2 {
			continue
		}

		date, err := time.Parse("2006-01-02T15:04Z", event.Date)
		if err != nil {
			// Some feeds include seconds.
			date, err = time.Parse(time.RFC3339, event.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid event date %q: %w", event.Date, err)
			}
		}

		for i, side := range comp.Competitors {
			opponent := comp.Competitors[1-i]

			teamID, err := strconv.ParseInt(side.Team.ID, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid competitor team id %q: %w", side.Team.ID, err)
			}

			teamScore, _ := strconv.Atoi(side.Score)
			opponentScore, _ := strconv.Atoi(opponent.Score)

			games = append(games, ScoreboardGame{
				TeamID:        teamID,
				Opponent:      opponent.Team.DisplayName,
				Date:          date,
				TeamScore:     teamScore,
				OpponentScore: opponentScore,
				HomeGame:      side.HomeAway == "home",
				Venue:         comp.Venue.FullName,
				Completed:     comp.Status.Type.Completed,
			})
		}
	}

	return games, nil
}

// getJSON performs a GET request and decodes the JSON response into out
func (c *ESPNClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}
