package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const teamsFixture = `{
  "sports": [{
    "leagues": [{
      "teams": [
        {"team": {"id": "112", "displayName": "Chicago Cubs", "abbreviation": "CHC", "slug": "chicago-cubs"}},
        {"team": {"id": "119", "displayName": "Los Angeles Dodgers", "abbreviation": "LAD", "slug": "los-angeles-dodgers"}}
      ]
    }]
  }]
}`

const rosterFixture = `{
  "athletes": [
    {"items": [
      {"id": "39832", "displayName": "Shohei Ohtani",
       "headshot": {"href": "https://a.espncdn.com/i/headshots/mlb/players/full/39832.png"},
       "position": {"displayName": "Designated Hitter", "abbreviation": "DH"}}
    ]},
    {"items": [
      {"id": "33039", "displayName": "Mookie Betts",
       "headshot": {"href": "https://a.espncdn.com/i/headshots/mlb/players/full/33039.png"},
       "position": {"displayName": "Shortstop", "abbreviation": "SS"}}
    ]}
  ]
}`

const scoreboardFixture = `{
  "events": [{
    "date": "2025-06-10T23:10Z",
    "competitions": [{
      "venue": {"fullName": "Wrigley Field"},
      "status": {"type": {"completed": true}},
      "competitors": [
        {"homeAway": "home", "score": "5", "team": {"id": "112", "displayName": "Chicago Cubs"}},
        {"homeAway": "away", "score": "3", "team": {"id": "119", "displayName": "Los Angeles Dodgers"}}
      ]
    }]
  }]
}`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teamsFixture))
	})
	mux.HandleFunc("/teams/119/roster", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rosterFixture))
	})
	mux.HandleFunc("/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardFixture))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetTeams(t *testing.T) {
	server := newFixtureServer(t)
	client := NewESPNClient(server.URL)

	teams, err := client.GetTeams(context.Background())
	if err != nil {
		t.Fatalf("GetTeams() error = %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(teams))
	}

	cubs := teams[0]
	if cubs.ID != 112 || cubs.DisplayName != "Chicago Cubs" {
		t.Errorf("team[0] = %+v", cubs)
	}
	if cubs.LogoURL != "https://a.espncdn.com/i/teamlogos/mlb/500/scoreboard/CHC.png" {
		t.Errorf("logo URL = %q", cubs.LogoURL)
	}
	if cubs.TeamURL != "https://www.espn.com/mlb/team/stats/_/name/CHC/chicago-cubs" {
		t.Errorf("team URL = %q", cubs.TeamURL)
	}
}

func TestGetRoster(t *testing.T) {
	server := newFixtureServer(t)
	client := NewESPNClient(server.URL)

	players, err := client.GetRoster(context.Background(), 119)
	if err != nil {
		t.Fatalf("GetRoster() error = %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}
	if players[0].Name != "Shohei Ohtani" || players[0].PositionCode != "DH" {
		t.Errorf("player[0] = %+v", players[0])
	}
}

func TestGetScoreboard(t *testing.T) {
	server := newFixtureServer(t)
	client := NewESPNClient(server.URL)

	games, err := client.GetScoreboard(context.Background())
	if err != nil {
		t.Fatalf("GetScoreboard() error = %v", err)
	}

	// One event produces one entry per competitor.
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2", len(games))
	}

	home := games[0]
	if home.TeamID != 112 || !home.HomeGame || home.TeamScore != 5 || home.OpponentScore != 3 {
		t.Errorf("home side = %+v", home)
	}
	if home.Opponent != "Los Angeles Dodgers" {
		t.Errorf("home opponent = %q", home.Opponent)
	}
	if !home.Completed {
		t.Error("home side not marked completed")
	}
	if home.Venue != "Wrigley Field" {
		t.Errorf("venue = %q", home.Venue)
	}

	away := games[1]
	if away.TeamID != 119 || away.HomeGame || away.TeamScore != 3 {
		t.Errorf("away side = %+v", away)
	}
}

func TestGetTeamsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewESPNClient(server.URL)
	if _, err := client.GetTeams(context.Background()); err == nil {
		t.Fatal("GetTeams() error = nil, want error on 502")
	}
}
