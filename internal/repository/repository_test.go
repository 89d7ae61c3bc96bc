package repository

import (
	"path/filepath"
	"testing"
	"time"

	"sportiq/internal/database"
	"sportiq/internal/generator"
	"sportiq/internal/models"
	"sportiq/internal/streak"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestProfile(t *testing.T, db *database.DB, userID, username string) {
	t.Helper()
	if _, err := NewProfileRepository(db).CreateProfile(userID, username); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
}

func testContent(count int) *generator.Result {
	result := &generator.Result{}
	for i := 0; i < count; i++ {
		result.Flashcards = append(result.Flashcards, generator.Flashcard{
			Term:       "term",
			Definition: "definition",
		})
		result.Questions = append(result.Questions, generator.Question{
			Prompt:             "prompt",
			Options:            [4]string{"a", "b", "c", "d"},
			CorrectOptionIndex: i % 4,
		})
	}
	return result
}

const testUserID = "3f1e9a34-6f9d-4a8e-9c2b-1b7f0e6d5a4c"

func TestProfileRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)

	profile, err := repo.CreateProfile(testUserID, "slugger99")
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if profile.Streak != 0 {
		t.Errorf("new profile streak = %d, want 0", profile.Streak)
	}

	got, err := repo.GetProfile(testUserID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got == nil || got.Username != "slugger99" {
		t.Fatalf("GetProfile() = %+v", got)
	}
	if got.StreakUpdatedAt != nil {
		t.Errorf("new profile streak_updated_at = %v, want nil", got.StreakUpdatedAt)
	}

	missing, err := repo.GetProfile("00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("GetProfile(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetProfile(missing) = %+v, want nil", missing)
	}

	taken, err := repo.UsernameExists("slugger99")
	if err != nil {
		t.Fatalf("UsernameExists() error = %v", err)
	}
	if !taken {
		t.Error("UsernameExists(slugger99) = false, want true")
	}

	free, err := repo.UsernameExists("someoneelse")
	if err != nil {
		t.Fatalf("UsernameExists() error = %v", err)
	}
	if free {
		t.Error("UsernameExists(someoneelse) = true, want false")
	}
}

func TestCompareAndSetStreak(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	createTestProfile(t, db, testUserID, "slugger99")

	day1 := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	observed, err := repo.GetStreakState(testUserID)
	if err != nil {
		t.Fatalf("GetStreakState() error = %v", err)
	}
	if !observed.UpdatedAt.IsZero() {
		t.Fatalf("fresh profile has streak_updated_at %v", observed.UpdatedAt)
	}

	// First write wins against the NULL timestamp.
	won, err := repo.CompareAndSetStreak(testUserID, observed, streak.State{Current: 1, UpdatedAt: day1})
	if err != nil {
		t.Fatalf("CompareAndSetStreak() error = %v", err)
	}
	if !won {
		t.Fatal("first CompareAndSetStreak() = false, want true")
	}

	// A stale observation loses.
	won, err = repo.CompareAndSetStreak(testUserID, observed, streak.State{Current: 1, UpdatedAt: day1})
	if err != nil {
		t.Fatalf("CompareAndSetStreak() error = %v", err)
	}
	if won {
		t.Fatal("stale CompareAndSetStreak() = true, want false")
	}

	// A fresh observation wins again.
	observed, err = repo.GetStreakState(testUserID)
	if err != nil {
		t.Fatalf("GetStreakState() error = %v", err)
	}
	if observed.Current != 1 {
		t.Fatalf("streak after first write = %d, want 1", observed.Current)
	}

	day2 := day1.AddDate(0, 0, 1)
	won, err = repo.CompareAndSetStreak(testUserID, observed, streak.State{Current: 2, UpdatedAt: day2})
	if err != nil {
		t.Fatalf("CompareAndSetStreak() error = %v", err)
	}
	if !won {
		t.Fatal("fresh CompareAndSetStreak() = false, want true")
	}

	final, err := repo.GetStreakState(testUserID)
	if err != nil {
		t.Fatalf("GetStreakState() error = %v", err)
	}
	if final.Current != 2 {
		t.Errorf("final streak = %d, want 2", final.Current)
	}
}

func TestModuleLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	createTestProfile(t, db, testUserID, "slugger99")

	moduleID, err := repo.CreateWithContent(&models.Module{
		Title:      "The Infield Fly Rule",
		Topic:      "rule",
		Concept:    "infield fly rule",
		Difficulty: 1,
		Sport:      "baseball",
		CreatorID:  testUserID,
	}, testContent(5))
	if err != nil {
		t.Fatalf("CreateWithContent() error = %v", err)
	}
	if moduleID == 0 {
		t.Fatal("CreateWithContent() returned zero ID")
	}

	module, err := repo.GetModule(moduleID)
	if err != nil {
		t.Fatalf("GetModule() error = %v", err)
	}
	if module == nil || module.Title != "The Infield Fly Rule" {
		t.Fatalf("GetModule() = %+v", module)
	}
	if module.NumQuestions != 5 {
		t.Errorf("num_questions = %d, want 5", module.NumQuestions)
	}

	cards, err := repo.GetFlashcards(moduleID)
	if err != nil {
		t.Fatalf("GetFlashcards() error = %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("flashcards = %d, want 5", len(cards))
	}
	for i, card := range cards {
		if card.OrderIndex != i {
			t.Errorf("flashcard %d order_index = %d", i, card.OrderIndex)
		}
	}

	questions, err := repo.GetQuestions(moduleID)
	if err != nil {
		t.Fatalf("GetQuestions() error = %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(questions))
	}

	// Creation links the creator with an incomplete status.
	link, err := repo.GetUserModule(testUserID, moduleID)
	if err != nil {
		t.Fatalf("GetUserModule() error = %v", err)
	}
	if link == nil || link.Status {
		t.Fatalf("creator link = %+v, want incomplete link", link)
	}

	if err := repo.UpsertUserModule(testUserID, moduleID, true); err != nil {
		t.Fatalf("UpsertUserModule() error = %v", err)
	}
	link, err = repo.GetUserModule(testUserID, moduleID)
	if err != nil {
		t.Fatalf("GetUserModule() error = %v", err)
	}
	if link == nil || !link.Status {
		t.Fatalf("link after completion = %+v", link)
	}

	if err := repo.DeleteUserModule(testUserID, moduleID); err != nil {
		t.Fatalf("DeleteUserModule() error = %v", err)
	}
	link, err = repo.GetUserModule(testUserID, moduleID)
	if err != nil {
		t.Fatalf("GetUserModule() error = %v", err)
	}
	if link != nil {
		t.Errorf("link after delete = %+v, want nil", link)
	}

	// The module itself survives library removal.
	module, err = repo.GetModule(moduleID)
	if err != nil || module == nil {
		t.Fatalf("GetModule() after unlink = %+v, %v", module, err)
	}
}

func TestListUserModules(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	createTestProfile(t, db, testUserID, "slugger99")

	titles := []string{"Bunting", "Stealing Bases", "The Balk", "Pitch Types", "Sabermetrics"}
	for i, title := range titles {
		_, err := repo.CreateWithContent(&models.Module{
			Title:      title,
			Topic:      "rule",
			Concept:    title,
			Difficulty: i % 3,
			Sport:      "baseball",
			CreatorID:  testUserID,
		}, testContent(2))
		if err != nil {
			t.Fatalf("CreateWithContent(%s) error = %v", title, err)
		}
	}

	count, err := repo.CountUserModules(testUserID)
	if err != nil {
		t.Fatalf("CountUserModules() error = %v", err)
	}
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}

	page1, err := repo.ListUserModules(testUserID, ListOptions{Page: 1, Limit: 2, SortBy: "difficulty", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("ListUserModules() error = %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(page1))
	}
	if page1[0].Difficulty > page1[1].Difficulty {
		t.Errorf("page 1 not sorted ascending: %d then %d", page1[0].Difficulty, page1[1].Difficulty)
	}
	if page1[0].CreatorUsername != "slugger99" {
		t.Errorf("creator username = %q, want slugger99", page1[0].CreatorUsername)
	}

	page3, err := repo.ListUserModules(testUserID, ListOptions{Page: 3, Limit: 2, SortBy: "difficulty", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("ListUserModules() error = %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page3))
	}

	// An unknown sort key falls back to created_at instead of failing.
	fallback, err := repo.ListUserModules(testUserID, ListOptions{Page: 1, Limit: 5, SortBy: "sneaky; DROP TABLE teams", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("ListUserModules() with bad sort key error = %v", err)
	}
	if len(fallback) != 5 {
		t.Errorf("fallback page size = %d, want 5", len(fallback))
	}
}

func TestTeamRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewTeamRepository(db)

	team := &models.Team{
		TeamID:       112,
		DisplayName:  "Chicago Cubs",
		Abbreviation: "CHC",
		LogoURL:      "https://a.espncdn.com/i/teamlogos/mlb/500/scoreboard/chc.png",
	}
	if err := repo.Upsert(team); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Second upsert updates in place.
	team.Standing = "2nd in NL Central"
	if err := repo.Upsert(team); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}

	got, err := repo.GetByID(112)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil || got.Standing != "2nd in NL Central" {
		t.Fatalf("GetByID() = %+v", got)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("GetAll() size = %d, want 1", len(all))
	}

	if err := repo.UpsertRecord(&models.TeamRecord{TeamID: 112, Wins: 40, Losses: 30}); err != nil {
		t.Fatalf("UpsertRecord() error = %v", err)
	}
	if err := repo.UpsertRecord(&models.TeamRecord{TeamID: 112, Wins: 41, Losses: 30}); err != nil {
		t.Fatalf("UpsertRecord() update error = %v", err)
	}
	record, err := repo.GetRecord(112)
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if record == nil || record.Wins != 41 {
		t.Fatalf("GetRecord() = %+v", record)
	}

	playerRepo := NewPlayerRepository(db)
	if err := playerRepo.Upsert(&models.Player{PlayerID: 1, TeamID: 112, Name: "Dansby Swanson", Position: "Shortstop", PositionCode: "SS"}); err != nil {
		t.Fatalf("player Upsert() error = %v", err)
	}

	if err := repo.SetLeaders(112, []int64{1}); err != nil {
		t.Fatalf("SetLeaders() error = %v", err)
	}
	leaders, err := repo.GetLeaders(112)
	if err != nil {
		t.Fatalf("GetLeaders() error = %v", err)
	}
	if len(leaders) != 1 || leaders[0].Name != "Dansby Swanson" {
		t.Fatalf("GetLeaders() = %+v", leaders)
	}
}

func TestPlayerSearch(t *testing.T) {
	db := newTestDB(t)
	teamRepo := NewTeamRepository(db)
	playerRepo := NewPlayerRepository(db)

	if err := teamRepo.Upsert(&models.Team{TeamID: 119, DisplayName: "Los Angeles Dodgers", Abbreviation: "LAD"}); err != nil {
		t.Fatalf("team Upsert() error = %v", err)
	}
	names := []string{"Shohei Ohtani", "Mookie Betts", "Freddie Freeman"}
	for i, name := range names {
		if err := playerRepo.Upsert(&models.Player{PlayerID: int64(i + 1), TeamID: 119, Name: name}); err != nil {
			t.Fatalf("player Upsert(%s) error = %v", name, err)
		}
	}

	matches, err := playerRepo.SearchByName("ohta", 5)
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Shohei Ohtani" {
		t.Fatalf("SearchByName(ohta) = %+v", matches)
	}

	roster, err := playerRepo.GetByTeam(119)
	if err != nil {
		t.Fatalf("GetByTeam() error = %v", err)
	}
	if len(roster) != 3 {
		t.Errorf("roster size = %d, want 3", len(roster))
	}
}

func TestGameRepository(t *testing.T) {
	db := newTestDB(t)
	teamRepo := NewTeamRepository(db)
	gameRepo := NewGameRepository(db)

	if err := teamRepo.Upsert(&models.Team{TeamID: 112, DisplayName: "Chicago Cubs", Abbreviation: "CHC"}); err != nil {
		t.Fatalf("team Upsert() error = %v", err)
	}

	day := time.Date(2025, time.June, 1, 19, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		game := &models.Game{
			TeamID:        112,
			Opponent:      "St. Louis Cardinals",
			Date:          day.AddDate(0, 0, i),
			TeamScore:     4 + i,
			OpponentScore: 2,
			HomeGame:      i%2 == 0,
		}
		if err := gameRepo.UpsertGame(game); err != nil {
			t.Fatalf("UpsertGame() error = %v", err)
		}
	}

	// Re-running the same game updates the score instead of duplicating.
	if err := gameRepo.UpsertGame(&models.Game{
		TeamID: 112, Opponent: "St. Louis Cardinals", Date: day, TeamScore: 9, OpponentScore: 2,
	}); err != nil {
		t.Fatalf("UpsertGame() rerun error = %v", err)
	}

	recent, err := gameRepo.GetRecentGames(112, 10)
	if err != nil {
		t.Fatalf("GetRecentGames() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent games = %d, want 3", len(recent))
	}
	if !recent[0].Date.After(recent[1].Date) {
		t.Errorf("recent games not newest first: %v then %v", recent[0].Date, recent[1].Date)
	}
	if recent[len(recent)-1].TeamScore != 9 {
		t.Errorf("rerun score = %d, want 9", recent[len(recent)-1].TeamScore)
	}

	future := day.AddDate(0, 1, 0)
	if err := gameRepo.UpsertUpcomingGame(&models.UpcomingGame{
		TeamID: 112, Opponent: "Milwaukee Brewers", Date: future, Venue: "Wrigley Field", HomeGame: true,
	}); err != nil {
		t.Fatalf("UpsertUpcomingGame() error = %v", err)
	}

	upcoming, err := gameRepo.GetUpcomingGames(112, 10)
	if err != nil {
		t.Fatalf("GetUpcomingGames() error = %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Venue != "Wrigley Field" {
		t.Fatalf("GetUpcomingGames() = %+v", upcoming)
	}

	if err := gameRepo.DeleteUpcomingBefore(future.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("DeleteUpcomingBefore() error = %v", err)
	}
	upcoming, err = gameRepo.GetUpcomingGames(112, 10)
	if err != nil {
		t.Fatalf("GetUpcomingGames() error = %v", err)
	}
	if len(upcoming) != 0 {
		t.Errorf("upcoming after prune = %d, want 0", len(upcoming))
	}
}

func TestPreferenceRepository(t *testing.T) {
	db := newTestDB(t)
	teamRepo := NewTeamRepository(db)
	playerRepo := NewPlayerRepository(db)
	prefRepo := NewPreferenceRepository(db)
	createTestProfile(t, db, testUserID, "slugger99")

	if err := teamRepo.Upsert(&models.Team{TeamID: 112, DisplayName: "Chicago Cubs", Abbreviation: "CHC"}); err != nil {
		t.Fatalf("team Upsert() error = %v", err)
	}
	if err := playerRepo.Upsert(&models.Player{PlayerID: 7, TeamID: 112, Name: "Dansby Swanson"}); err != nil {
		t.Fatalf("player Upsert() error = %v", err)
	}

	if err := prefRepo.AddTeam(testUserID, 112); err != nil {
		t.Fatalf("AddTeam() error = %v", err)
	}
	if err := prefRepo.AddPlayer(testUserID, 7); err != nil {
		t.Fatalf("AddPlayer() error = %v", err)
	}

	has, err := prefRepo.HasTeam(testUserID, 112)
	if err != nil || !has {
		t.Fatalf("HasTeam() = %v, %v", has, err)
	}

	teams, err := prefRepo.GetTeams(testUserID)
	if err != nil {
		t.Fatalf("GetTeams() error = %v", err)
	}
	if len(teams) != 1 || teams[0].DisplayName != "Chicago Cubs" {
		t.Fatalf("GetTeams() = %+v", teams)
	}

	players, err := prefRepo.GetPlayers(testUserID)
	if err != nil {
		t.Fatalf("GetPlayers() error = %v", err)
	}
	if len(players) != 1 || players[0].Name != "Dansby Swanson" {
		t.Fatalf("GetPlayers() = %+v", players)
	}

	if err := prefRepo.RemoveTeam(testUserID, 112); err != nil {
		t.Fatalf("RemoveTeam() error = %v", err)
	}
	has, err = prefRepo.HasTeam(testUserID, 112)
	if err != nil || has {
		t.Fatalf("HasTeam() after remove = %v, %v", has, err)
	}
}
