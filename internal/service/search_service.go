package service

import (
	"strings"

	"sportiq/internal/models"
	"sportiq/internal/repository"
)

// searchLimit caps results per category so the merged response stays small
const searchLimit = 5

// SearchService merges team, player and module search into one response
type SearchService struct {
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	moduleRepo *repository.ModuleRepository
}

// NewSearchService creates a new search service
func NewSearchService(teamRepo *repository.TeamRepository, playerRepo *repository.PlayerRepository, moduleRepo *repository.ModuleRepository) *SearchService {
	return &SearchService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		moduleRepo: moduleRepo,
	}
}

// Search matches the query against team names, player names and module
// titles, case-insensitively, returning at most five results per category
func (s *SearchService) Search(query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	results := []models.SearchResult{}
	if query == "" {
		return results, nil
	}

	teams, err := s.teamRepo.SearchByName(query, searchLimit)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		results = append(results, models.SearchResult{
			Value:    t.DisplayName,
			Type:     "team",
			ID:       t.TeamID,
			Keywords: keywords(t.DisplayName, t.Abbreviation),
		})
	}

	players, err := s.playerRepo.SearchByName(query, searchLimit)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		results = append(results, models.SearchResult{
			Value:    p.Name,
			Type:     "player",
			ID:       p.PlayerID,
			TeamID:   p.TeamID,
			Keywords: keywords(p.Name, p.Position),
		})
	}

	modules, err := s.moduleRepo.SearchByTitle(query, searchLimit)
	if err != nil {
		return nil, err
	}
	for _, m := range modules {
		results = append(results, models.SearchResult{
			Value:    m.Title,
			Type:     "module",
			ID:       m.ModuleID,
			Keywords: keywords(m.Title, m.Concept),
		})
	}

	return results, nil
}

// keywords lowercases and splits the given strings into match tokens
func keywords(parts ...string) []string {
	var tokens []string
	for _, part := range parts {
		tokens = append(tokens, strings.Fields(strings.ToLower(part))...)
	}
	return tokens
}
