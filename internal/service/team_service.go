package service

import (
	"errors"

	"sportiq/internal/models"
	"sportiq/internal/repository"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
)

// gamePageSize is how many recent and upcoming games the team page shows
const gamePageSize = 10

// TeamService handles team business logic
type TeamService struct {
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	gameRepo   *repository.GameRepository
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo *repository.TeamRepository, playerRepo *repository.PlayerRepository, gameRepo *repository.GameRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
	}
}

// ListTeams retrieves every team
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

// GetTeamDetail aggregates a team's record, leaders, roster and schedule
func (s *TeamService) GetTeamDetail(teamID int64) (*models.TeamDetail, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	record, err := s.teamRepo.GetRecord(teamID)
	if err != nil {
		return nil, err
	}

	leaders, err := s.teamRepo.GetLeaders(teamID)
	if err != nil {
		return nil, err
	}

	roster, err := s.playerRepo.GetByTeam(teamID)
	if err != nil {
		return nil, err
	}

	recent, err := s.gameRepo.GetRecentGames(teamID, gamePageSize)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.gameRepo.GetUpcomingGames(teamID, gamePageSize)
	if err != nil {
		return nil, err
	}

	detail := &models.TeamDetail{
		Team:          *team,
		Record:        record,
		Leaders:       leaders,
		Roster:        roster,
		RecentGames:   recent,
		UpcomingGames: upcoming,
	}
	if detail.Leaders == nil {
		detail.Leaders = []models.Player{}
	}
	if detail.Roster == nil {
		detail.Roster = []models.Player{}
	}
	if detail.RecentGames == nil {
		detail.RecentGames = []models.Game{}
	}
	if detail.UpcomingGames == nil {
		detail.UpcomingGames = []models.UpcomingGame{}
	}

	return detail, nil
}

// GetRoster retrieves a team's players
func (s *TeamService) GetRoster(teamID int64) ([]models.Player, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	roster, err := s.playerRepo.GetByTeam(teamID)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		roster = []models.Player{}
	}
	return roster, nil
}
