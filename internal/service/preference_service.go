package service

import (
	"errors"

	"sportiq/internal/models"
	"sportiq/internal/repository"
)

var (
	ErrAlreadyFollowed = errors.New("already followed")
	ErrNotFollowed     = errors.New("not followed")
)

// Preferences is a user's followed teams and players
type Preferences struct {
	Teams   []models.Team   `json:"teams"`
	Players []models.Player `json:"players"`
}

// PreferenceService handles followed team and player business logic
type PreferenceService struct {
	preferenceRepo *repository.PreferenceRepository
	teamRepo       *repository.TeamRepository
	playerRepo     *repository.PlayerRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(preferenceRepo *repository.PreferenceRepository, teamRepo *repository.TeamRepository, playerRepo *repository.PlayerRepository) *PreferenceService {
	return &PreferenceService{
		preferenceRepo: preferenceRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
	}
}

// GetPreferences retrieves everything a user follows
func (s *PreferenceService) GetPreferences(userID string) (*Preferences, error) {
	teams, err := s.preferenceRepo.GetTeams(userID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []models.Team{}
	}

	players, err := s.preferenceRepo.GetPlayers(userID)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []models.Player{}
	}

	return &Preferences{Teams: teams, Players: players}, nil
}

// FollowTeam records that a user follows a team
func (s *PreferenceService) FollowTeam(userID string, teamID int64) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}

	followed, err := s.preferenceRepo.HasTeam(userID, teamID)
	if err != nil {
		return err
	}
	if followed {
		return ErrAlreadyFollowed
	}

	return s.preferenceRepo.AddTeam(userID, teamID)
}

// UnfollowTeam removes a team from a user's followed set
func (s *PreferenceService) UnfollowTeam(userID string, teamID int64) error {
	followed, err := s.preferenceRepo.HasTeam(userID, teamID)
	if err != nil {
		return err
	}
	if !followed {
		return ErrNotFollowed
	}

	return s.preferenceRepo.RemoveTeam(userID, teamID)
}

// FollowPlayer records that a user follows a player
func (s *PreferenceService) FollowPlayer(userID string, playerID int64) error {
	player, err := s.playerRepo.GetByID(playerID)
	if err != nil {
		return err
	}
	if player == nil {
		return ErrPlayerNotFound
	}

	followed, err := s.preferenceRepo.HasPlayer(userID, playerID)
	if err != nil {
		return err
	}
	if followed {
		return ErrAlreadyFollowed
	}

	return s.preferenceRepo.AddPlayer(userID, playerID)
}

// UnfollowPlayer removes a player from a user's followed set
func (s *PreferenceService) UnfollowPlayer(userID string, playerID int64) error {
	followed, err := s.preferenceRepo.HasPlayer(userID, playerID)
	if err != nil {
		return err
	}
	if !followed {
		return ErrNotFollowed
	}

	return s.preferenceRepo.RemovePlayer(userID, playerID)
}
