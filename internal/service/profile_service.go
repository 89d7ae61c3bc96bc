package service

import (
	"context"
	"errors"
	"log"

	"sportiq/internal/models"
	"sportiq/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrUsernameTaken   = errors.New("username already taken")
)

// ProfileService handles user profile business logic
type ProfileService struct {
	profileRepo  *repository.ProfileRepository
	emailService *EmailService
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository, emailService *EmailService) *ProfileService {
	return &ProfileService{
		profileRepo:  profileRepo,
		emailService: emailService,
	}
}

// Register creates the application profile for a newly authenticated user.
// The welcome email is best effort; a send failure never fails registration.
func (s *ProfileService) Register(ctx context.Context, userID, username, email string) (*models.UserProfile, error) {
	existing, err := s.profileRepo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	taken, err := s.profileRepo.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	profile, err := s.profileRepo.CreateProfile(userID, username)
	if err != nil {
		return nil, err
	}

	if email != "" {
		if err := s.emailService.SendWelcomeEmail(ctx, email, username); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}

	return profile, nil
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(userID string) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// CheckUsername reports whether a username is still available
func (s *ProfileService) CheckUsername(username string) (bool, error) {
	taken, err := s.profileRepo.UsernameExists(username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
