package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportiq/internal/generator"
	"sportiq/internal/models"
	"sportiq/internal/repository"
	"sportiq/internal/streak"
)

var (
	ErrModuleNotFound   = errors.New("module not found")
	ErrNotInLibrary     = errors.New("module not in user library")
	ErrAlreadyInLibrary = errors.New("module already in user library")
)

// streakRetries bounds the compare-and-set loop when racing completion
// events touch the same profile.
const streakRetries = 3

// CreateModuleRequest carries the user's parameters for a new module
type CreateModuleRequest struct {
	Title      string
	Topic      string
	Concept    string
	Difficulty int
	UserID     string
}

// ModuleListing is one page of a user's modules plus paging metadata
type ModuleListing struct {
	Modules  []models.ModuleSummary `json:"modules"`
	Metadata models.PageMetadata    `json:"metadata"`
}

// ModuleService handles learning module business logic
type ModuleService struct {
	moduleRepo  *repository.ModuleRepository
	profileRepo *repository.ProfileRepository
	generator   *generator.Generator
	cardCount   int
}

// NewModuleService creates a new module service. cardCount is the number of
// flashcards and questions generated per module.
func NewModuleService(moduleRepo *repository.ModuleRepository, profileRepo *repository.ProfileRepository, gen *generator.Generator, cardCount int) *ModuleService {
	if cardCount <= 0 {
		cardCount = 5
	}
	return &ModuleService{
		moduleRepo:  moduleRepo,
		profileRepo: profileRepo,
		generator:   gen,
		cardCount:   cardCount,
	}
}

// CreateModule generates content for the requested concept and persists the
// module atomically. The module only becomes visible once its flashcards,
// questions and the creator's library link are all written.
func (s *ModuleService) CreateModule(ctx context.Context, req CreateModuleRequest) (int64, error) {
	content, err := s.generator.Generate(ctx, generator.Request{
		Topic:      generator.Topic(req.Topic),
		Concept:    req.Concept,
		Difficulty: req.Difficulty,
		Count:      s.cardCount,
	})
	if err != nil {
		return 0, err
	}

	module := &models.Module{
		Title:      req.Title,
		Topic:      req.Topic,
		Concept:    req.Concept,
		Difficulty: req.Difficulty,
		Sport:      "baseball",
		CreatorID:  req.UserID,
	}

	moduleID, err := s.moduleRepo.CreateWithContent(module, content)
	if err != nil {
		return 0, fmt.Errorf("failed to persist module: %w", err)
	}

	return moduleID, nil
}

// GetModule retrieves a module with its full content, creator attribution
// and the requesting user's completion status
func (s *ModuleService) GetModule(userID string, moduleID int64) (*models.ModuleDetail, error) {
	module, err := s.moduleRepo.GetModule(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	flashcards, err := s.moduleRepo.GetFlashcards(moduleID)
	if err != nil {
		return nil, err
	}

	questions, err := s.moduleRepo.GetQuestions(moduleID)
	if err != nil {
		return nil, err
	}

	detail := &models.ModuleDetail{
		Module:          *module,
		CreatorUsername: "Unknown User",
		Flashcards:      flashcards,
		Questions:       questions,
	}

	creator, err := s.profileRepo.GetProfile(module.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator != nil {
		detail.CreatorUsername = creator.Username
	}

	link, err := s.moduleRepo.GetUserModule(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if link != nil {
		detail.Status = &link.Status
	}

	return detail, nil
}

// ListModules returns one page of a user's modules with paging metadata
func (s *ModuleService) ListModules(userID string, opts repository.ListOptions) (*ModuleListing, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	if opts.Limit > 50 {
		opts.Limit = 50
	}

	total, err := s.moduleRepo.CountUserModules(userID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.moduleRepo.ListUserModules(userID, opts)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.ModuleSummary{}
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit

	return &ModuleListing{
		Modules: summaries,
		Metadata: models.PageMetadata{
			TotalCount:  total,
			CurrentPage: opts.Page,
			TotalPages:  totalPages,
			HasMore:     opts.Page < totalPages,
		},
	}, nil
}

// AddModule links an existing module into a user's library
func (s *ModuleService) AddModule(userID string, moduleID int64) error {
	module, err := s.moduleRepo.GetModule(moduleID)
	if err != nil {
		return err
	}
	if module == nil {
		return ErrModuleNotFound
	}

	link, err := s.moduleRepo.GetUserModule(userID, moduleID)
	if err != nil {
		return err
	}
	if link != nil {
		return ErrAlreadyInLibrary
	}

	return s.moduleRepo.UpsertUserModule(userID, moduleID, false)
}

// RemoveModule removes a module from a user's library
func (s *ModuleService) RemoveModule(userID string, moduleID int64) error {
	link, err := s.moduleRepo.GetUserModule(userID, moduleID)
	if err != nil {
		return err
	}
	if link == nil {
		return ErrNotInLibrary
	}

	return s.moduleRepo.DeleteUserModule(userID, moduleID)
}

// SetModuleStatus updates a user's completion status for a module. Marking
// a module complete also advances the daily streak; the returned value is
// the streak after the update.
func (s *ModuleService) SetModuleStatus(userID string, moduleID int64, status bool) (int, error) {
	link, err := s.moduleRepo.GetUserModule(userID, moduleID)
	if err != nil {
		return 0, err
	}
	if link == nil {
		return 0, ErrNotInLibrary
	}

	if err := s.moduleRepo.UpsertUserModule(userID, moduleID, status); err != nil {
		return 0, err
	}

	if !status {
		state, err := s.profileRepo.GetStreakState(userID)
		if err != nil {
			return 0, err
		}
		return state.Current, nil
	}

	return s.advanceStreak(userID, time.Now())
}

// advanceStreak applies the daily streak rule with a conditional write.
// A lost race means another completion event advanced the streak between
// our read and write; re-reading then yields a state where the rule is a
// no-op for the same day, so the loop settles quickly.
func (s *ModuleService) advanceStreak(userID string, now time.Time) (int, error) {
	for i := 0; i < streakRetries; i++ {
		observed, err := s.profileRepo.GetStreakState(userID)
		if err != nil {
			return 0, err
		}

		next, changed := streak.Advance(observed, now)
		if !changed {
			return observed.Current, nil
		}

		won, err := s.profileRepo.CompareAndSetStreak(userID, observed, next)
		if err != nil {
			return 0, err
		}
		if won {
			return next.Current, nil
		}
	}

	state, err := s.profileRepo.GetStreakState(userID)
	if err != nil {
		return 0, err
	}
	return state.Current, nil
}
