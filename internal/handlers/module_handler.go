package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"sportiq/internal/generator"
	"sportiq/internal/repository"
	"sportiq/internal/service"
)

// ModuleHandler handles learning module HTTP requests
type ModuleHandler struct {
	moduleService *service.ModuleService
	validate      *validator.Validate
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(moduleService *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		moduleService: moduleService,
		validate:      validator.New(),
	}
}

type createModulePayload struct {
	Title      string `json:"title" validate:"required,max=120"`
	Topic      string `json:"topic" validate:"required,oneof=player team rule tournament position"`
	Concept    string `json:"concept" validate:"required,max=200"`
	Difficulty int    `json:"difficulty" validate:"min=0,max=2"`
}

type setStatusPayload struct {
	Status *bool `json:"status" validate:"required"`
}

// CreateModule generates and persists a new module for the caller
func (h *ModuleHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var payload createModulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module parameters", "", nil)
		return
	}

	moduleID, err := h.moduleService.CreateModule(r.Context(), service.CreateModuleRequest{
		Title:      payload.Title,
		Topic:      payload.Topic,
		Concept:    payload.Concept,
		Difficulty: payload.Difficulty,
		UserID:     user.ID,
	})
	if err != nil {
		var validationErr *generator.ValidationError
		var exhaustedErr *generator.ExhaustedError
		switch {
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		case errors.As(err, &exhaustedErr):
			respondWithError(w, http.StatusBadGateway, "Content generation failed", "Generation attempts exhausted", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to create module", "Error creating module", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"moduleId": moduleID})
}

// GetModule returns a module with its full content
func (h *ModuleHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	moduleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID", "", nil)
		return
	}

	detail, err := h.moduleService.GetModule(user.ID, moduleID)
	if err != nil {
		if errors.Is(err, service.ErrModuleNotFound) {
			respondWithError(w, http.StatusNotFound, "Module not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load module", "Error fetching module", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// ListModules returns one page of the caller's modules
func (h *ModuleHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	opts := repository.ListOptions{
		Page:      1,
		Limit:     10,
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		opts.Limit = limit
	}

	listing, err := h.moduleService.ListModules(user.ID, opts)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list modules", "Error listing modules", err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// AddModule links an existing module into the caller's library
func (h *ModuleHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	moduleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID", "", nil)
		return
	}

	if err := h.moduleService.AddModule(user.ID, moduleID); err != nil {
		switch {
		case errors.Is(err, service.ErrModuleNotFound):
			respondWithError(w, http.StatusNotFound, "Module not found", "", nil)
		case errors.Is(err, service.ErrAlreadyInLibrary):
			respondWithError(w, http.StatusConflict, "Module already in library", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to add module", "Error adding module", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"moduleId": moduleID})
}

// RemoveModule removes a module from the caller's library
func (h *ModuleHandler) RemoveModule(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	moduleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID", "", nil)
		return
	}

	if err := h.moduleService.RemoveModule(user.ID, moduleID); err != nil {
		if errors.Is(err, service.ErrNotInLibrary) {
			respondWithError(w, http.StatusNotFound, "Module not in library", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to remove module", "Error removing module", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// SetModuleStatus updates the caller's completion status for a module and
// returns the streak after any daily advance
func (h *ModuleHandler) SetModuleStatus(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	moduleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID", "", nil)
		return
	}

	var payload setStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing status field", "", nil)
		return
	}

	currentStreak, err := h.moduleService.SetModuleStatus(user.ID, moduleID, *payload.Status)
	if err != nil {
		if errors.Is(err, service.ErrNotInLibrary) {
			respondWithError(w, http.StatusNotFound, "Module not in library", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update status", "Error updating module status", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"moduleId": moduleID,
		"status":   *payload.Status,
		"streak":   currentStreak,
	})
}
