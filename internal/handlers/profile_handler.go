package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"sportiq/internal/service"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	validate       *validator.Validate
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
}

// Register creates the caller's application profile
func (h *ProfileHandler) Register(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Username must be 3-30 alphanumeric characters", "", nil)
		return
	}

	profile, err := h.profileService.Register(r.Context(), user.ID, payload.Username, user.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileExists):
			respondWithError(w, http.StatusConflict, "Profile already exists", "", nil)
		case errors.Is(err, service.ErrUsernameTaken):
			respondWithError(w, http.StatusConflict, "Username already taken", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to create profile", "Error creating profile", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// GetProfile returns the caller's profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondWithError(w, http.StatusNotFound, "Profile not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile", "Error fetching profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// CheckUsername reports whether a username is still available
func (h *ProfileHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "Missing query parameter username", "", nil)
		return
	}

	available, err := h.profileService.CheckUsername(username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to check username", "Error checking username", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"available": available})
}
