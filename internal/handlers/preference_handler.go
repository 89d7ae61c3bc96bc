package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sportiq/internal/service"
)

// PreferenceHandler handles followed team and player HTTP requests
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// GetPreferences returns everything the caller follows
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	prefs, err := h.preferenceService.GetPreferences(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load preferences", "Error fetching preferences", err)
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

// FollowTeam adds a team to the caller's followed set
func (h *PreferenceHandler) FollowTeam(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID", "", nil)
		return
	}

	if err := h.preferenceService.FollowTeam(user.ID, teamID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			respondWithError(w, http.StatusNotFound, "Team not found", "", nil)
		case errors.Is(err, service.ErrAlreadyFollowed):
			respondWithError(w, http.StatusConflict, "Team already followed", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to follow team", "Error following team", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"teamId": teamID})
}

// UnfollowTeam removes a team from the caller's followed set
func (h *PreferenceHandler) UnfollowTeam(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID", "", nil)
		return
	}

	if err := h.preferenceService.UnfollowTeam(user.ID, teamID); err != nil {
		if errors.Is(err, service.ErrNotFollowed) {
			respondWithError(w, http.StatusNotFound, "Team not followed", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to unfollow team", "Error unfollowing team", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// FollowPlayer adds a player to the caller's followed set
func (h *PreferenceHandler) FollowPlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid player ID", "", nil)
		return
	}

	if err := h.preferenceService.FollowPlayer(user.ID, playerID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlayerNotFound):
			respondWithError(w, http.StatusNotFound, "Player not found", "", nil)
		case errors.Is(err, service.ErrAlreadyFollowed):
			respondWithError(w, http.StatusConflict, "Player already followed", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to follow player", "Error following player", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"playerId": playerID})
}

// UnfollowPlayer removes a player from the caller's followed set
func (h *PreferenceHandler) UnfollowPlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid player ID", "", nil)
		return
	}

	if err := h.preferenceService.UnfollowPlayer(user.ID, playerID); err != nil {
		if errors.Is(err, service.ErrNotFollowed) {
			respondWithError(w, http.StatusNotFound, "Player not followed", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to unfollow player", "Error unfollowing player", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
