package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sportiq/internal/service"
)

// TeamHandler handles team HTTP requests
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListTeams returns every team
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load teams", "Error fetching teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// GetTeam returns a team's detail page data
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID", "", nil)
		return
	}

	detail, err := h.teamService.GetTeamDetail(teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			respondWithError(w, http.StatusNotFound, "Team not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load team", "Error fetching team", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// GetRoster returns a team's players
func (h *TeamHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID", "", nil)
		return
	}

	roster, err := h.teamService.GetRoster(teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			respondWithError(w, http.StatusNotFound, "Team not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load roster", "Error fetching roster", err)
		return
	}

	respondJSON(w, http.StatusOK, roster)
}
