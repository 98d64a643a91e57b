package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pool-engine-go/interfaces"
	"pool-engine-go/logging"
	"pool-engine-go/middleware"
	"pool-engine-go/models"
)

// OverrideHandler exposes manual grade corrections over HTTP. All routes run
// behind authentication; the operator from the token becomes the ledger actor.
type OverrideHandler struct {
	overrideService interfaces.OverrideServiceInterface
	logger          *logging.Logger
}

// NewOverrideHandler creates a new override handler
func NewOverrideHandler(overrideService interfaces.OverrideServiceInterface) *OverrideHandler {
	return &OverrideHandler{
		overrideService: overrideService,
		logger:          logging.WithPrefix("OverrideHandler"),
	}
}

// overrideRequest is the body for single and bulk overrides
type overrideRequest struct {
	Outcome models.Outcome `json:"outcome"`
	Points  float64        `json:"points"`
	Reason  string         `json:"reason"`
}

// OverridePick handles POST /api/picks/{id}/override
func (h *OverrideHandler) OverridePick(w http.ResponseWriter, r *http.Request) {
	pickID, err := pathInt(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, errors.New("body: invalid JSON"))
		return
	}

	grade, err := h.overrideService.OverrideGrade(r.Context(), pickID, req.Outcome, req.Points, req.Reason, actorID(r))
	if err != nil {
		h.logger.Errorf("Override of pick %d failed: %v", pickID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, grade)
}

// OverrideGamePicks handles POST /api/games/{id}/override
func (h *OverrideHandler) OverrideGamePicks(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, errors.New("body: invalid JSON"))
		return
	}

	grades, err := h.overrideService.BulkOverrideGamePicks(r.Context(), gameID, req.Outcome, req.Points, req.Reason, actorID(r))
	if err != nil {
		h.logger.Errorf("Bulk override of game %d failed: %v", gameID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, grades)
}

// GetHistory handles GET /api/picks/{id}/overrides
func (h *OverrideHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	pickID, err := pathInt(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	history, err := h.overrideService.GetOverrideHistory(r.Context(), pickID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// GetStats handles GET /api/overrides/stats?season=2025[&week=3]
func (h *OverrideHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	season, err := queryInt(r, "season")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	week, err := queryIntOptional(r, "week")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	stats, err := h.overrideService.GetOverrideStats(r.Context(), season, week)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// actorID pulls the authenticated operator's id from the request, nil when
// the route somehow ran without auth
func actorID(r *http.Request) *int {
	if user := middleware.GetUserFromContext(r); user != nil {
		id := user.ID
		return &id
	}
	return nil
}
