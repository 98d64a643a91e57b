package handlers

import (
	"net/http"

	"pool-engine-go/interfaces"
	"pool-engine-go/logging"
)

// StandingsHandler exposes standings reads over HTTP
type StandingsHandler struct {
	standingsService interfaces.StandingsServiceInterface
	logger           *logging.Logger
}

// NewStandingsHandler creates a new standings handler
func NewStandingsHandler(standingsService interfaces.StandingsServiceInterface) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		logger:           logging.WithPrefix("StandingsHandler"),
	}
}

// GetPoolStandings handles GET /api/pools/{id}/standings?season=2025[&week=3].
// With a week parameter the standings cover that week only.
func (h *StandingsHandler) GetPoolStandings(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathInt(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
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

	if week != nil {
		standings, err := h.standingsService.GetWeeklyStandings(r.Context(), poolID, season, *week)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, standings)
		return
	}

	standings, err := h.standingsService.GetPoolStandings(r.Context(), poolID, season)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, standings)
}

// GetEntryDetail handles GET /api/entries/{id}?season=2025
func (h *StandingsHandler) GetEntryDetail(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathInt(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	detail, err := h.standingsService.GetEntryDetail(r.Context(), entryID, season)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}
