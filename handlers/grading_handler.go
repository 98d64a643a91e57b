package handlers

import (
	"net/http"

	"pool-engine-go/interfaces"
	"pool-engine-go/logging"
)

// GradingHandler exposes the grading trigger over HTTP
type GradingHandler struct {
	gradingService interfaces.GradingServiceInterface
	logger         *logging.Logger
}

// NewGradingHandler creates a new grading handler
func NewGradingHandler(gradingService interfaces.GradingServiceInterface) *GradingHandler {
	return &GradingHandler{
		gradingService: gradingService,
		logger:         logging.WithPrefix("GradingHandler"),
	}
}

// GradeGame handles POST /api/games/{id}/grade
func (h *GradingHandler) GradeGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathInt(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	grades, err := h.gradingService.GradeGame(r.Context(), gameID)
	if err != nil {
		h.logger.Errorf("Grading game %d failed: %v", gameID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, grades)
}
