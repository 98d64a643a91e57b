package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pool-engine-go/interfaces"
	"pool-engine-go/logging"
	"pool-engine-go/models"
)

// AuthHandler exposes operator login
type AuthHandler struct {
	authService interfaces.AuthServiceInterface
	logger      *logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService interfaces.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logging.WithPrefix("AuthHandler"),
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, errors.New("body: invalid JSON"))
		return
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warnf("Failed login for %s", req.Email)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
