package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pool-engine-go/database"
	"pool-engine-go/logging"
	"pool-engine-go/services"
)

// errorResponse is the JSON shape of every error the API returns
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

// respondError maps service errors onto stable error kinds and HTTP status
// codes. Unknown errors become opaque 500s; their detail stays in the log.
func respondError(w http.ResponseWriter, err error) {
	kind, status := classifyError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Errorf("Internal error: %v", err)
		message = "internal error"
	}
	respondJSON(w, status, errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

func classifyError(err error) (string, int) {
	switch {
	case errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrResultNotFound),
		errors.Is(err, services.ErrPoolNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrPickNotFound),
		errors.Is(err, services.ErrGradeNotFound),
		errors.Is(err, database.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, services.ErrPickTeamMismatch),
		errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrInvalidPoolType),
		errors.Is(err, services.ErrReasonTooShort):
		return "validation", http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return "unauthorized", http.StatusUnauthorized
	case errors.Is(err, database.ErrConflict):
		return "conflict", http.StatusConflict
	default:
		return "internal", http.StatusInternalServerError
	}
}

// pathInt reads an integer path variable set by the router
func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errors.New(name + ": must be an integer")
	}
	return value, nil
}

// queryInt reads a required integer query parameter
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New(name + ": required query parameter is missing")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + ": must be an integer")
	}
	return value, nil
}

// queryIntOptional reads an optional integer query parameter, nil when absent
func queryIntOptional(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + ": must be an integer")
	}
	return &value, nil
}

// respondBadRequest is for request-shape errors that never reach a service
func respondBadRequest(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Kind: "validation", Message: err.Error()}})
}
