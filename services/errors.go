package services

import "errors"

// Shared errors surfaced by the engine services and mapped onto HTTP status
// codes by the handler layer. Every error carries a stable identity plus a
// human-readable message; callers match with errors.Is.
var (
	// Not-found family: the requested row does not exist. Never silently
	// defaulted.
	ErrGameNotFound   = errors.New("game not found")
	ErrResultNotFound = errors.New("no result recorded for game")
	ErrPoolNotFound   = errors.New("pool not found")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrPickNotFound   = errors.New("pick not found")
	ErrGradeNotFound  = errors.New("no grade exists for pick")

	// Validation family
	ErrPickTeamMismatch = errors.New("pick references a team that is neither side of its game")
	ErrInvalidOutcome   = errors.New("outcome: value is not one of win, loss, push, void")
	ErrInvalidPoolType  = errors.New("pool type is not one of ats, su, points_plus, survivor")

	// ErrReasonTooShort names the field and states the minimum so clients
	// can validate without duplicating the rule
	ErrReasonTooShort = errors.New("reason: override reason must be at least 10 characters after trimming")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
)
