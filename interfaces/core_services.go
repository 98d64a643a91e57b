package interfaces

import (
	"context"

	"pool-engine-go/models"
)

// Service interfaces consumed by the handler layer. Handlers depend on these
// rather than the concrete services so tests can substitute fakes.

// GradingServiceInterface defines the grading operation used by handlers
type GradingServiceInterface interface {
	GradeGame(ctx context.Context, gameID int) ([]*models.Grade, error)
}

// OverrideServiceInterface defines the override operations used by handlers
type OverrideServiceInterface interface {
	OverrideGrade(ctx context.Context, pickID int, outcome models.Outcome, points float64, reason string, actorID *int) (*models.Grade, error)
	BulkOverrideGamePicks(ctx context.Context, gameID int, outcome models.Outcome, points float64, reason string, actorID *int) ([]*models.Grade, error)
	GetOverrideHistory(ctx context.Context, pickID int) ([]*models.GradeOverride, error)
	GetOverrideStats(ctx context.Context, season int, week *int) (*models.OverrideStats, error)
}

// StandingsServiceInterface defines the standings reads used by handlers
type StandingsServiceInterface interface {
	GetPoolStandings(ctx context.Context, poolID, season int) ([]*models.Standing, error)
	GetWeeklyStandings(ctx context.Context, poolID, season, week int) ([]*models.Standing, error)
	GetEntryDetail(ctx context.Context, entryID, season int) (*models.EntryDetail, error)
}

// AuthServiceInterface defines authentication operations used by handlers
// and middleware
type AuthServiceInterface interface {
	Login(email, password string) (*models.AuthResponse, error)
	GetUserFromToken(tokenString string) (*models.User, error)
}
