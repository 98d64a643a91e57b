package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pool-engine-go/logging"
	"pool-engine-go/models"
)

// MinReasonLength is the minimum trimmed length of an override reason
const MinReasonLength = 10

// OverrideService applies audited manual corrections to grades. Every
// correction appends one immutable GradeOverride row before the live grade is
// touched, inside one transaction, so the ledger can never disagree with the
// grade table.
type OverrideService struct {
	games     GameStore
	picks     PickStore
	grades    GradeStore
	overrides OverrideStore
	tx        TxRunner
	logger    *logging.Logger
}

// NewOverrideService creates a new override service
func NewOverrideService(games GameStore, picks PickStore, grades GradeStore, overrides OverrideStore, tx TxRunner) *OverrideService {
	return &OverrideService{
		games:     games,
		picks:     picks,
		grades:    grades,
		overrides: overrides,
		tx:        tx,
		logger:    logging.WithPrefix("OverrideService"),
	}
}

// OverrideGrade replaces a grade's outcome and points with the requested
// values, recording the pre-override state in the ledger. The grade must
// already exist; overriding an ungraded pick is an error, not an implicit
// grade.
func (s *OverrideService) OverrideGrade(ctx context.Context, pickID int, outcome models.Outcome, points float64, reason string, actorID *int) (*models.Grade, error) {
	reason, err := validateOverride(outcome, reason)
	if err != nil {
		return nil, err
	}

	pick, err := s.picks.FindByID(ctx, pickID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick %d: %w", pickID, err)
	}
	if pick == nil {
		return nil, fmt.Errorf("pick %d: %w", pickID, ErrPickNotFound)
	}

	var updated *models.Grade
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		grade, err := s.grades.FindByPick(txCtx, pickID)
		if err != nil {
			return fmt.Errorf("failed to load grade for pick %d: %w", pickID, err)
		}
		if grade == nil {
			return fmt.Errorf("pick %d: %w", pickID, ErrGradeNotFound)
		}

		updated, err = s.applyOverride(txCtx, pick, grade, outcome, points, reason, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Overrode pick %d: %s/%.1f -> %s/%.1f (%s)",
		pickID, updated.Details.OriginalOutcome, *updated.Details.OriginalPoints, outcome, points, reason)
	return updated, nil
}

// BulkOverrideGamePicks applies the same correction to every currently-graded
// pick of a game. All picks are overridden and audited, or none are.
func (s *OverrideService) BulkOverrideGamePicks(ctx context.Context, gameID int, outcome models.Outcome, points float64, reason string, actorID *int) ([]*models.Grade, error) {
	reason, err := validateOverride(outcome, reason)
	if err != nil {
		return nil, err
	}

	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %d: %w", gameID, err)
	}
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
	}

	picks, err := s.picks.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for game %d: %w", gameID, err)
	}

	var updated []*models.Grade
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		updated = updated[:0]
		for _, pick := range picks {
			grade, err := s.grades.FindByPick(txCtx, pick.ID)
			if err != nil {
				return fmt.Errorf("failed to load grade for pick %d: %w", pick.ID, err)
			}
			if grade == nil {
				// Ungraded picks are skipped, not implicitly graded
				continue
			}

			overridden, err := s.applyOverride(txCtx, pick, grade, outcome, points, reason, actorID)
			if err != nil {
				return err
			}
			updated = append(updated, overridden)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Bulk override on game %d: %d grades set to %s/%.1f (%s)", gameID, len(updated), outcome, points, reason)
	return updated, nil
}

// applyOverride appends the ledger row, then replaces the live grade.
// Must run inside a transaction so the two writes commit together.
func (s *OverrideService) applyOverride(ctx context.Context, pick *models.Pick, grade *models.Grade, outcome models.Outcome, points float64, reason string, actorID *int) (*models.Grade, error) {
	now := time.Now()

	record := &models.GradeOverride{
		PickID:          pick.ID,
		GameID:          pick.GameID,
		Season:          pick.Season,
		Week:            pick.Week,
		OriginalOutcome: grade.Outcome,
		OriginalPoints:  grade.Points,
		NewOutcome:      outcome,
		NewPoints:       points,
		Reason:          reason,
		ActorID:         actorID,
		CreatedAt:       now,
	}
	if err := s.overrides.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record override for pick %d: %w", pick.ID, err)
	}

	grade.ApplyOverride(outcome, points, reason, actorID, now)
	if err := s.grades.Upsert(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to save overridden grade for pick %d: %w", pick.ID, err)
	}
	return grade, nil
}

// GetOverrideHistory returns the chronological override ledger for a pick
func (s *OverrideService) GetOverrideHistory(ctx context.Context, pickID int) ([]*models.GradeOverride, error) {
	history, err := s.overrides.FindByPick(ctx, pickID)
	if err != nil {
		return nil, fmt.Errorf("failed to load override history for pick %d: %w", pickID, err)
	}
	return history, nil
}

// GetOverrideStats summarizes override activity for a season, optionally
// narrowed to one week
func (s *OverrideService) GetOverrideStats(ctx context.Context, season int, week *int) (*models.OverrideStats, error) {
	stats, err := s.overrides.Stats(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to compute override stats: %w", err)
	}
	return stats, nil
}

// validateOverride checks the requested outcome and reason, returning the
// trimmed reason
func validateOverride(outcome models.Outcome, reason string) (string, error) {
	if !outcome.Valid() {
		return "", fmt.Errorf("%q: %w", outcome, ErrInvalidOutcome)
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < MinReasonLength {
		return "", ErrReasonTooShort
	}
	return reason, nil
}
