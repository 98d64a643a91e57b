package services

import (
	"context"
	"fmt"
	"time"

	"pool-engine-go/logging"
	"pool-engine-go/models"
)

// scoreFunc turns a final picked-vs-opponent score into an outcome and points
type scoreFunc func(picked, opponent int) (models.Outcome, float64)

// scoringRules is the per-pool-type dispatch table. Keeping the four rules as
// pure functions keyed by pool type keeps them exhaustively enumerable and
// testable in isolation.
var scoringRules = map[models.PoolType]scoreFunc{
	models.PoolTypeATS:        flatScore,
	models.PoolTypeSU:         flatScore,
	models.PoolTypeSurvivor:   flatScore,
	models.PoolTypePointsPlus: marginScore,
}

// flatScore awards 1.0 for a win, 0 for a loss and 0.5 for a tie.
// Confidence never scales these pools; the flat constant is intentional.
func flatScore(picked, opponent int) (models.Outcome, float64) {
	switch {
	case picked > opponent:
		return models.OutcomeWin, 1.0
	case picked < opponent:
		return models.OutcomeLoss, 0.0
	default:
		return models.OutcomePush, 0.5
	}
}

// marginScore awards the signed margin: +margin on a win, -margin on a loss,
// 0 on a tie. The only rule that produces negative points.
func marginScore(picked, opponent int) (models.Outcome, float64) {
	switch {
	case picked > opponent:
		return models.OutcomeWin, float64(picked - opponent)
	case picked < opponent:
		return models.OutcomeLoss, -float64(opponent - picked)
	default:
		return models.OutcomePush, 0
	}
}

// GradingService turns final game results into one grade per pick
type GradingService struct {
	games   GameStore
	results ResultStore
	picks   PickStore
	entries EntryStore
	pools   PoolStore
	grades  GradeStore
	logger  *logging.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(games GameStore, results ResultStore, picks PickStore, entries EntryStore, pools PoolStore, grades GradeStore) *GradingService {
	return &GradingService{
		games:   games,
		results: results,
		picks:   picks,
		entries: entries,
		pools:   pools,
		grades:  grades,
		logger:  logging.WithPrefix("GradingService"),
	}
}

// GradeGame computes and upserts a grade for every pick on the game.
// A missing result is fatal for the whole invocation, as is a pick whose team
// matches neither side of the game; the caller fixes the data and retries.
// Re-running on the same result replaces every grade with identical values.
func (s *GradingService) GradeGame(ctx context.Context, gameID int) ([]*models.Grade, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %d: %w", gameID, err)
	}
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrGameNotFound)
	}

	result, err := s.results.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result for game %d: %w", gameID, err)
	}
	if result == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrResultNotFound)
	}

	picks, err := s.picks.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for game %d: %w", gameID, err)
	}
	if len(picks) == 0 {
		s.logger.Debugf("No picks to grade for game %d", gameID)
		return nil, nil
	}

	poolTypes := make(map[int]models.PoolType) // entry id -> pool type
	now := time.Now()

	grades := make([]*models.Grade, 0, len(picks))
	for _, pick := range picks {
		poolType, err := s.poolTypeForEntry(ctx, pick.EntryID, poolTypes)
		if err != nil {
			return nil, err
		}

		grade, err := s.computeGrade(pick, game, result, poolType, now)
		if err != nil {
			return nil, err
		}

		if err := s.grades.Upsert(ctx, grade); err != nil {
			return nil, fmt.Errorf("failed to save grade for pick %d: %w", pick.ID, err)
		}
		grades = append(grades, grade)
	}

	s.logger.Infof("Graded %d picks for game %d (%s)", len(grades), game.ID, game.Matchup())
	return grades, nil
}

// computeGrade builds the full replacement grade for one pick
func (s *GradingService) computeGrade(pick *models.Pick, game *models.Game, result *models.Result, poolType models.PoolType, now time.Time) (*models.Grade, error) {
	grade := &models.Grade{
		PickID:    pick.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if result.IsCancelled() {
		grade.Outcome = models.OutcomeVoid
		note := result.Note
		if note == "" {
			note = "game cancelled"
		}
		grade.Details.VoidNote = note
		return grade, nil
	}

	if !result.HasFinalScore() {
		grade.Outcome = models.OutcomeVoid
		grade.Details.VoidNote = "no final score recorded"
		return grade, nil
	}

	var picked, opponent int
	switch pick.TeamID {
	case game.HomeTeamID:
		picked, opponent = *result.HomeScore, *result.AwayScore
	case game.AwayTeamID:
		picked, opponent = *result.AwayScore, *result.HomeScore
	default:
		return nil, fmt.Errorf("pick %d picked team %d but game %d is %d at %d: %w",
			pick.ID, pick.TeamID, game.ID, game.AwayTeamID, game.HomeTeamID, ErrPickTeamMismatch)
	}

	score, ok := scoringRules[poolType]
	if !ok {
		return nil, fmt.Errorf("pool type %q: %w", poolType, ErrInvalidPoolType)
	}

	grade.Outcome, grade.Points = score(picked, opponent)

	margin := picked - opponent
	if margin < 0 {
		margin = -margin
	}
	confidence := pick.Confidence
	grade.Details.Margin = &margin
	grade.Details.PickedScore = &picked
	grade.Details.OpponentScore = &opponent
	grade.Details.ConfidenceUsed = &confidence

	return grade, nil
}

// poolTypeForEntry resolves the scoring rule for a pick's entry, cached per
// invocation since most picks on a game share a handful of pools
func (s *GradingService) poolTypeForEntry(ctx context.Context, entryID int, cache map[int]models.PoolType) (models.PoolType, error) {
	if poolType, ok := cache[entryID]; ok {
		return poolType, nil
	}

	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return "", fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}
	if entry == nil {
		return "", fmt.Errorf("entry %d: %w", entryID, ErrEntryNotFound)
	}

	pool, err := s.pools.FindByID(ctx, entry.PoolID)
	if err != nil {
		return "", fmt.Errorf("failed to load pool %d: %w", entry.PoolID, err)
	}
	if pool == nil {
		return "", fmt.Errorf("pool %d: %w", entry.PoolID, ErrPoolNotFound)
	}

	cache[entryID] = pool.Type
	return pool.Type, nil
}
