package services

import (
	"context"
	"fmt"
	"sort"

	"pool-engine-go/logging"
	"pool-engine-go/models"
)

// StandingsService folds current grade rows into ranked per-entry summaries.
// Standings are derived on every read; nothing here is cached or persisted.
type StandingsService struct {
	pools   PoolStore
	entries EntryStore
	picks   PickStore
	grades  GradeStore
	games   GameStore
	tx      TxRunner
	logger  *logging.Logger
}

// NewStandingsService creates a new standings service
func NewStandingsService(pools PoolStore, entries EntryStore, picks PickStore, grades GradeStore, games GameStore, tx TxRunner) *StandingsService {
	return &StandingsService{
		pools:   pools,
		entries: entries,
		picks:   picks,
		grades:  grades,
		games:   games,
		tx:      tx,
		logger:  logging.WithPrefix("StandingsService"),
	}
}

// GetPoolStandings computes ranked standings over every entry in the pool for
// a season
func (s *StandingsService) GetPoolStandings(ctx context.Context, poolID, season int) ([]*models.Standing, error) {
	return s.poolStandings(ctx, poolID, season, nil)
}

// GetWeeklyStandings is GetPoolStandings with picks filtered to one week
func (s *StandingsService) GetWeeklyStandings(ctx context.Context, poolID, season, week int) ([]*models.Standing, error) {
	return s.poolStandings(ctx, poolID, season, &week)
}

func (s *StandingsService) poolStandings(ctx context.Context, poolID, season int, week *int) ([]*models.Standing, error) {
	pool, err := s.pools.FindByID(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool %d: %w", poolID, err)
	}
	if pool == nil {
		return nil, fmt.Errorf("pool %d: %w", poolID, ErrPoolNotFound)
	}

	entries, err := s.entries.FindByPoolSeason(ctx, poolID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for pool %d: %w", poolID, err)
	}

	standings := make([]*models.Standing, 0, len(entries))

	// One transaction per computation so counters are never folded from a
	// torn mix of pre- and post-override grade rows
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		standings = standings[:0]
		for _, entry := range entries {
			standing, err := s.entryStanding(txCtx, entry, pool.Type, season, week)
			if err != nil {
				return err
			}
			standings = append(standings, standing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rankStandings(standings)
	return standings, nil
}

// entryStanding folds one entry's graded picks into a standing.
// Entries with no picks produce a zeroed standing, not an error.
func (s *StandingsService) entryStanding(ctx context.Context, entry *models.Entry, poolType models.PoolType, season int, week *int) (*models.Standing, error) {
	picks, err := s.picks.FindByEntrySeason(ctx, entry.ID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for entry %d: %w", entry.ID, err)
	}

	standing := &models.Standing{
		EntryID:   entry.ID,
		EntryName: entry.Name,
	}

	filtered := picks[:0:0]
	for _, pick := range picks {
		if week == nil || pick.Week == *week {
			filtered = append(filtered, pick)
		}
	}
	standing.TotalPicks = len(filtered)
	if len(filtered) == 0 {
		return standing, nil
	}

	pickIDs := make([]int, len(filtered))
	for i, pick := range filtered {
		pickIDs[i] = pick.ID
	}
	grades, err := s.grades.FindByPicks(ctx, pickIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades for entry %d: %w", entry.ID, err)
	}
	gradeByPick := make(map[int]*models.Grade, len(grades))
	for _, grade := range grades {
		gradeByPick[grade.PickID] = grade
	}

	for _, pick := range filtered {
		grade := gradeByPick[pick.ID]
		if grade == nil {
			continue // ungraded picks don't count yet
		}
		standing.AddOutcome(grade.Outcome, grade.Points)

		// Survivor: the earliest losing week eliminates, kept minimal
		if poolType == models.PoolTypeSurvivor && grade.Outcome == models.OutcomeLoss {
			if standing.EliminatedWeek == nil || pick.Week < *standing.EliminatedWeek {
				eliminatedWeek := pick.Week
				standing.IsEliminated = true
				standing.EliminatedWeek = &eliminatedWeek
			}
		}
	}

	standing.RecalculateWinPct()
	return standing, nil
}

// rankStandings sorts by wins, then win percentage, then total points, with
// entry id as the deterministic final tiebreak, and assigns 1-based ranks
func rankStandings(standings []*models.Standing) {
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.WinPct != b.WinPct {
			return a.WinPct > b.WinPct
		}
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		return a.EntryID < b.EntryID
	})
	for i, standing := range standings {
		standing.Rank = i + 1
	}
}

// GetEntryDetail returns one entry's standing (with its rank inside the
// pool), every graded pick, and per-week records sorted ascending by week
func (s *StandingsService) GetEntryDetail(ctx context.Context, entryID, season int) (*models.EntryDetail, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %d: %w", entryID, ErrEntryNotFound)
	}

	standings, err := s.poolStandings(ctx, entry.PoolID, season, nil)
	if err != nil {
		return nil, err
	}

	detail := &models.EntryDetail{Entry: *entry}
	for _, standing := range standings {
		if standing.EntryID == entryID {
			detail.Standing = *standing
			break
		}
	}

	games, err := s.games.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for season %d: %w", season, err)
	}
	gameByID := make(map[int]*models.Game, len(games))
	for _, game := range games {
		gameByID[game.ID] = game
	}

	picks, err := s.picks.FindByEntrySeason(ctx, entryID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for entry %d: %w", entryID, err)
	}
	pickIDs := make([]int, len(picks))
	for i, pick := range picks {
		pickIDs[i] = pick.ID
	}
	grades, err := s.grades.FindByPicks(ctx, pickIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades for entry %d: %w", entryID, err)
	}
	gradeByPick := make(map[int]*models.Grade, len(grades))
	for _, grade := range grades {
		gradeByPick[grade.PickID] = grade
	}

	weekRecords := make(map[int]*models.WeekRecord)
	for _, pick := range picks {
		grade := gradeByPick[pick.ID]
		if grade == nil {
			continue
		}

		matchup := ""
		if game := gameByID[pick.GameID]; game != nil {
			matchup = game.Matchup()
		}
		detail.Picks = append(detail.Picks, models.GradedPick{
			PickID:     pick.ID,
			GameID:     pick.GameID,
			Week:       pick.Week,
			Matchup:    matchup,
			TeamID:     pick.TeamID,
			Confidence: pick.Confidence,
			Outcome:    grade.Outcome,
			Points:     grade.Points,
			Overridden: grade.Details.IsManualOverride,
		})

		record := weekRecords[pick.Week]
		if record == nil {
			record = &models.WeekRecord{Week: pick.Week}
			weekRecords[pick.Week] = record
		}
		switch grade.Outcome {
		case models.OutcomeWin:
			record.Wins++
		case models.OutcomeLoss:
			record.Losses++
		case models.OutcomePush:
			record.Pushes++
		case models.OutcomeVoid:
			record.Voids++
		}
		record.Points += grade.Points
	}

	detail.WeeklyResults = make([]models.WeekRecord, 0, len(weekRecords))
	for _, record := range weekRecords {
		detail.WeeklyResults = append(detail.WeeklyResults, *record)
	}
	sort.Slice(detail.WeeklyResults, func(i, j int) bool {
		return detail.WeeklyResults[i].Week < detail.WeeklyResults[j].Week
	})

	return detail, nil
}
