package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"pool-engine-go/models"
)

// In-memory stores backing the engine tests. Grade and override state is
// stored by value and returned as copies so a failed transaction can restore
// the pre-call state, mirroring a rollback.

type fakeGameStore struct {
	games map[int]*models.Game
}

func (f *fakeGameStore) FindByID(ctx context.Context, id int) (*models.Game, error) {
	return f.games[id], nil
}

func (f *fakeGameStore) FindBySeason(ctx context.Context, season int) ([]*models.Game, error) {
	var games []*models.Game
	for _, game := range f.games {
		if game.Season == season {
			games = append(games, game)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

type fakeResultStore struct {
	results map[int]*models.Result
}

func (f *fakeResultStore) FindByGame(ctx context.Context, gameID int) (*models.Result, error) {
	return f.results[gameID], nil
}

type fakePoolStore struct {
	pools map[int]*models.Pool
}

func (f *fakePoolStore) FindByID(ctx context.Context, id int) (*models.Pool, error) {
	return f.pools[id], nil
}

type fakeEntryStore struct {
	entries map[int]*models.Entry
}

func (f *fakeEntryStore) FindByID(ctx context.Context, id int) (*models.Entry, error) {
	return f.entries[id], nil
}

func (f *fakeEntryStore) FindByPoolSeason(ctx context.Context, poolID, season int) ([]*models.Entry, error) {
	var entries []*models.Entry
	for _, entry := range f.entries {
		if entry.PoolID == poolID && entry.Season == season {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

type fakePickStore struct {
	picks map[int]*models.Pick
}

func (f *fakePickStore) FindByID(ctx context.Context, id int) (*models.Pick, error) {
	return f.picks[id], nil
}

func (f *fakePickStore) FindByGame(ctx context.Context, gameID int) ([]*models.Pick, error) {
	var picks []*models.Pick
	for _, pick := range f.picks {
		if pick.GameID == gameID {
			picks = append(picks, pick)
		}
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].ID < picks[j].ID })
	return picks, nil
}

func (f *fakePickStore) FindByEntrySeason(ctx context.Context, entryID, season int) ([]*models.Pick, error) {
	var picks []*models.Pick
	for _, pick := range f.picks {
		if pick.EntryID == entryID && pick.Season == season {
			picks = append(picks, pick)
		}
	}
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Week != picks[j].Week {
			return picks[i].Week < picks[j].Week
		}
		return picks[i].GameID < picks[j].GameID
	})
	return picks, nil
}

type fakeGradeStore struct {
	grades  map[int]models.Grade
	upserts int
	failAt  int // fail the nth upsert call (1-based), 0 disables
}

func (f *fakeGradeStore) FindByPick(ctx context.Context, pickID int) (*models.Grade, error) {
	grade, ok := f.grades[pickID]
	if !ok {
		return nil, nil
	}
	return &grade, nil
}

func (f *fakeGradeStore) FindByPicks(ctx context.Context, pickIDs []int) ([]*models.Grade, error) {
	var grades []*models.Grade
	for _, id := range pickIDs {
		if grade, ok := f.grades[id]; ok {
			g := grade
			grades = append(grades, &g)
		}
	}
	return grades, nil
}

func (f *fakeGradeStore) Upsert(ctx context.Context, grade *models.Grade) error {
	f.upserts++
	if f.failAt > 0 && f.upserts >= f.failAt {
		return errors.New("simulated write failure")
	}
	f.grades[grade.PickID] = *grade
	return nil
}

type fakeOverrideStore struct {
	rows []models.GradeOverride
}

func (f *fakeOverrideStore) Insert(ctx context.Context, override *models.GradeOverride) error {
	f.rows = append(f.rows, *override)
	return nil
}

func (f *fakeOverrideStore) FindByPick(ctx context.Context, pickID int) ([]*models.GradeOverride, error) {
	var overrides []*models.GradeOverride
	for i := range f.rows {
		if f.rows[i].PickID == pickID {
			row := f.rows[i]
			overrides = append(overrides, &row)
		}
	}
	return overrides, nil
}

func (f *fakeOverrideStore) Stats(ctx context.Context, season int, week *int) (*models.OverrideStats, error) {
	stats := &models.OverrideStats{OverridesByOutcome: make(map[models.Outcome]int)}
	games := make(map[int]struct{})
	for _, row := range f.rows {
		if row.Season != season {
			continue
		}
		if week != nil && row.Week != *week {
			continue
		}
		stats.TotalOverrides++
		stats.OverridesByOutcome[row.NewOutcome]++
		games[row.GameID] = struct{}{}
	}
	stats.GamesWithOverrides = len(games)
	return stats, nil
}

// fakeTxRunner snapshots grade and override state and restores it when the
// transaction body fails
type fakeTxRunner struct {
	grades    *fakeGradeStore
	overrides *fakeOverrideStore
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	gradesSnapshot := make(map[int]models.Grade, len(f.grades.grades))
	for pickID, grade := range f.grades.grades {
		gradesSnapshot[pickID] = grade
	}
	overridesSnapshot := append([]models.GradeOverride(nil), f.overrides.rows...)

	if err := fn(ctx); err != nil {
		f.grades.grades = gradesSnapshot
		f.overrides.rows = overridesSnapshot
		return err
	}
	return nil
}

// fixture bundles the fakes and seeds test data
type fixture struct {
	games     *fakeGameStore
	results   *fakeResultStore
	pools     *fakePoolStore
	entries   *fakeEntryStore
	picks     *fakePickStore
	grades    *fakeGradeStore
	overrides *fakeOverrideStore
	tx        *fakeTxRunner
}

func newFixture() *fixture {
	grades := &fakeGradeStore{grades: make(map[int]models.Grade)}
	overrides := &fakeOverrideStore{}
	return &fixture{
		games:     &fakeGameStore{games: make(map[int]*models.Game)},
		results:   &fakeResultStore{results: make(map[int]*models.Result)},
		pools:     &fakePoolStore{pools: make(map[int]*models.Pool)},
		entries:   &fakeEntryStore{entries: make(map[int]*models.Entry)},
		picks:     &fakePickStore{picks: make(map[int]*models.Pick)},
		grades:    grades,
		overrides: overrides,
		tx:        &fakeTxRunner{grades: grades, overrides: overrides},
	}
}

func (f *fixture) gradingService() *GradingService {
	return NewGradingService(f.games, f.results, f.picks, f.entries, f.pools, f.grades)
}

func (f *fixture) overrideService() *OverrideService {
	return NewOverrideService(f.games, f.picks, f.grades, f.overrides, f.tx)
}

func (f *fixture) standingsService() *StandingsService {
	return NewStandingsService(f.pools, f.entries, f.picks, f.grades, f.games, f.tx)
}

func (f *fixture) addPool(id int, poolType models.PoolType, season int) {
	f.pools.pools[id] = &models.Pool{ID: id, Name: "Pool", Type: poolType, Season: season}
}

func (f *fixture) addEntry(id, poolID, season int, name string) {
	f.entries.entries[id] = &models.Entry{ID: id, PoolID: poolID, Season: season, Name: name}
}

func (f *fixture) addGame(id, season, week, homeTeamID, awayTeamID int, home, away string) {
	f.games.games[id] = &models.Game{
		ID:         id,
		Season:     season,
		Week:       week,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		HomeTeam:   home,
		AwayTeam:   away,
		Kickoff:    time.Date(season, 9, 7, 13, 0, 0, 0, time.UTC),
		Status:     models.GameStatusFinal,
	}
}

func (f *fixture) addFinalResult(gameID, homeScore, awayScore int) {
	f.results.results[gameID] = &models.Result{
		GameID:    gameID,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		Status:    models.ResultStatusFinal,
	}
}

func (f *fixture) addCancelledResult(gameID int, note string) {
	f.results.results[gameID] = &models.Result{
		GameID: gameID,
		Status: models.ResultStatusCancelled,
		Note:   note,
	}
}

func (f *fixture) addPick(id, entryID, gameID, teamID, season, week int) {
	f.picks.picks[id] = &models.Pick{
		ID:      id,
		EntryID: entryID,
		GameID:  gameID,
		TeamID:  teamID,
		Season:  season,
		Week:    week,
	}
}

func (f *fixture) setGrade(pickID int, outcome models.Outcome, points float64) {
	margin := 0
	f.grades.grades[pickID] = models.Grade{
		PickID:  pickID,
		Outcome: outcome,
		Points:  points,
		Details: models.GradeDetails{Margin: &margin},
	}
}

func intPtr(v int) *int { return &v }
