package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pool-engine-go/models"
)

func seedGradedPick(f *fixture, pickID int) {
	f.addPool(1, models.PoolTypeATS, 2025)
	f.addEntry(10, 1, 2025, "Alice")
	f.addGame(100, 2025, 3, 5, 6, "KC", "DET")
	f.addPick(pickID, 10, 100, 5, 2025, 3)
	f.setGrade(pickID, models.OutcomeWin, 1.0)
}

func TestOverrideGradeReasonValidation(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		wantOK bool
	}{
		{"empty", "", false},
		{"single char", "x", false},
		{"nine chars", "123456789", false},
		{"whitespace padding does not count", "   short    ", false},
		{"ten chars", "1234567890", true},
		{"normal sentence", "official stat correction", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			seedGradedPick(f, 1000)

			_, err := f.overrideService().OverrideGrade(context.Background(), 1000, models.OutcomeLoss, 0, tt.reason, nil)
			if tt.wantOK && err != nil {
				t.Fatalf("OverrideGrade: %v", err)
			}
			if !tt.wantOK && !errors.Is(err, ErrReasonTooShort) {
				t.Fatalf("err = %v, want ErrReasonTooShort", err)
			}
			if !tt.wantOK && len(f.overrides.rows) != 0 {
				t.Errorf("rejected override still wrote %d ledger rows", len(f.overrides.rows))
			}
		})
	}
}

func TestOverrideGradeInvalidOutcome(t *testing.T) {
	f := newFixture()
	seedGradedPick(f, 1000)

	_, err := f.overrideService().OverrideGrade(context.Background(), 1000, models.Outcome("winner"), 0, "a valid long reason", nil)
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("err = %v, want ErrInvalidOutcome", err)
	}
}

func TestOverrideGrade(t *testing.T) {
	f := newFixture()
	seedGradedPick(f, 1000)
	actor := 7

	grade, err := f.overrideService().OverrideGrade(context.Background(), 1000, models.OutcomeVoid, 0, "game result under review", &actor)
	if err != nil {
		t.Fatalf("OverrideGrade: %v", err)
	}

	if grade.Outcome != models.OutcomeVoid || grade.Points != 0 {
		t.Errorf("grade = %s/%v, want void/0", grade.Outcome, grade.Points)
	}
	if !grade.Details.IsManualOverride {
		t.Error("IsManualOverride not set")
	}
	if grade.Details.OriginalOutcome != models.OutcomeWin {
		t.Errorf("original outcome = %s, want win", grade.Details.OriginalOutcome)
	}
	if grade.Details.OriginalPoints == nil || *grade.Details.OriginalPoints != 1.0 {
		t.Errorf("original points = %v, want 1", grade.Details.OriginalPoints)
	}
	if grade.Details.OverrideActorID == nil || *grade.Details.OverrideActorID != 7 {
		t.Errorf("actor = %v, want 7", grade.Details.OverrideActorID)
	}
	// Automatic provenance survives the override
	if grade.Details.Margin == nil {
		t.Error("auto margin detail was dropped by the override")
	}

	stored := f.grades.grades[1000]
	if stored.Outcome != models.OutcomeVoid {
		t.Errorf("stored grade outcome = %s, want void", stored.Outcome)
	}

	if len(f.overrides.rows) != 1 {
		t.Fatalf("got %d ledger rows, want 1", len(f.overrides.rows))
	}
	row := f.overrides.rows[0]
	if row.PickID != 1000 || row.GameID != 100 || row.Season != 2025 || row.Week != 3 {
		t.Errorf("ledger row keys = pick %d game %d season %d week %d", row.PickID, row.GameID, row.Season, row.Week)
	}
	if row.OriginalOutcome != models.OutcomeWin || row.OriginalPoints != 1.0 {
		t.Errorf("ledger original = %s/%v, want win/1", row.OriginalOutcome, row.OriginalPoints)
	}
	if row.NewOutcome != models.OutcomeVoid || row.NewPoints != 0 {
		t.Errorf("ledger new = %s/%v, want void/0", row.NewOutcome, row.NewPoints)
	}
	if row.ActorID == nil || *row.ActorID != 7 {
		t.Errorf("ledger actor = %v, want 7", row.ActorID)
	}
}

func TestOverrideGradeNotFound(t *testing.T) {
	t.Run("unknown pick", func(t *testing.T) {
		f := newFixture()
		_, err := f.overrideService().OverrideGrade(context.Background(), 999, models.OutcomeVoid, 0, "a valid long reason", nil)
		if !errors.Is(err, ErrPickNotFound) {
			t.Errorf("err = %v, want ErrPickNotFound", err)
		}
	})

	t.Run("ungraded pick", func(t *testing.T) {
		f := newFixture()
		f.addPool(1, models.PoolTypeATS, 2025)
		f.addEntry(10, 1, 2025, "Alice")
		f.addGame(100, 2025, 3, 5, 6, "KC", "DET")
		f.addPick(1000, 10, 100, 5, 2025, 3)

		_, err := f.overrideService().OverrideGrade(context.Background(), 1000, models.OutcomeVoid, 0, "a valid long reason", nil)
		if !errors.Is(err, ErrGradeNotFound) {
			t.Errorf("err = %v, want ErrGradeNotFound", err)
		}
		if len(f.overrides.rows) != 0 {
			t.Errorf("failed override wrote %d ledger rows", len(f.overrides.rows))
		}
	})
}

func TestOverrideGradeSequenceChains(t *testing.T) {
	f := newFixture()
	seedGradedPick(f, 1000)
	svc := f.overrideService()
	ctx := context.Background()

	if _, err := svc.OverrideGrade(ctx, 1000, models.OutcomeLoss, 0, "first correction applied", nil); err != nil {
		t.Fatalf("first override: %v", err)
	}
	if _, err := svc.OverrideGrade(ctx, 1000, models.OutcomePush, 0.5, "second correction applied", nil); err != nil {
		t.Fatalf("second override: %v", err)
	}

	history, err := svc.GetOverrideHistory(ctx, 1000)
	if err != nil {
		t.Fatalf("GetOverrideHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d history rows, want 2", len(history))
	}
	if history[0].OriginalOutcome != models.OutcomeWin || history[0].NewOutcome != models.OutcomeLoss {
		t.Errorf("first row = %s -> %s, want win -> loss", history[0].OriginalOutcome, history[0].NewOutcome)
	}
	if history[1].OriginalOutcome != models.OutcomeLoss || history[1].NewOutcome != models.OutcomePush {
		t.Errorf("second row = %s -> %s, want loss -> push", history[1].OriginalOutcome, history[1].NewOutcome)
	}

	grade := f.grades.grades[1000]
	if grade.Outcome != models.OutcomePush || grade.Points != 0.5 {
		t.Errorf("final grade = %s/%v, want push/0.5", grade.Outcome, grade.Points)
	}
	if grade.Details.OriginalOutcome != models.OutcomeLoss {
		t.Errorf("details original = %s, want the immediately prior loss", grade.Details.OriginalOutcome)
	}
}

func TestBulkOverrideGamePicks(t *testing.T) {
	f := newFixture()
	f.addPool(1, models.PoolTypeATS, 2025)
	f.addEntry(10, 1, 2025, "Alice")
	f.addEntry(11, 1, 2025, "Bob")
	f.addEntry(12, 1, 2025, "Cara")
	f.addGame(100, 2025, 3, 5, 6, "KC", "DET")
	f.addPick(1000, 10, 100, 5, 2025, 3)
	f.addPick(1001, 11, 100, 6, 2025, 3)
	f.addPick(1002, 12, 100, 5, 2025, 3) // never graded
	f.setGrade(1000, models.OutcomeWin, 1.0)
	f.setGrade(1001, models.OutcomeLoss, 0)

	grades, err := f.overrideService().BulkOverrideGamePicks(context.Background(), 100, models.OutcomeVoid, 0, "result vacated by league", nil)
	if err != nil {
		t.Fatalf("BulkOverrideGamePicks: %v", err)
	}
	if len(grades) != 2 {
		t.Fatalf("got %d updated grades, want 2 (ungraded pick skipped)", len(grades))
	}
	if len(f.overrides.rows) != 2 {
		t.Fatalf("got %d ledger rows, want 2", len(f.overrides.rows))
	}
	if _, graded := f.grades.grades[1002]; graded {
		t.Error("bulk override implicitly graded an ungraded pick")
	}
	for _, pickID := range []int{1000, 1001} {
		if got := f.grades.grades[pickID].Outcome; got != models.OutcomeVoid {
			t.Errorf("pick %d outcome = %s, want void", pickID, got)
		}
	}
	// Each ledger row snapshots that pick's own prior state
	if f.overrides.rows[0].OriginalOutcome != models.OutcomeWin {
		t.Errorf("row 0 original = %s, want win", f.overrides.rows[0].OriginalOutcome)
	}
	if f.overrides.rows[1].OriginalOutcome != models.OutcomeLoss {
		t.Errorf("row 1 original = %s, want loss", f.overrides.rows[1].OriginalOutcome)
	}
}

func TestBulkOverrideGamePicksAtomic(t *testing.T) {
	f := newFixture()
	f.addPool(1, models.PoolTypeATS, 2025)
	f.addEntry(10, 1, 2025, "Alice")
	f.addEntry(11, 1, 2025, "Bob")
	f.addGame(100, 2025, 3, 5, 6, "KC", "DET")
	f.addPick(1000, 10, 100, 5, 2025, 3)
	f.addPick(1001, 11, 100, 6, 2025, 3)
	f.setGrade(1000, models.OutcomeWin, 1.0)
	f.setGrade(1001, models.OutcomeLoss, 0)
	f.grades.failAt = 2 // second grade write fails mid-transaction

	_, err := f.overrideService().BulkOverrideGamePicks(context.Background(), 100, models.OutcomeVoid, 0, "result vacated by league", nil)
	if err == nil {
		t.Fatal("expected the bulk override to fail")
	}
	if !strings.Contains(err.Error(), "simulated write failure") {
		t.Errorf("err = %v, want the injected write failure", err)
	}

	if len(f.overrides.rows) != 0 {
		t.Errorf("rolled-back bulk override left %d ledger rows", len(f.overrides.rows))
	}
	if got := f.grades.grades[1000].Outcome; got != models.OutcomeWin {
		t.Errorf("pick 1000 outcome = %s, want untouched win", got)
	}
	if got := f.grades.grades[1001].Outcome; got != models.OutcomeLoss {
		t.Errorf("pick 1001 outcome = %s, want untouched loss", got)
	}
}

func TestBulkOverrideUnknownGame(t *testing.T) {
	f := newFixture()
	_, err := f.overrideService().BulkOverrideGamePicks(context.Background(), 999, models.OutcomeVoid, 0, "a valid long reason", nil)
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGetOverrideHistoryEmpty(t *testing.T) {
	f := newFixture()
	history, err := f.overrideService().GetOverrideHistory(context.Background(), 1000)
	if err != nil {
		t.Fatalf("GetOverrideHistory: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("got %d rows, want 0", len(history))
	}
}

func TestGetOverrideStats(t *testing.T) {
	f := newFixture()
	f.addPool(1, models.PoolTypeATS, 2025)
	f.addEntry(10, 1, 2025, "Alice")
	f.addEntry(11, 1, 2025, "Bob")
	f.addGame(100, 2025, 3, 5, 6, "KC", "DET")
	f.addGame(101, 2025, 4, 7, 8, "BUF", "MIA")
	f.addPick(1000, 10, 100, 5, 2025, 3)
	f.addPick(1001, 11, 100, 6, 2025, 3)
	f.addPick(1002, 10, 101, 7, 2025, 4)
	f.setGrade(1000, models.OutcomeWin, 1.0)
	f.setGrade(1001, models.OutcomeLoss, 0)
	f.setGrade(1002, models.OutcomeWin, 1.0)

	svc := f.overrideService()
	ctx := context.Background()
	if _, err := svc.OverrideGrade(ctx, 1000, models.OutcomeVoid, 0, "week three correction", nil); err != nil {
		t.Fatalf("override 1000: %v", err)
	}
	if _, err := svc.OverrideGrade(ctx, 1001, models.OutcomeVoid, 0, "week three correction", nil); err != nil {
		t.Fatalf("override 1001: %v", err)
	}
	if _, err := svc.OverrideGrade(ctx, 1002, models.OutcomeLoss, 0, "week four correction", nil); err != nil {
		t.Fatalf("override 1002: %v", err)
	}

	stats, err := svc.GetOverrideStats(ctx, 2025, nil)
	if err != nil {
		t.Fatalf("GetOverrideStats: %v", err)
	}
	if stats.TotalOverrides != 3 {
		t.Errorf("total = %d, want 3", stats.TotalOverrides)
	}
	if stats.GamesWithOverrides != 2 {
		t.Errorf("distinct games = %d, want 2", stats.GamesWithOverrides)
	}
	if stats.OverridesByOutcome[models.OutcomeVoid] != 2 || stats.OverridesByOutcome[models.OutcomeLoss] != 1 {
		t.Errorf("by outcome = %v", stats.OverridesByOutcome)
	}

	weekStats, err := svc.GetOverrideStats(ctx, 2025, intPtr(3))
	if err != nil {
		t.Fatalf("GetOverrideStats week 3: %v", err)
	}
	if weekStats.TotalOverrides != 2 || weekStats.GamesWithOverrides != 1 {
		t.Errorf("week 3 stats = %d overrides across %d games, want 2 across 1",
			weekStats.TotalOverrides, weekStats.GamesWithOverrides)
	}

	otherSeason, err := svc.GetOverrideStats(ctx, 2024, nil)
	if err != nil {
		t.Fatalf("GetOverrideStats 2024: %v", err)
	}
	if otherSeason.TotalOverrides != 0 {
		t.Errorf("2024 total = %d, want 0", otherSeason.TotalOverrides)
	}
}
