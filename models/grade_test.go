package models

import (
	"testing"
	"time"
)

func TestOutcomeValid(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeWin, OutcomeLoss, OutcomePush, OutcomeVoid} {
		if !outcome.Valid() {
			t.Errorf("%q reported invalid", outcome)
		}
	}
	for _, outcome := range []Outcome{"", "winner", "WIN"} {
		if outcome.Valid() {
			t.Errorf("%q reported valid", outcome)
		}
	}
}

func TestGradeApplyOverride(t *testing.T) {
	margin := 3
	grade := Grade{
		PickID:  1000,
		Outcome: OutcomeWin,
		Points:  1.0,
		Details: GradeDetails{Margin: &margin},
	}

	actor := 7
	at := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	grade.ApplyOverride(OutcomeVoid, 0, "result vacated", &actor, at)

	if grade.Outcome != OutcomeVoid || grade.Points != 0 {
		t.Errorf("grade = %s/%v, want void/0", grade.Outcome, grade.Points)
	}
	if !grade.Details.IsManualOverride || grade.Details.OverrideReason != "result vacated" {
		t.Errorf("override provenance = %+v", grade.Details)
	}
	if grade.Details.OriginalOutcome != OutcomeWin || *grade.Details.OriginalPoints != 1.0 {
		t.Errorf("original snapshot = %s/%v, want win/1", grade.Details.OriginalOutcome, grade.Details.OriginalPoints)
	}
	if grade.Details.Margin == nil || *grade.Details.Margin != 3 {
		t.Error("automatic margin detail was dropped")
	}
	if !grade.UpdatedAt.Equal(at) {
		t.Errorf("updated at = %v, want %v", grade.UpdatedAt, at)
	}

	// A second override snapshots the then-current state, not the first
	grade.ApplyOverride(OutcomeLoss, 0, "appeal denied", &actor, at.Add(time.Hour))
	if grade.Details.OriginalOutcome != OutcomeVoid {
		t.Errorf("second snapshot = %s, want void", grade.Details.OriginalOutcome)
	}
}

func TestPickValidate(t *testing.T) {
	game := &Game{ID: 100, HomeTeamID: 5, AwayTeamID: 6}

	tests := []struct {
		name    string
		pick    Pick
		wantErr bool
	}{
		{"home side", Pick{TeamID: 5, Confidence: 50}, false},
		{"away side", Pick{TeamID: 6}, false},
		{"team not in game", Pick{TeamID: 999}, true},
		{"confidence too high", Pick{TeamID: 5, Confidence: 101}, true},
		{"confidence negative", Pick{TeamID: 5, Confidence: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pick.Validate(game)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
