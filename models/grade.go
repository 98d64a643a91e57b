package models

import "time"

// Outcome is the closed set of results a graded pick can have
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
	OutcomeVoid Outcome = "void"
)

// Valid returns true for one of the four known outcomes
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomePush, OutcomeVoid:
		return true
	}
	return false
}

// GradeDetails carries grading provenance. The automatic pass fills the
// auto fields; a manual override fills the override fields and leaves the
// auto fields untouched, so earlier provenance is never discarded.
type GradeDetails struct {
	// Set by the automatic grading pass
	Margin         *int   `json:"margin,omitempty" bson:"margin,omitempty"`
	PickedScore    *int   `json:"picked_score,omitempty" bson:"picked_score,omitempty"`
	OpponentScore  *int   `json:"opponent_score,omitempty" bson:"opponent_score,omitempty"`
	ConfidenceUsed *int   `json:"confidence_used,omitempty" bson:"confidence_used,omitempty"`
	VoidNote       string `json:"void_note,omitempty" bson:"void_note,omitempty"`

	// Set by a manual override
	IsManualOverride bool       `json:"is_manual_override,omitempty" bson:"is_manual_override,omitempty"`
	OverrideReason   string     `json:"override_reason,omitempty" bson:"override_reason,omitempty"`
	OriginalOutcome  Outcome    `json:"original_outcome,omitempty" bson:"original_outcome,omitempty"`
	OriginalPoints   *float64   `json:"original_points,omitempty" bson:"original_points,omitempty"`
	OverrideActorID  *int       `json:"override_actor_id,omitempty" bson:"override_actor_id,omitempty"`
	OverriddenAt     *time.Time `json:"overridden_at,omitempty" bson:"overridden_at,omitempty"`
}

// Grade is the single graded outcome for a pick, at most one per pick.
// It is replaced wholesale on every grading pass, which is what makes
// re-grading after a data correction idempotent.
type Grade struct {
	PickID    int          `json:"pick_id" bson:"pick_id"`
	Outcome   Outcome      `json:"outcome" bson:"outcome"`
	Points    float64      `json:"points" bson:"points"`
	Details   GradeDetails `json:"details" bson:"details"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// ApplyOverride replaces the grade's outcome and points with the requested
// values and records override provenance, preserving whatever the automatic
// pass already wrote into the details.
func (g *Grade) ApplyOverride(outcome Outcome, points float64, reason string, actorID *int, at time.Time) {
	originalPoints := g.Points
	g.Details.IsManualOverride = true
	g.Details.OverrideReason = reason
	g.Details.OriginalOutcome = g.Outcome
	g.Details.OriginalPoints = &originalPoints
	g.Details.OverrideActorID = actorID
	g.Details.OverriddenAt = &at

	g.Outcome = outcome
	g.Points = points
	g.UpdatedAt = at
}
