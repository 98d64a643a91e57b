package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GradeOverride is one append-only audit record for a manual grade correction.
// Rows are never updated or deleted; multiple overrides on the same pick form
// a strictly ordered sequence and are the only history once the live grade
// has been overwritten more than once.
//
// Game, season and week are denormalized from the pick at write time so
// override reporting is a single-collection aggregation.
type GradeOverride struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PickID          int                `json:"pick_id" bson:"pick_id"`
	GameID          int                `json:"game_id" bson:"game_id"`
	Season          int                `json:"season" bson:"season"`
	Week            int                `json:"week" bson:"week"`
	OriginalOutcome Outcome            `json:"original_outcome" bson:"original_outcome"`
	OriginalPoints  float64            `json:"original_points" bson:"original_points"`
	NewOutcome      Outcome            `json:"new_outcome" bson:"new_outcome"`
	NewPoints       float64            `json:"new_points" bson:"new_points"`
	Reason          string             `json:"reason" bson:"reason"`
	ActorID         *int               `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// OverrideStats summarizes override activity for reporting
type OverrideStats struct {
	TotalOverrides     int             `json:"total_overrides"`
	GamesWithOverrides int             `json:"games_with_overrides"`
	OverridesByOutcome map[Outcome]int `json:"overrides_by_outcome"`
}
