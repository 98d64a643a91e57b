package models

import "time"

// ResultStatus is the terminal state a recorded result can carry
type ResultStatus string

const (
	ResultStatusFinal     ResultStatus = "final"
	ResultStatusCancelled ResultStatus = "cancelled"
)

// Result is the recorded outcome of a game. Scores are pointers so a result
// row can exist (e.g. a cancellation) without inventing a 0-0 score.
type Result struct {
	GameID    int          `json:"game_id" bson:"game_id"`
	HomeScore *int         `json:"home_score,omitempty" bson:"home_score,omitempty"`
	AwayScore *int         `json:"away_score,omitempty" bson:"away_score,omitempty"`
	Status    ResultStatus `json:"status" bson:"status"`
	Note      string       `json:"note,omitempty" bson:"note,omitempty"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// IsCancelled reports whether the game was cancelled rather than played
func (r *Result) IsCancelled() bool {
	return r.Status == ResultStatusCancelled
}

// HasFinalScore reports whether both scores are recorded
func (r *Result) HasFinalScore() bool {
	return r.HomeScore != nil && r.AwayScore != nil
}
