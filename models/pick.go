package models

import (
	"fmt"
	"time"
)

// Pick is a single entry's selection of one side of one game.
// Season and week are denormalized from the game at creation time so
// standings and override reporting never need a join back to games.
type Pick struct {
	ID         int       `json:"id" bson:"id"`
	EntryID    int       `json:"entry_id" bson:"entry_id"`
	GameID     int       `json:"game_id" bson:"game_id"`
	TeamID     int       `json:"team_id" bson:"team_id"`
	Season     int       `json:"season" bson:"season"`
	Week       int       `json:"week" bson:"week"`
	Confidence int       `json:"confidence" bson:"confidence"` // 0-100, only margin-style rules ever read it
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate checks the pick against the game it references.
// A pick on a team that is neither side of the game is a hard validation
// failure, never silently defaulted.
func (p *Pick) Validate(game *Game) error {
	if p.Confidence < 0 || p.Confidence > 100 {
		return fmt.Errorf("confidence: value %d is outside [0,100]", p.Confidence)
	}
	if game != nil && !game.HasTeam(p.TeamID) {
		return fmt.Errorf("team_id: team %d is neither side of game %d", p.TeamID, game.ID)
	}
	return nil
}
