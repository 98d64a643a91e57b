package models

import (
	"fmt"
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
	GameStatusCancelled  GameStatus = "cancelled"
)

// Game represents a scheduled contest between two teams.
// Owned by the scheduling subsystem; the grading engine only reads it.
type Game struct {
	ID         int        `json:"id" bson:"id"`
	Season     int        `json:"season" bson:"season"`
	Week       int        `json:"week" bson:"week"`
	HomeTeamID int        `json:"home_team_id" bson:"home_team_id"`
	AwayTeamID int        `json:"away_team_id" bson:"away_team_id"`
	HomeTeam   string     `json:"home_team" bson:"home_team"` // abbreviation, e.g. "KC"
	AwayTeam   string     `json:"away_team" bson:"away_team"` // abbreviation, e.g. "DET"
	Kickoff    time.Time  `json:"kickoff" bson:"kickoff"`
	Status     GameStatus `json:"status" bson:"status"`
}

// IsFinal returns true if the game has finished
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// IsCancelled returns true if the game was cancelled
func (g *Game) IsCancelled() bool {
	return g.Status == GameStatusCancelled
}

// HasTeam returns true if teamID is one of the game's two sides
func (g *Game) HasTeam(teamID int) bool {
	return teamID == g.HomeTeamID || teamID == g.AwayTeamID
}

// Matchup returns a display string like "DET @ KC"
func (g *Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}
