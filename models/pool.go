package models

import "time"

// PoolType selects the scoring rule applied to every pick in the pool
type PoolType string

const (
	PoolTypeATS        PoolType = "ats"
	PoolTypeSU         PoolType = "su"
	PoolTypePointsPlus PoolType = "points_plus"
	PoolTypeSurvivor   PoolType = "survivor"
)

// Valid returns true for one of the four known pool types
func (t PoolType) Valid() bool {
	switch t {
	case PoolTypeATS, PoolTypeSU, PoolTypePointsPlus, PoolTypeSurvivor:
		return true
	}
	return false
}

// Pool is a season-long competition with a single scoring rule
type Pool struct {
	ID        int       `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Type      PoolType  `json:"type" bson:"type"`
	Season    int       `json:"season" bson:"season"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Entry is one participant's membership in a pool for a season.
// Picks, grades, and standings all hang off the entry, not the user.
type Entry struct {
	ID        int       `json:"id" bson:"id"`
	PoolID    int       `json:"pool_id" bson:"pool_id"`
	Season    int       `json:"season" bson:"season"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
