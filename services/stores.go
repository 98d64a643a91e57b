package services

import (
	"context"

	"pool-engine-go/models"
)

// Store interfaces consumed by the engine services. The Mongo repositories in
// the database package satisfy them; tests substitute in-memory fakes.
// Finders return nil (not an error) when the row is absent; the services turn
// that into the right not-found error for their operation.

// GameStore reads games owned by the scheduling subsystem
type GameStore interface {
	FindByID(ctx context.Context, id int) (*models.Game, error)
	FindBySeason(ctx context.Context, season int) ([]*models.Game, error)
}

// ResultStore reads finalized or cancelled scores
type ResultStore interface {
	FindByGame(ctx context.Context, gameID int) (*models.Result, error)
}

// PoolStore reads pools
type PoolStore interface {
	FindByID(ctx context.Context, id int) (*models.Pool, error)
}

// EntryStore reads entries
type EntryStore interface {
	FindByID(ctx context.Context, id int) (*models.Entry, error)
	FindByPoolSeason(ctx context.Context, poolID, season int) ([]*models.Entry, error)
}

// PickStore reads picks
type PickStore interface {
	FindByID(ctx context.Context, id int) (*models.Pick, error)
	FindByGame(ctx context.Context, gameID int) ([]*models.Pick, error)
	FindByEntrySeason(ctx context.Context, entryID, season int) ([]*models.Pick, error)
}

// GradeStore reads and replaces grades, one per pick
type GradeStore interface {
	FindByPick(ctx context.Context, pickID int) (*models.Grade, error)
	FindByPicks(ctx context.Context, pickIDs []int) ([]*models.Grade, error)
	Upsert(ctx context.Context, grade *models.Grade) error
}

// OverrideStore appends to and reads the override ledger. The interface has
// no update or delete on purpose; ledger rows are immutable.
type OverrideStore interface {
	Insert(ctx context.Context, override *models.GradeOverride) error
	FindByPick(ctx context.Context, pickID int) ([]*models.GradeOverride, error)
	Stats(ctx context.Context, season int, week *int) (*models.OverrideStats, error)
}

// TxRunner runs fn atomically: all writes inside commit together or not at
// all, and reads inside see one consistent snapshot
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
