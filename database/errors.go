package database

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store-level error categories. Repositories translate driver-native errors
// into these so the service layer never matches on driver error codes.
var (
	// ErrNotFound is returned when a document required by an update or
	// delete does not exist
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned when a write violates a unique constraint
	ErrConflict = errors.New("conflicting document already exists")
)

// TranslateError maps driver errors onto the store-level categories.
// Unrecognized errors pass through unchanged.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrConflict
	default:
		return err
	}
}
