package database

import (
	"context"
	"time"
)

// Common timeout durations for database operations
const (
	// ShortTimeout for single-document reads and writes
	ShortTimeout = 5 * time.Second

	// MediumTimeout for multi-document queries
	MediumTimeout = 10 * time.Second

	// LongTimeout for bulk writes and aggregations
	LongTimeout = 30 * time.Second
)

// ContextWithTimeout creates a context with timeout and cancel function
func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
