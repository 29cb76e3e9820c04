package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested run doesn't exist
	ErrNotFound = errors.New("not found")
)

// Run is one recorded split operation.
type Run struct {
	ID          string
	Source      string
	Kind        string
	Strategy    string
	Budget      int
	Parts       int
	TotalTokens int
	Duration    time.Duration
	CreatedAt   time.Time
}

// Store persists and queries the run manifest.
type Store interface {
	// RecordRun persists a completed run. A missing ID is assigned.
	RecordRun(ctx context.Context, run *Run) error

	// GetRun returns the run with the given ID, or ErrNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Close releases the store's resources.
	Close() error
}
