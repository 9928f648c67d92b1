package platform

import (
	"context"
	"errors"
)

var (
	// ErrAlreadyInitialized is returned when the singleton config record
	// already exists.
	ErrAlreadyInitialized = errors.New("platform config already initialized")

	// ErrNotInitialized is returned when the singleton config record does
	// not exist yet.
	ErrNotInitialized = errors.New("platform config not initialized")
)

type Store interface {
	// Put creates the singleton config record.
	//
	// Returns ErrAlreadyInitialized if it already exists.
	Put(ctx context.Context, record *Record) error

	// Get returns the singleton config record.
	//
	// Returns ErrNotInitialized if it doesn't exist.
	Get(ctx context.Context) (*Record, error)

	// Update overwrites the mutable fields of the singleton config record.
	//
	// Returns ErrNotInitialized if it doesn't exist.
	Update(ctx context.Context, record *Record) error
}
