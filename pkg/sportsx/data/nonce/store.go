package nonce

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNonceAlreadyUsed is returned when attempting to consume a nonce
	// that was already recorded.
	ErrNonceAlreadyUsed = errors.New("nonce already used")

	// ErrNonceNotFound is returned when no record exists for a nonce.
	ErrNonceNotFound = errors.New("nonce not found")
)

type Store interface {
	// Put records a nonce as consumed.
	//
	// Returns ErrNonceAlreadyUsed if a record for the nonce already exists.
	Put(ctx context.Context, record *Record) error

	// Get finds the consumption record for a nonce.
	//
	// Returns ErrNonceNotFound if no record exists.
	Get(ctx context.Context, nonce uint64) (*Record, error)

	// Count returns the total count of consumed nonces.
	Count(ctx context.Context) (uint64, error)

	// DeleteBefore prunes records consumed before the provided timestamp,
	// returning the number of records removed. Only nonces whose backing
	// authorizations are long expired should ever be pruned.
	DeleteBefore(ctx context.Context, t time.Time) (uint64, error)
}
