package balance

import (
	"context"
	"errors"
)

var (
	// ErrAccountExists is returned when creating a token account that
	// already exists.
	ErrAccountExists = errors.New("token account already exists")

	// ErrAccountNotFound is returned when no token account exists for an
	// address.
	ErrAccountNotFound = errors.New("token account not found")

	// ErrInsufficientFunds is returned when a transfer or withdrawal
	// exceeds the source balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Store interface {
	// Put creates a new token account record.
	//
	// Returns ErrAccountExists if the token account exists.
	Put(ctx context.Context, record *Record) error

	// Get finds the balance record for a token account.
	//
	// Returns ErrAccountNotFound if no record is found.
	Get(ctx context.Context, tokenAccount string) (*Record, error)

	// Deposit credits a token account.
	//
	// Returns ErrAccountNotFound if no record is found.
	Deposit(ctx context.Context, tokenAccount string, amount uint64) error

	// Transfer atomically moves funds between two token accounts. When a
	// database transaction is already running on the context, the
	// transfer joins it.
	//
	// Returns ErrAccountNotFound if either account doesn't exist, and
	// ErrInsufficientFunds if the source balance is too small.
	Transfer(ctx context.Context, source, destination string, amount uint64) error
}
