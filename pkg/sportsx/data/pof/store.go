package pof

import (
	"context"
	"errors"
)

var (
	// ErrStateExists is returned when initializing program state that
	// already exists.
	ErrStateExists = errors.New("points state already initialized")

	// ErrStateNotFound is returned when program state hasn't been
	// initialized.
	ErrStateNotFound = errors.New("points state not initialized")

	// ErrWalletExists is returned when initializing a wallet that already
	// has a points record.
	ErrWalletExists = errors.New("wallet points record already exists")

	// ErrWalletNotFound is returned when no points record exists for a
	// wallet.
	ErrWalletNotFound = errors.New("wallet points record not found")

	// ErrInsufficientPoints is returned when a deduction exceeds the
	// wallet's points balance.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrCheckinExists is returned when initializing a check-in record
	// that already exists.
	ErrCheckinExists = errors.New("checkin record already exists")

	// ErrCheckinNotFound is returned when no check-in record exists for a
	// wallet.
	ErrCheckinNotFound = errors.New("checkin record not found")
)

type Store interface {
	// PutState creates the singleton program state record.
	//
	// Returns ErrStateExists if state was already initialized.
	PutState(ctx context.Context, record *StateRecord) error

	// GetState finds the singleton program state record.
	//
	// Returns ErrStateNotFound if state hasn't been initialized.
	GetState(ctx context.Context) (*StateRecord, error)

	// UpdateState overwrites the mutable fields of the program state.
	//
	// Returns ErrStateNotFound if state hasn't been initialized.
	UpdateState(ctx context.Context, record *StateRecord) error

	// PutPoints creates a zero-balance points record for a wallet.
	//
	// Returns ErrWalletExists if a record for the wallet exists.
	PutPoints(ctx context.Context, record *PointsRecord) error

	// GetPoints finds the points record for a wallet.
	//
	// Returns ErrWalletNotFound if no record is found.
	GetPoints(ctx context.Context, wallet string) (*PointsRecord, error)

	// AddPoints atomically applies a signed delta to a wallet's points.
	//
	// Returns ErrWalletNotFound if no record is found, and
	// ErrInsufficientPoints if a negative delta exceeds the balance.
	AddPoints(ctx context.Context, wallet string, delta int64) error

	// PutCheckin creates a check-in record for a wallet.
	//
	// Returns ErrCheckinExists if a record for the wallet exists.
	PutCheckin(ctx context.Context, record *CheckinRecord) error

	// GetCheckin finds the check-in record for a wallet.
	//
	// Returns ErrCheckinNotFound if no record is found.
	GetCheckin(ctx context.Context, wallet string) (*CheckinRecord, error)

	// UpdateCheckin overwrites the mutable fields of a check-in record.
	//
	// Returns ErrCheckinNotFound if no record is found.
	UpdateCheckin(ctx context.Context, record *CheckinRecord) error
}
