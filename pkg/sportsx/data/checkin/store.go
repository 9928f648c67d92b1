package checkin

import (
	"context"
	"errors"
)

var (
	// ErrAuthorityExists is returned when granting a capability that
	// already exists for the (event, operator) pair.
	ErrAuthorityExists = errors.New("checkin authority already exists")

	// ErrAuthorityNotFound is returned when no capability exists for the
	// (event, operator) pair.
	ErrAuthorityNotFound = errors.New("checkin authority not found")
)

type Store interface {
	// Put creates a new check-in capability record.
	//
	// Returns ErrAuthorityExists if a record for the (event, operator)
	// pair exists.
	Put(ctx context.Context, record *Record) error

	// Get finds the capability record for an (event, operator) pair.
	//
	// Returns ErrAuthorityNotFound if no record is found.
	Get(ctx context.Context, eventId, operator string) (*Record, error)

	// Update overwrites the mutable fields of an existing capability
	// record.
	//
	// Returns ErrAuthorityNotFound if no record is found.
	Update(ctx context.Context, record *Record) error

	// GetAllByEvent returns all capability records for an event,
	// including revoked ones.
	//
	// Returns ErrAuthorityNotFound if no records are found.
	GetAllByEvent(ctx context.Context, eventId string) ([]*Record, error)
}
