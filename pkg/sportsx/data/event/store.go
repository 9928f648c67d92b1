package event

import (
	"context"
	"errors"
)

var (
	// ErrEventExists is returned when creating an event whose id is taken.
	ErrEventExists = errors.New("event already exists")

	// ErrEventNotFound is returned when no event exists for an id.
	ErrEventNotFound = errors.New("event not found")
)

type Store interface {
	// Put creates a new event record.
	//
	// Returns ErrEventExists if an event with the same id exists.
	Put(ctx context.Context, record *Record) error

	// Get finds the event record for a given event id.
	//
	// Returns ErrEventNotFound if no record is found.
	Get(ctx context.Context, eventId string) (*Record, error)

	// Update overwrites the mutable fields of an existing event record.
	//
	// Returns ErrEventNotFound if no record is found.
	Update(ctx context.Context, record *Record) error

	// GetAllByOrganizer returns all events created by an organizer.
	//
	// Returns ErrEventNotFound if no records are found.
	GetAllByOrganizer(ctx context.Context, organizer string) ([]*Record, error)
}
