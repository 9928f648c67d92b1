package listing

import (
	"context"
	"errors"
)

var (
	// ErrListingExists is returned when listing a ticket that already has
	// an active listing.
	ErrListingExists = errors.New("listing already exists")

	// ErrListingNotFound is returned when no active listing exists for a
	// ticket.
	ErrListingNotFound = errors.New("listing not found")
)

type Store interface {
	// Put creates a new listing record.
	//
	// Returns ErrListingExists if the ticket already has a listing.
	Put(ctx context.Context, record *Record) error

	// GetByTicket finds the listing record for a ticket address.
	//
	// Returns ErrListingNotFound if no record is found.
	GetByTicket(ctx context.Context, ticket string) (*Record, error)

	// Delete removes the listing for a ticket address. Deleting a listing
	// that doesn't exist is not an error.
	Delete(ctx context.Context, ticket string) error

	// GetAllBySeller returns all active listings created by a seller.
	//
	// Returns ErrListingNotFound if no records are found.
	GetAllBySeller(ctx context.Context, seller string) ([]*Record, error)
}
