package ticket

import (
	"context"
	"errors"

	"github.com/sportsx/sportsx-server/pkg/database/query"
)

var (
	// ErrTicketAlreadyMinted is returned when minting a ticket whose id or
	// address is taken.
	ErrTicketAlreadyMinted = errors.New("ticket already minted")

	// ErrTicketNotFound is returned when no ticket exists for an address.
	ErrTicketNotFound = errors.New("ticket not found")
)

type Store interface {
	// Put mints a new ticket record.
	//
	// Returns ErrTicketAlreadyMinted if a ticket with the same id or
	// address exists.
	Put(ctx context.Context, record *Record) error

	// Get finds the ticket record for a given address.
	//
	// Returns ErrTicketNotFound if no record is found.
	Get(ctx context.Context, address string) (*Record, error)

	// Update overwrites the mutable fields of an existing ticket record.
	//
	// Returns ErrTicketNotFound if no record is found.
	Update(ctx context.Context, record *Record) error

	// GetAllByOwner returns a page of tickets currently held by an owner.
	//
	// Returns ErrTicketNotFound if no records are found.
	GetAllByOwner(ctx context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)
}
