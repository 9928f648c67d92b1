package listing

import (
	"errors"
	"time"
)

// Record is an active resale listing. A ticket has at most one listing at a
// time, and the row is removed when the listing is filled or cancelled.
type Record struct {
	Id uint64

	Address string
	Ticket  string

	Seller string
	Price  uint64

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("listing address is required")
	}

	if len(r.Ticket) == 0 {
		return errors.New("ticket address is required")
	}

	if len(r.Seller) == 0 {
		return errors.New("seller is required")
	}

	if r.Price == 0 {
		return errors.New("price must be positive")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id:        r.Id,
		Address:   r.Address,
		Ticket:    r.Ticket,
		Seller:    r.Seller,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.Address = r.Address
	dst.Ticket = r.Ticket
	dst.Seller = r.Seller
	dst.Price = r.Price
	dst.CreatedAt = r.CreatedAt
}
