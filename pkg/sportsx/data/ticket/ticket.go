package ticket

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Record is a single issued ticket. The address is derived from the event id
// and ticket id, so one ticket id can never mint twice.
type Record struct {
	Id uint64

	Address string

	EventId      string
	TicketTypeId string
	TicketId     uuid.UUID

	Owner         string
	OriginalOwner string

	OriginalPrice uint64

	RowNumber    uint16
	ColumnNumber uint16

	ResaleCount uint8
	IsCheckedIn bool

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("ticket address is required")
	}

	if len(r.EventId) == 0 {
		return errors.New("event id is required")
	}

	if len(r.TicketTypeId) == 0 {
		return errors.New("ticket type id is required")
	}

	if r.TicketId == uuid.Nil {
		return errors.New("ticket id is required")
	}

	if len(r.Owner) == 0 {
		return errors.New("owner is required")
	}

	if len(r.OriginalOwner) == 0 {
		return errors.New("original owner is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id:            r.Id,
		Address:       r.Address,
		EventId:       r.EventId,
		TicketTypeId:  r.TicketTypeId,
		TicketId:      r.TicketId,
		Owner:         r.Owner,
		OriginalOwner: r.OriginalOwner,
		OriginalPrice: r.OriginalPrice,
		RowNumber:     r.RowNumber,
		ColumnNumber:  r.ColumnNumber,
		ResaleCount:   r.ResaleCount,
		IsCheckedIn:   r.IsCheckedIn,
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.Address = r.Address
	dst.EventId = r.EventId
	dst.TicketTypeId = r.TicketTypeId
	dst.TicketId = r.TicketId
	dst.Owner = r.Owner
	dst.OriginalOwner = r.OriginalOwner
	dst.OriginalPrice = r.OriginalPrice
	dst.RowNumber = r.RowNumber
	dst.ColumnNumber = r.ColumnNumber
	dst.ResaleCount = r.ResaleCount
	dst.IsCheckedIn = r.IsCheckedIn
	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
