package checkin

import (
	"errors"
	"time"
)

// Record grants an operator the capability to check tickets in for an event.
//
// Revocation flips IsActive rather than deleting the row, so a re-grant
// reuses the same record and the audit trail survives.
type Record struct {
	Id uint64

	EventId  string
	Operator string

	IsActive bool

	GrantedBy string

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.EventId) == 0 {
		return errors.New("event id is required")
	}

	if len(r.Operator) == 0 {
		return errors.New("operator is required")
	}

	if len(r.GrantedBy) == 0 {
		return errors.New("granting authority is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id:            r.Id,
		EventId:       r.EventId,
		Operator:      r.Operator,
		IsActive:      r.IsActive,
		GrantedBy:     r.GrantedBy,
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.EventId = r.EventId
	dst.Operator = r.Operator
	dst.IsActive = r.IsActive
	dst.GrantedBy = r.GrantedBy
	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
