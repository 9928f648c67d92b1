package nonce

import (
	"errors"
	"time"
)

// Record marks a single authorization nonce as consumed. The set of records
// only ever grows (outside of pruning), which is what makes a backend
// authorization single-use.
type Record struct {
	Id uint64

	Nonce  uint64
	UsedBy string

	UsedAt time.Time
}

func (r *Record) Validate() error {
	if r.Nonce == 0 {
		return errors.New("nonce is required")
	}

	if len(r.UsedBy) == 0 {
		return errors.New("consuming account is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id:     r.Id,
		Nonce:  r.Nonce,
		UsedBy: r.UsedBy,
		UsedAt: r.UsedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.Nonce = r.Nonce
	dst.UsedBy = r.UsedBy
	dst.UsedAt = r.UsedAt
}
