package platform

import (
	"errors"
	"time"
)

// Record is the singleton platform configuration. It is created exactly once
// by the deployer and only ever mutated by the update authority.
type Record struct {
	Id uint64

	FeeReceiver      string
	FeeAmountUsdc    uint64
	BackendAuthority string
	EventAdmin       string
	UpdateAuthority  string

	IsPaused bool

	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.FeeReceiver) == 0 {
		return errors.New("fee receiver is required")
	}

	if len(r.BackendAuthority) == 0 {
		return errors.New("backend authority is required")
	}

	if len(r.EventAdmin) == 0 {
		return errors.New("event admin is required")
	}

	if len(r.UpdateAuthority) == 0 {
		return errors.New("update authority is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id:               r.Id,
		FeeReceiver:      r.FeeReceiver,
		FeeAmountUsdc:    r.FeeAmountUsdc,
		BackendAuthority: r.BackendAuthority,
		EventAdmin:       r.EventAdmin,
		UpdateAuthority:  r.UpdateAuthority,
		IsPaused:         r.IsPaused,
		LastUpdatedAt:    r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.FeeReceiver = r.FeeReceiver
	dst.FeeAmountUsdc = r.FeeAmountUsdc
	dst.BackendAuthority = r.BackendAuthority
	dst.EventAdmin = r.EventAdmin
	dst.UpdateAuthority = r.UpdateAuthority
	dst.IsPaused = r.IsPaused
	dst.LastUpdatedAt = r.LastUpdatedAt
}
