package balance

import (
	"errors"
	"time"
)

// Record is a token account balance in micro-USDC.
type Record struct {
	Id uint64

	TokenAccount string
	Owner        string

	Amount uint64

	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.TokenAccount) == 0 {
		return errors.New("token account is required")
	}

	if len(r.Owner) == 0 {
		return errors.New("owner is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id:            r.Id,
		TokenAccount:  r.TokenAccount,
		Owner:         r.Owner,
		Amount:        r.Amount,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.TokenAccount = r.TokenAccount
	dst.Owner = r.Owner
	dst.Amount = r.Amount
	dst.LastUpdatedAt = r.LastUpdatedAt
}
