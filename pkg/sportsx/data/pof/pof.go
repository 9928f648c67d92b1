package pof

import (
	"errors"
	"time"
)

// MaxAuthorizedContracts bounds the allowlist of programs that may move
// points on behalf of wallets.
const MaxAuthorizedContracts = 10

// StateRecord is the singleton points program state.
type StateRecord struct {
	Id uint64

	Admin string

	AuthorizedContracts []string

	LastUpdatedAt time.Time
}

// PointsRecord tracks the points balance for a single wallet.
type PointsRecord struct {
	Id uint64

	Wallet string
	Points uint64

	LastUpdatedAt time.Time
}

// CheckinRecord tracks daily check-in progress for a single wallet.
type CheckinRecord struct {
	Id uint64

	Wallet string

	LastCheckin   time.Time
	TotalCheckins uint64
}

func (r *StateRecord) Validate() error {
	if len(r.Admin) == 0 {
		return errors.New("admin is required")
	}

	if len(r.AuthorizedContracts) > MaxAuthorizedContracts {
		return errors.New("too many authorized contracts")
	}

	return nil
}

func (r *StateRecord) IsAuthorized(contract string) bool {
	for _, authorized := range r.AuthorizedContracts {
		if authorized == contract {
			return true
		}
	}
	return false
}

func (r *StateRecord) Clone() StateRecord {
	contracts := make([]string, len(r.AuthorizedContracts))
	copy(contracts, r.AuthorizedContracts)

	return StateRecord{
		Id:                  r.Id,
		Admin:               r.Admin,
		AuthorizedContracts: contracts,
		LastUpdatedAt:       r.LastUpdatedAt,
	}
}

func (r *StateRecord) CopyTo(dst *StateRecord) {
	cloned := r.Clone()
	dst.Id = cloned.Id
	dst.Admin = cloned.Admin
	dst.AuthorizedContracts = cloned.AuthorizedContracts
	dst.LastUpdatedAt = cloned.LastUpdatedAt
}

func (r *PointsRecord) Validate() error {
	if len(r.Wallet) == 0 {
		return errors.New("wallet is required")
	}
	return nil
}

func (r *PointsRecord) Clone() PointsRecord {
	return PointsRecord{
		Id:            r.Id,
		Wallet:        r.Wallet,
		Points:        r.Points,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *CheckinRecord) Validate() error {
	if len(r.Wallet) == 0 {
		return errors.New("wallet is required")
	}
	return nil
}

func (r *CheckinRecord) Clone() CheckinRecord {
	return CheckinRecord{
		Id:            r.Id,
		Wallet:        r.Wallet,
		LastCheckin:   r.LastCheckin,
		TotalCheckins: r.TotalCheckins,
	}
}
