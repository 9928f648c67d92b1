package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/balance"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed balance.Store
func New(db *sql.DB) balance.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements balance.Store.Put
func (s *store) Put(ctx context.Context, record *balance.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbPut(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// Get implements balance.Store.Get
func (s *store) Get(ctx context.Context, tokenAccount string) (*balance.Record, error) {
	model, err := dbGet(ctx, s.db, tokenAccount)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// Deposit implements balance.Store.Deposit
func (s *store) Deposit(ctx context.Context, tokenAccount string, amount uint64) error {
	return dbDeposit(ctx, s.db, tokenAccount, amount)
}

// Transfer implements balance.Store.Transfer
func (s *store) Transfer(ctx context.Context, source, destination string, amount uint64) error {
	return dbTransfer(ctx, s.db, source, destination, amount)
}
