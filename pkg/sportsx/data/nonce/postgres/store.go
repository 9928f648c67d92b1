package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) nonce.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put records a nonce as consumed.
func (s *store) Put(ctx context.Context, record *nonce.Record) error {
	obj, err := toModel(record)
	if err != nil {
		return err
	}

	err = obj.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	fromModel(obj).CopyTo(record)

	return nil
}

// Get finds the consumption record for a nonce.
func (s *store) Get(ctx context.Context, value uint64) (*nonce.Record, error) {
	obj, err := dbGet(ctx, s.db, value)
	if err != nil {
		return nil, err
	}

	return fromModel(obj), nil
}

// Count returns the total count of consumed nonces.
func (s *store) Count(ctx context.Context) (uint64, error) {
	return dbGetCount(ctx, s.db)
}

// DeleteBefore prunes records consumed before the provided timestamp.
func (s *store) DeleteBefore(ctx context.Context, t time.Time) (uint64, error) {
	return dbDeleteBefore(ctx, s.db, t)
}
