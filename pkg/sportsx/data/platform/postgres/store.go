package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"
)

type store struct {
	db *sqlx.DB
}

func New(db *sql.DB) platform.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put creates the singleton config record.
func (s *store) Put(ctx context.Context, record *platform.Record) error {
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

// Get returns the singleton config record.
func (s *store) Get(ctx context.Context) (*platform.Record, error) {
	obj, err := dbGet(ctx, s.db)
	if err != nil {
		return nil, err
	}

	return fromModel(obj), nil
}

// Update overwrites the mutable fields of the singleton config record.
func (s *store) Update(ctx context.Context, record *platform.Record) error {
	obj, err := toModel(record)
	if err != nil {
		return err
	}

	err = obj.dbUpdate(ctx, s.db)
	if err != nil {
		return err
	}

	fromModel(obj).CopyTo(record)

	return nil
}
