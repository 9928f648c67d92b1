package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/database/query"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed ticket.Store
func New(db *sql.DB) ticket.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements ticket.Store.Put
func (s *store) Put(ctx context.Context, record *ticket.Record) error {
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

// Get implements ticket.Store.Get
func (s *store) Get(ctx context.Context, address string) (*ticket.Record, error) {
	model, err := dbGet(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// Update implements ticket.Store.Update
func (s *store) Update(ctx context.Context, record *ticket.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbUpdate(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// GetAllByOwner implements ticket.Store.GetAllByOwner
func (s *store) GetAllByOwner(ctx context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*ticket.Record, error) {
	models, err := dbGetAllByOwner(ctx, s.db, owner, cursor, limit, direction)
	if err != nil {
		return nil, err
	}

	res := make([]*ticket.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}
