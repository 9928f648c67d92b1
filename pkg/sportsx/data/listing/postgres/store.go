package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed listing.Store
func New(db *sql.DB) listing.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements listing.Store.Put
func (s *store) Put(ctx context.Context, record *listing.Record) error {
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

// GetByTicket implements listing.Store.GetByTicket
func (s *store) GetByTicket(ctx context.Context, ticket string) (*listing.Record, error) {
	model, err := dbGetByTicket(ctx, s.db, ticket)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// Delete implements listing.Store.Delete
func (s *store) Delete(ctx context.Context, ticket string) error {
	return dbDelete(ctx, s.db, ticket)
}

// GetAllBySeller implements listing.Store.GetAllBySeller
func (s *store) GetAllBySeller(ctx context.Context, seller string) ([]*listing.Record, error) {
	models, err := dbGetAllBySeller(ctx, s.db, seller)
	if err != nil {
		return nil, err
	}

	res := make([]*listing.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}
