package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed checkin.Store
func New(db *sql.DB) checkin.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements checkin.Store.Put
func (s *store) Put(ctx context.Context, record *checkin.Record) error {
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

// Get implements checkin.Store.Get
func (s *store) Get(ctx context.Context, eventId, operator string) (*checkin.Record, error) {
	model, err := dbGet(ctx, s.db, eventId, operator)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// Update implements checkin.Store.Update
func (s *store) Update(ctx context.Context, record *checkin.Record) error {
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

// GetAllByEvent implements checkin.Store.GetAllByEvent
func (s *store) GetAllByEvent(ctx context.Context, eventId string) ([]*checkin.Record, error) {
	models, err := dbGetAllByEvent(ctx, s.db, eventId)
	if err != nil {
		return nil, err
	}

	res := make([]*checkin.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}
