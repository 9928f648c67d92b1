package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed event.Store
func New(db *sql.DB) event.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements event.Store.Put
func (s *store) Put(ctx context.Context, record *event.Record) error {
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

// Get implements event.Store.Get
func (s *store) Get(ctx context.Context, eventId string) (*event.Record, error) {
	model, err := dbGet(ctx, s.db, eventId)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// Update implements event.Store.Update
func (s *store) Update(ctx context.Context, record *event.Record) error {
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

// GetAllByOrganizer implements event.Store.GetAllByOrganizer
func (s *store) GetAllByOrganizer(ctx context.Context, organizer string) ([]*event.Record, error) {
	models, err := dbGetAllByOrganizer(ctx, s.db, organizer)
	if err != nil {
		return nil, err
	}

	res := make([]*event.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}
