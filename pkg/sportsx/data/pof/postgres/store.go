package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/pof"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed pof.Store
func New(db *sql.DB) pof.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// PutState implements pof.Store.PutState
func (s *store) PutState(ctx context.Context, record *pof.StateRecord) error {
	model, err := toStateModel(record)
	if err != nil {
		return err
	}

	if err := model.dbPut(ctx, s.db); err != nil {
		return err
	}

	res, err := fromStateModel(model)
	if err != nil {
		return err
	}
	res.CopyTo(record)

	return nil
}

// GetState implements pof.Store.GetState
func (s *store) GetState(ctx context.Context) (*pof.StateRecord, error) {
	model, err := dbGetState(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return fromStateModel(model)
}

// UpdateState implements pof.Store.UpdateState
func (s *store) UpdateState(ctx context.Context, record *pof.StateRecord) error {
	model, err := toStateModel(record)
	if err != nil {
		return err
	}

	if err := model.dbUpdate(ctx, s.db); err != nil {
		return err
	}

	res, err := fromStateModel(model)
	if err != nil {
		return err
	}
	res.CopyTo(record)

	return nil
}

// PutPoints implements pof.Store.PutPoints
func (s *store) PutPoints(ctx context.Context, record *pof.PointsRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	model, err := dbPutPoints(ctx, s.db, record)
	if err != nil {
		return err
	}

	*record = *fromPointsModel(model)

	return nil
}

// GetPoints implements pof.Store.GetPoints
func (s *store) GetPoints(ctx context.Context, wallet string) (*pof.PointsRecord, error) {
	model, err := dbGetPoints(ctx, s.db, wallet)
	if err != nil {
		return nil, err
	}
	return fromPointsModel(model), nil
}

// AddPoints implements pof.Store.AddPoints
func (s *store) AddPoints(ctx context.Context, wallet string, delta int64) error {
	return dbAddPoints(ctx, s.db, wallet, delta)
}

// PutCheckin implements pof.Store.PutCheckin
func (s *store) PutCheckin(ctx context.Context, record *pof.CheckinRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	model, err := dbPutCheckin(ctx, s.db, record)
	if err != nil {
		return err
	}

	*record = *fromCheckinModel(model)

	return nil
}

// GetCheckin implements pof.Store.GetCheckin
func (s *store) GetCheckin(ctx context.Context, wallet string) (*pof.CheckinRecord, error) {
	model, err := dbGetCheckin(ctx, s.db, wallet)
	if err != nil {
		return nil, err
	}
	return fromCheckinModel(model), nil
}

// UpdateCheckin implements pof.Store.UpdateCheckin
func (s *store) UpdateCheckin(ctx context.Context, record *pof.CheckinRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	model, err := dbUpdateCheckin(ctx, s.db, record)
	if err != nil {
		return err
	}

	*record = *fromCheckinModel(model)

	return nil
}
