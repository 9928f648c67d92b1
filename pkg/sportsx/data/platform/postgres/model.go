package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	platformConfigTableName = "sportsx__core_platformconfig"
)

type model struct {
	Id               sql.NullInt64 `db:"id"`
	FeeReceiver      string        `db:"fee_receiver"`
	FeeAmountUsdc    uint64        `db:"fee_amount_usdc"`
	BackendAuthority string        `db:"backend_authority"`
	EventAdmin       string        `db:"event_admin"`
	UpdateAuthority  string        `db:"update_authority"`
	IsPaused         bool          `db:"is_paused"`
	LastUpdatedAt    time.Time     `db:"last_updated_at"`
}

func toModel(obj *platform.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		FeeReceiver:      obj.FeeReceiver,
		FeeAmountUsdc:    obj.FeeAmountUsdc,
		BackendAuthority: obj.BackendAuthority,
		EventAdmin:       obj.EventAdmin,
		UpdateAuthority:  obj.UpdateAuthority,
		IsPaused:         obj.IsPaused,
		LastUpdatedAt:    obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *platform.Record {
	return &platform.Record{
		Id:               uint64(obj.Id.Int64),
		FeeReceiver:      obj.FeeReceiver,
		FeeAmountUsdc:    obj.FeeAmountUsdc,
		BackendAuthority: obj.BackendAuthority,
		EventAdmin:       obj.EventAdmin,
		UpdateAuthority:  obj.UpdateAuthority,
		IsPaused:         obj.IsPaused,
		LastUpdatedAt:    obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + platformConfigTableName + `
			(singleton_key, fee_receiver, fee_amount_usdc, backend_authority, event_admin, update_authority, is_paused, last_updated_at)
			VALUES (1, $1, $2, $3, $4, $5, $6, $7)
			RETURNING
				id, fee_receiver, fee_amount_usdc, backend_authority, event_admin, update_authority, is_paused, last_updated_at`

		m.LastUpdatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.FeeReceiver,
			m.FeeAmountUsdc,
			m.BackendAuthority,
			m.EventAdmin,
			m.UpdateAuthority,
			m.IsPaused,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, platform.ErrAlreadyInitialized)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + platformConfigTableName + `
			SET fee_receiver = $1, fee_amount_usdc = $2, backend_authority = $3, event_admin = $4, update_authority = $5, is_paused = $6, last_updated_at = $7
			WHERE singleton_key = 1
			RETURNING
				id, fee_receiver, fee_amount_usdc, backend_authority, event_admin, update_authority, is_paused, last_updated_at`

		m.LastUpdatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.FeeReceiver,
			m.FeeAmountUsdc,
			m.BackendAuthority,
			m.EventAdmin,
			m.UpdateAuthority,
			m.IsPaused,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckNoRows(err, platform.ErrNotInitialized)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB) (*model, error) {
	res := &model{}

	query := `SELECT id, fee_receiver, fee_amount_usdc, backend_authority, event_admin, update_authority, is_paused, last_updated_at
		FROM ` + platformConfigTableName + `
		WHERE singleton_key = 1`

	err := db.GetContext(ctx, res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, platform.ErrNotInitialized)
	}
	return res, nil
}
