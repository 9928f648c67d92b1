package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	checkinAuthorityTableName = "sportsx__core_checkinauthority"
)

type model struct {
	Id            sql.NullInt64 `db:"id"`
	EventId       string        `db:"event_id"`
	Operator      string        `db:"operator"`
	IsActive      bool          `db:"is_active"`
	GrantedBy     string        `db:"granted_by"`
	CreatedAt     time.Time     `db:"created_at"`
	LastUpdatedAt time.Time     `db:"last_updated_at"`
}

func toModel(obj *checkin.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	createdAt := obj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &model{
		EventId:       obj.EventId,
		Operator:      obj.Operator,
		IsActive:      obj.IsActive,
		GrantedBy:     obj.GrantedBy,
		CreatedAt:     createdAt,
		LastUpdatedAt: time.Now(),
	}, nil
}

func fromModel(obj *model) *checkin.Record {
	return &checkin.Record{
		Id:            uint64(obj.Id.Int64),
		EventId:       obj.EventId,
		Operator:      obj.Operator,
		IsActive:      obj.IsActive,
		GrantedBy:     obj.GrantedBy,
		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + checkinAuthorityTableName + `
			(event_id, operator, is_active, granted_by, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, event_id, operator, is_active, granted_by, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.EventId,
			m.Operator,
			m.IsActive,
			m.GrantedBy,
			m.CreatedAt,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, checkin.ErrAuthorityExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + checkinAuthorityTableName + `
			SET is_active = $3, granted_by = $4, last_updated_at = $5
			WHERE event_id = $1 AND operator = $2
			RETURNING id, event_id, operator, is_active, granted_by, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.EventId,
			m.Operator,
			m.IsActive,
			m.GrantedBy,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckNoRows(err, checkin.ErrAuthorityNotFound)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, eventId, operator string) (*model, error) {
	res := &model{}

	query := `SELECT id, event_id, operator, is_active, granted_by, created_at, last_updated_at
		FROM ` + checkinAuthorityTableName + `
		WHERE event_id = $1 AND operator = $2`

	err := db.GetContext(ctx, res, query, eventId, operator)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, checkin.ErrAuthorityNotFound)
	}
	return res, nil
}

func dbGetAllByEvent(ctx context.Context, db *sqlx.DB, eventId string) ([]*model, error) {
	res := []*model{}

	query := `SELECT id, event_id, operator, is_active, granted_by, created_at, last_updated_at
		FROM ` + checkinAuthorityTableName + `
		WHERE event_id = $1
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query, eventId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, checkin.ErrAuthorityNotFound)
	}

	if len(res) == 0 {
		return nil, checkin.ErrAuthorityNotFound
	}
	return res, nil
}
