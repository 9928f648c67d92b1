package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	nonceTableName = "sportsx__core_usednonce"
)

type model struct {
	Id     sql.NullInt64 `db:"id"`
	Nonce  uint64        `db:"nonce"`
	UsedBy string        `db:"used_by"`
	UsedAt time.Time     `db:"used_at"`
}

func toModel(obj *nonce.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	usedAt := obj.UsedAt
	if usedAt.IsZero() {
		usedAt = time.Now()
	}

	return &model{
		Nonce:  obj.Nonce,
		UsedBy: obj.UsedBy,
		UsedAt: usedAt,
	}, nil
}

func fromModel(obj *model) *nonce.Record {
	return &nonce.Record{
		Id:     uint64(obj.Id.Int64),
		Nonce:  obj.Nonce,
		UsedBy: obj.UsedBy,
		UsedAt: obj.UsedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + nonceTableName + `
			(nonce, used_by, used_at)
			VALUES ($1, $2, $3)
			RETURNING id, nonce, used_by, used_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Nonce,
			m.UsedBy,
			m.UsedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, nonce.ErrNonceAlreadyUsed)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, value uint64) (*model, error) {
	res := &model{}

	query := `SELECT id, nonce, used_by, used_at FROM ` + nonceTableName + ` WHERE nonce = $1`

	err := db.GetContext(ctx, res, query, value)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, nonce.ErrNonceNotFound)
	}
	return res, nil
}

func dbGetCount(ctx context.Context, db *sqlx.DB) (uint64, error) {
	var res uint64

	query := `SELECT COUNT(*) FROM ` + nonceTableName

	err := db.GetContext(ctx, &res, query)
	if err != nil {
		return 0, err
	}
	return res, nil
}

func dbDeleteBefore(ctx context.Context, db *sqlx.DB, t time.Time) (uint64, error) {
	query := `DELETE FROM ` + nonceTableName + ` WHERE used_at < $1`

	res, err := db.ExecContext(ctx, query, t)
	if err != nil {
		return 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(deleted), nil
}
