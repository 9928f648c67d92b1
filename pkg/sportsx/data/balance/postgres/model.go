package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/balance"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	balanceTableName = "sportsx__core_tokenbalance"
)

type model struct {
	Id            sql.NullInt64 `db:"id"`
	TokenAccount  string        `db:"token_account"`
	Owner         string        `db:"owner"`
	Amount        uint64        `db:"amount"`
	LastUpdatedAt time.Time     `db:"last_updated_at"`
}

func toModel(obj *balance.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		TokenAccount:  obj.TokenAccount,
		Owner:         obj.Owner,
		Amount:        obj.Amount,
		LastUpdatedAt: time.Now(),
	}, nil
}

func fromModel(obj *model) *balance.Record {
	return &balance.Record{
		Id:            uint64(obj.Id.Int64),
		TokenAccount:  obj.TokenAccount,
		Owner:         obj.Owner,
		Amount:        obj.Amount,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + balanceTableName + `
			(token_account, owner, amount, last_updated_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, token_account, owner, amount, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.TokenAccount,
			m.Owner,
			m.Amount,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, balance.ErrAccountExists)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, tokenAccount string) (*model, error) {
	res := &model{}

	query := `SELECT id, token_account, owner, amount, last_updated_at
		FROM ` + balanceTableName + `
		WHERE token_account = $1`

	err := db.GetContext(ctx, res, query, tokenAccount)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, balance.ErrAccountNotFound)
	}
	return res, nil
}

func dbDeposit(ctx context.Context, db *sqlx.DB, tokenAccount string, amount uint64) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + balanceTableName + `
			SET amount = amount + $2, last_updated_at = $3
			WHERE token_account = $1
			RETURNING id`

		var id int64
		err := tx.QueryRowxContext(ctx, query, tokenAccount, amount, time.Now()).Scan(&id)
		return pgutil.CheckNoRows(err, balance.ErrAccountNotFound)
	})
}

func dbTransfer(ctx context.Context, db *sqlx.DB, source, destination string, amount uint64) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelSerializable, func(tx *sqlx.Tx) error {
		now := time.Now()

		// Debit checks the balance in the same statement, so a concurrent
		// spend can never drive the source negative.
		debit := `UPDATE ` + balanceTableName + `
			SET amount = amount - $2, last_updated_at = $3
			WHERE token_account = $1 AND amount >= $2
			RETURNING id`

		var id int64
		err := tx.QueryRowxContext(ctx, debit, source, amount, now).Scan(&id)
		if pgutil.IsNoRows(err) {
			if _, err := dbGet(ctx, db, source); err != nil {
				return err
			}
			return balance.ErrInsufficientFunds
		}
		if err != nil {
			return err
		}

		credit := `UPDATE ` + balanceTableName + `
			SET amount = amount + $2, last_updated_at = $3
			WHERE token_account = $1
			RETURNING id`

		err = tx.QueryRowxContext(ctx, credit, destination, amount, now).Scan(&id)
		return pgutil.CheckNoRows(err, balance.ErrAccountNotFound)
	})
}
