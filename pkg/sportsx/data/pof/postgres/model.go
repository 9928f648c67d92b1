package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/pof"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	stateTableName   = "sportsx__pof_state"
	pointsTableName  = "sportsx__pof_walletpoints"
	checkinTableName = "sportsx__pof_dailycheckin"
)

type stateModel struct {
	Id                  sql.NullInt64 `db:"id"`
	Admin               string        `db:"admin"`
	AuthorizedContracts []byte        `db:"authorized_contracts"`
	LastUpdatedAt       time.Time     `db:"last_updated_at"`
}

type pointsModel struct {
	Id            sql.NullInt64 `db:"id"`
	Wallet        string        `db:"wallet"`
	Points        uint64        `db:"points"`
	LastUpdatedAt time.Time     `db:"last_updated_at"`
}

type checkinModel struct {
	Id            sql.NullInt64 `db:"id"`
	Wallet        string        `db:"wallet"`
	LastCheckin   time.Time     `db:"last_checkin"`
	TotalCheckins uint64        `db:"total_checkins"`
}

func toStateModel(obj *pof.StateRecord) (*stateModel, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	contracts, err := json.Marshal(obj.AuthorizedContracts)
	if err != nil {
		return nil, err
	}

	return &stateModel{
		Admin:               obj.Admin,
		AuthorizedContracts: contracts,
		LastUpdatedAt:       time.Now(),
	}, nil
}

func fromStateModel(obj *stateModel) (*pof.StateRecord, error) {
	var contracts []string
	if err := json.Unmarshal(obj.AuthorizedContracts, &contracts); err != nil {
		return nil, err
	}

	return &pof.StateRecord{
		Id:                  uint64(obj.Id.Int64),
		Admin:               obj.Admin,
		AuthorizedContracts: contracts,
		LastUpdatedAt:       obj.LastUpdatedAt,
	}, nil
}

func fromPointsModel(obj *pointsModel) *pof.PointsRecord {
	return &pof.PointsRecord{
		Id:            uint64(obj.Id.Int64),
		Wallet:        obj.Wallet,
		Points:        obj.Points,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func fromCheckinModel(obj *checkinModel) *pof.CheckinRecord {
	return &pof.CheckinRecord{
		Id:            uint64(obj.Id.Int64),
		Wallet:        obj.Wallet,
		LastCheckin:   obj.LastCheckin,
		TotalCheckins: obj.TotalCheckins,
	}
}

func (m *stateModel) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + stateTableName + `
			(singleton_key, admin, authorized_contracts, last_updated_at)
			VALUES (1, $1, $2, $3)
			RETURNING id, admin, authorized_contracts, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Admin,
			m.AuthorizedContracts,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, pof.ErrStateExists)
	})
}

func (m *stateModel) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + stateTableName + `
			SET admin = $1, authorized_contracts = $2, last_updated_at = $3
			WHERE singleton_key = 1
			RETURNING id, admin, authorized_contracts, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Admin,
			m.AuthorizedContracts,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckNoRows(err, pof.ErrStateNotFound)
	})
}

func dbGetState(ctx context.Context, db *sqlx.DB) (*stateModel, error) {
	res := &stateModel{}

	query := `SELECT id, admin, authorized_contracts, last_updated_at
		FROM ` + stateTableName + `
		WHERE singleton_key = 1`

	err := db.GetContext(ctx, res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, pof.ErrStateNotFound)
	}
	return res, nil
}

func dbPutPoints(ctx context.Context, db *sqlx.DB, obj *pof.PointsRecord) (*pointsModel, error) {
	m := &pointsModel{
		Wallet:        obj.Wallet,
		Points:        obj.Points,
		LastUpdatedAt: time.Now(),
	}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + pointsTableName + `
			(wallet, points, last_updated_at)
			VALUES ($1, $2, $3)
			RETURNING id, wallet, points, last_updated_at`

		err := tx.QueryRowxContext(ctx, query, m.Wallet, m.Points, m.LastUpdatedAt).StructScan(m)
		return pgutil.CheckUniqueViolation(err, pof.ErrWalletExists)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func dbGetPoints(ctx context.Context, db *sqlx.DB, wallet string) (*pointsModel, error) {
	res := &pointsModel{}

	query := `SELECT id, wallet, points, last_updated_at
		FROM ` + pointsTableName + `
		WHERE wallet = $1`

	err := db.GetContext(ctx, res, query, wallet)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, pof.ErrWalletNotFound)
	}
	return res, nil
}

func dbAddPoints(ctx context.Context, db *sqlx.DB, wallet string, delta int64) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelSerializable, func(tx *sqlx.Tx) error {
		// A negative delta checks the balance in the same statement, so a
		// concurrent spend can never drive the balance negative.
		query := `UPDATE ` + pointsTableName + `
			SET points = points + $2, last_updated_at = $3
			WHERE wallet = $1 AND points + $2 >= 0
			RETURNING id`

		var id int64
		err := tx.QueryRowxContext(ctx, query, wallet, delta, time.Now()).Scan(&id)
		if pgutil.IsNoRows(err) {
			if _, err := dbGetPoints(ctx, db, wallet); err != nil {
				return err
			}
			return pof.ErrInsufficientPoints
		}
		return err
	})
}

func dbPutCheckin(ctx context.Context, db *sqlx.DB, obj *pof.CheckinRecord) (*checkinModel, error) {
	m := &checkinModel{
		Wallet:        obj.Wallet,
		LastCheckin:   obj.LastCheckin,
		TotalCheckins: obj.TotalCheckins,
	}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + checkinTableName + `
			(wallet, last_checkin, total_checkins)
			VALUES ($1, $2, $3)
			RETURNING id, wallet, last_checkin, total_checkins`

		err := tx.QueryRowxContext(ctx, query, m.Wallet, m.LastCheckin, m.TotalCheckins).StructScan(m)
		return pgutil.CheckUniqueViolation(err, pof.ErrCheckinExists)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func dbGetCheckin(ctx context.Context, db *sqlx.DB, wallet string) (*checkinModel, error) {
	res := &checkinModel{}

	query := `SELECT id, wallet, last_checkin, total_checkins
		FROM ` + checkinTableName + `
		WHERE wallet = $1`

	err := db.GetContext(ctx, res, query, wallet)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, pof.ErrCheckinNotFound)
	}
	return res, nil
}

func dbUpdateCheckin(ctx context.Context, db *sqlx.DB, obj *pof.CheckinRecord) (*checkinModel, error) {
	m := &checkinModel{
		Wallet:        obj.Wallet,
		LastCheckin:   obj.LastCheckin,
		TotalCheckins: obj.TotalCheckins,
	}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + checkinTableName + `
			SET last_checkin = $2, total_checkins = $3
			WHERE wallet = $1
			RETURNING id, wallet, last_checkin, total_checkins`

		err := tx.QueryRowxContext(ctx, query, m.Wallet, m.LastCheckin, m.TotalCheckins).StructScan(m)
		return pgutil.CheckNoRows(err, pof.ErrCheckinNotFound)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
