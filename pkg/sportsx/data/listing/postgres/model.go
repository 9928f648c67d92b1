package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	listingTableName = "sportsx__core_listing"
)

type model struct {
	Id        sql.NullInt64 `db:"id"`
	Address   string        `db:"address"`
	Ticket    string        `db:"ticket"`
	Seller    string        `db:"seller"`
	Price     uint64        `db:"price"`
	CreatedAt time.Time     `db:"created_at"`
}

func toModel(obj *listing.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	createdAt := obj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &model{
		Address:   obj.Address,
		Ticket:    obj.Ticket,
		Seller:    obj.Seller,
		Price:     obj.Price,
		CreatedAt: createdAt,
	}, nil
}

func fromModel(obj *model) *listing.Record {
	return &listing.Record{
		Id:        uint64(obj.Id.Int64),
		Address:   obj.Address,
		Ticket:    obj.Ticket,
		Seller:    obj.Seller,
		Price:     obj.Price,
		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + listingTableName + `
			(address, ticket, seller, price, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, address, ticket, seller, price, created_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.Ticket,
			m.Seller,
			m.Price,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, listing.ErrListingExists)
	})
}

func dbGetByTicket(ctx context.Context, db *sqlx.DB, ticket string) (*model, error) {
	res := &model{}

	query := `SELECT id, address, ticket, seller, price, created_at
		FROM ` + listingTableName + `
		WHERE ticket = $1`

	err := db.GetContext(ctx, res, query, ticket)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, listing.ErrListingNotFound)
	}
	return res, nil
}

func dbDelete(ctx context.Context, db *sqlx.DB, ticket string) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `DELETE FROM ` + listingTableName + ` WHERE ticket = $1`

		_, err := tx.ExecContext(ctx, query, ticket)
		return err
	})
}

func dbGetAllBySeller(ctx context.Context, db *sqlx.DB, seller string) ([]*model, error) {
	res := []*model{}

	query := `SELECT id, address, ticket, seller, price, created_at
		FROM ` + listingTableName + `
		WHERE seller = $1
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query, seller)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, listing.ErrListingNotFound)
	}

	if len(res) == 0 {
		return nil, listing.ErrListingNotFound
	}
	return res, nil
}
