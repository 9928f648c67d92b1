package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
	q "github.com/sportsx/sportsx-server/pkg/database/query"
)

const (
	ticketTableName = "sportsx__core_ticket"
)

type model struct {
	Id            sql.NullInt64 `db:"id"`
	Address       string        `db:"address"`
	EventId       string        `db:"event_id"`
	TicketTypeId  string        `db:"ticket_type_id"`
	TicketId      uuid.UUID     `db:"ticket_id"`
	Owner         string        `db:"owner"`
	OriginalOwner string        `db:"original_owner"`
	OriginalPrice uint64        `db:"original_price"`
	RowNumber     uint16        `db:"row_number"`
	ColumnNumber  uint16        `db:"column_number"`
	ResaleCount   uint8         `db:"resale_count"`
	IsCheckedIn   bool          `db:"is_checked_in"`
	CreatedAt     time.Time     `db:"created_at"`
	LastUpdatedAt time.Time     `db:"last_updated_at"`
}

func toModel(obj *ticket.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	createdAt := obj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &model{
		Address:       obj.Address,
		EventId:       obj.EventId,
		TicketTypeId:  obj.TicketTypeId,
		TicketId:      obj.TicketId,
		Owner:         obj.Owner,
		OriginalOwner: obj.OriginalOwner,
		OriginalPrice: obj.OriginalPrice,
		RowNumber:     obj.RowNumber,
		ColumnNumber:  obj.ColumnNumber,
		ResaleCount:   obj.ResaleCount,
		IsCheckedIn:   obj.IsCheckedIn,
		CreatedAt:     createdAt,
		LastUpdatedAt: time.Now(),
	}, nil
}

func fromModel(obj *model) *ticket.Record {
	return &ticket.Record{
		Id:            uint64(obj.Id.Int64),
		Address:       obj.Address,
		EventId:       obj.EventId,
		TicketTypeId:  obj.TicketTypeId,
		TicketId:      obj.TicketId,
		Owner:         obj.Owner,
		OriginalOwner: obj.OriginalOwner,
		OriginalPrice: obj.OriginalPrice,
		RowNumber:     obj.RowNumber,
		ColumnNumber:  obj.ColumnNumber,
		ResaleCount:   obj.ResaleCount,
		IsCheckedIn:   obj.IsCheckedIn,
		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + ticketTableName + `
			(address, event_id, ticket_type_id, ticket_id, owner, original_owner, original_price, row_number, column_number, resale_count, is_checked_in, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id, address, event_id, ticket_type_id, ticket_id, owner, original_owner, original_price, row_number, column_number, resale_count, is_checked_in, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.EventId,
			m.TicketTypeId,
			m.TicketId,
			m.Owner,
			m.OriginalOwner,
			m.OriginalPrice,
			m.RowNumber,
			m.ColumnNumber,
			m.ResaleCount,
			m.IsCheckedIn,
			m.CreatedAt,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, ticket.ErrTicketAlreadyMinted)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + ticketTableName + `
			SET owner = $2, resale_count = $3, is_checked_in = $4, last_updated_at = $5
			WHERE address = $1
			RETURNING id, address, event_id, ticket_type_id, ticket_id, owner, original_owner, original_price, row_number, column_number, resale_count, is_checked_in, created_at, last_updated_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.Owner,
			m.ResaleCount,
			m.IsCheckedIn,
			m.LastUpdatedAt,
		).StructScan(m)

		return pgutil.CheckNoRows(err, ticket.ErrTicketNotFound)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	query := `SELECT id, address, event_id, ticket_type_id, ticket_id, owner, original_owner, original_price, row_number, column_number, resale_count, is_checked_in, created_at, last_updated_at
		FROM ` + ticketTableName + `
		WHERE address = $1`

	err := db.GetContext(ctx, res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, ticket.ErrTicketNotFound)
	}
	return res, nil
}

func dbGetAllByOwner(ctx context.Context, db *sqlx.DB, owner string, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query := `SELECT id, address, event_id, ticket_type_id, ticket_id, owner, original_owner, original_price, row_number, column_number, resale_count, is_checked_in, created_at, last_updated_at
		FROM ` + ticketTableName + `
		WHERE (owner = $1)
	`

	opts := []interface{}{owner}
	query, opts = q.PaginateQuery(query, opts, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, ticket.ErrTicketNotFound)
	}

	if len(res) == 0 {
		return nil, ticket.ErrTicketNotFound
	}
	return res, nil
}
