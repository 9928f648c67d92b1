package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"

	pgutil "github.com/sportsx/sportsx-server/pkg/database/postgres"
)

const (
	eventTableName = "sportsx__core_event"
)

type model struct {
	Id                   sql.NullInt64 `db:"id"`
	EventId              string        `db:"event_id"`
	Name                 string        `db:"name"`
	Symbol               string        `db:"symbol"`
	Organizer            string        `db:"organizer"`
	MetadataUri          string        `db:"metadata_uri"`
	StartTime            time.Time     `db:"start_time"`
	EndTime              time.Time     `db:"end_time"`
	TicketReleaseTime    time.Time     `db:"ticket_release_time"`
	StopSaleBeforeSecs   int64         `db:"stop_sale_before_secs"`
	CheckinAvailableFrom sql.NullTime  `db:"checkin_available_from"`
	ResaleFeeBps         uint16        `db:"resale_fee_bps"`
	MaxResaleTimes       uint8         `db:"max_resale_times"`
	StrictPoints         bool          `db:"strict_points"`
	Status               uint8         `db:"status"`
	CreatedAt            time.Time     `db:"created_at"`
}

func toModel(obj *event.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	createdAt := obj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &model{
		EventId:            obj.EventId,
		Name:               obj.Name,
		Symbol:             obj.Symbol,
		Organizer:          obj.Organizer,
		MetadataUri:        obj.MetadataUri,
		StartTime:          obj.StartTime,
		EndTime:            obj.EndTime,
		TicketReleaseTime:  obj.TicketReleaseTime,
		StopSaleBeforeSecs: int64(obj.StopSaleBefore / time.Second),
		CheckinAvailableFrom: sql.NullTime{
			Time:  obj.CheckinAvailableFrom,
			Valid: !obj.CheckinAvailableFrom.IsZero(),
		},
		ResaleFeeBps:   obj.ResaleFeeBps,
		MaxResaleTimes: obj.MaxResaleTimes,
		StrictPoints:   obj.StrictPoints,
		Status:         uint8(obj.Status),
		CreatedAt:      createdAt,
	}, nil
}

func fromModel(obj *model) *event.Record {
	var checkinAvailableFrom time.Time
	if obj.CheckinAvailableFrom.Valid {
		checkinAvailableFrom = obj.CheckinAvailableFrom.Time
	}

	return &event.Record{
		Id:                   uint64(obj.Id.Int64),
		EventId:              obj.EventId,
		Name:                 obj.Name,
		Symbol:               obj.Symbol,
		Organizer:            obj.Organizer,
		MetadataUri:          obj.MetadataUri,
		StartTime:            obj.StartTime,
		EndTime:              obj.EndTime,
		TicketReleaseTime:    obj.TicketReleaseTime,
		StopSaleBefore:       time.Duration(obj.StopSaleBeforeSecs) * time.Second,
		CheckinAvailableFrom: checkinAvailableFrom,
		ResaleFeeBps:         obj.ResaleFeeBps,
		MaxResaleTimes:       obj.MaxResaleTimes,
		StrictPoints:         obj.StrictPoints,
		Status:               event.Status(obj.Status),
		CreatedAt:            obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + eventTableName + `
			(event_id, name, symbol, organizer, metadata_uri, start_time, end_time, ticket_release_time, stop_sale_before_secs, checkin_available_from, resale_fee_bps, max_resale_times, strict_points, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id, event_id, name, symbol, organizer, metadata_uri, start_time, end_time, ticket_release_time, stop_sale_before_secs, checkin_available_from, resale_fee_bps, max_resale_times, strict_points, status, created_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.EventId,
			m.Name,
			m.Symbol,
			m.Organizer,
			m.MetadataUri,
			m.StartTime,
			m.EndTime,
			m.TicketReleaseTime,
			m.StopSaleBeforeSecs,
			m.CheckinAvailableFrom,
			m.ResaleFeeBps,
			m.MaxResaleTimes,
			m.StrictPoints,
			m.Status,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, event.ErrEventExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + eventTableName + `
			SET name = $2, symbol = $3, metadata_uri = $4, start_time = $5, end_time = $6, ticket_release_time = $7, stop_sale_before_secs = $8, checkin_available_from = $9, resale_fee_bps = $10, max_resale_times = $11, strict_points = $12, status = $13
			WHERE event_id = $1
			RETURNING id, event_id, name, symbol, organizer, metadata_uri, start_time, end_time, ticket_release_time, stop_sale_before_secs, checkin_available_from, resale_fee_bps, max_resale_times, strict_points, status, created_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.EventId,
			m.Name,
			m.Symbol,
			m.MetadataUri,
			m.StartTime,
			m.EndTime,
			m.TicketReleaseTime,
			m.StopSaleBeforeSecs,
			m.CheckinAvailableFrom,
			m.ResaleFeeBps,
			m.MaxResaleTimes,
			m.StrictPoints,
			m.Status,
		).StructScan(m)

		return pgutil.CheckNoRows(err, event.ErrEventNotFound)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, eventId string) (*model, error) {
	res := &model{}

	query := `SELECT id, event_id, name, symbol, organizer, metadata_uri, start_time, end_time, ticket_release_time, stop_sale_before_secs, checkin_available_from, resale_fee_bps, max_resale_times, strict_points, status, created_at
		FROM ` + eventTableName + `
		WHERE event_id = $1`

	err := db.GetContext(ctx, res, query, eventId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	return res, nil
}

func dbGetAllByOrganizer(ctx context.Context, db *sqlx.DB, organizer string) ([]*model, error) {
	res := []*model{}

	query := `SELECT id, event_id, name, symbol, organizer, metadata_uri, start_time, end_time, ticket_release_time, stop_sale_before_secs, checkin_available_from, resale_fee_bps, max_resale_times, strict_points, status, created_at
		FROM ` + eventTableName + `
		WHERE organizer = $1
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query, organizer)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}

	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}
