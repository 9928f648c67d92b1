package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	pg "github.com/sportsx/sportsx-server/pkg/database/postgres"
	"github.com/sportsx/sportsx-server/pkg/database/query"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/balance"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/pof"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"

	balance_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/balance/memory"
	checkin_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin/memory"
	event_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/event/memory"
	listing_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/listing/memory"
	nonce_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce/memory"
	platform_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/platform/memory"
	pof_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/pof/memory"
	ticket_memory_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket/memory"

	balance_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/balance/postgres"
	checkin_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin/postgres"
	event_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/event/postgres"
	listing_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/listing/postgres"
	nonce_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce/postgres"
	platform_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/platform/postgres"
	pof_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/pof/postgres"
	ticket_postgres_client "github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket/postgres"
)

type Provider interface {
	// Platform Config
	// --------------------------------------------------------------------------------
	CreatePlatformConfig(ctx context.Context, record *platform.Record) error
	GetPlatformConfig(ctx context.Context) (*platform.Record, error)
	UpdatePlatformConfig(ctx context.Context, record *platform.Record) error

	// Used Nonces
	// --------------------------------------------------------------------------------
	MarkNonceUsed(ctx context.Context, record *nonce.Record) error
	GetUsedNonce(ctx context.Context, value uint64) (*nonce.Record, error)
	GetUsedNonceCount(ctx context.Context) (uint64, error)
	DeleteUsedNoncesBefore(ctx context.Context, t time.Time) (uint64, error)

	// Events
	// --------------------------------------------------------------------------------
	CreateEvent(ctx context.Context, record *event.Record) error
	GetEvent(ctx context.Context, eventId string) (*event.Record, error)
	UpdateEvent(ctx context.Context, record *event.Record) error
	GetAllEventsByOrganizer(ctx context.Context, organizer string) ([]*event.Record, error)

	// Check-in Authorities
	// --------------------------------------------------------------------------------
	CreateCheckinAuthority(ctx context.Context, record *checkin.Record) error
	GetCheckinAuthority(ctx context.Context, eventId, operator string) (*checkin.Record, error)
	UpdateCheckinAuthority(ctx context.Context, record *checkin.Record) error
	GetAllCheckinAuthoritiesByEvent(ctx context.Context, eventId string) ([]*checkin.Record, error)

	// Tickets
	// --------------------------------------------------------------------------------
	CreateTicket(ctx context.Context, record *ticket.Record) error
	GetTicket(ctx context.Context, address string) (*ticket.Record, error)
	UpdateTicket(ctx context.Context, record *ticket.Record) error
	GetAllTicketsByOwner(ctx context.Context, owner string, opts ...query.Option) ([]*ticket.Record, error)

	// Listings
	// --------------------------------------------------------------------------------
	CreateListing(ctx context.Context, record *listing.Record) error
	GetListingByTicket(ctx context.Context, ticketAddress string) (*listing.Record, error)
	DeleteListing(ctx context.Context, ticketAddress string) error
	GetAllListingsBySeller(ctx context.Context, seller string) ([]*listing.Record, error)

	// Token Balances
	// --------------------------------------------------------------------------------
	CreateTokenAccount(ctx context.Context, record *balance.Record) error
	GetTokenAccount(ctx context.Context, tokenAccount string) (*balance.Record, error)
	DepositFunds(ctx context.Context, tokenAccount string, amount uint64) error
	TransferFunds(ctx context.Context, source, destination string, amount uint64) error

	// Proof of Fan
	// --------------------------------------------------------------------------------
	CreatePointsState(ctx context.Context, record *pof.StateRecord) error
	GetPointsState(ctx context.Context) (*pof.StateRecord, error)
	UpdatePointsState(ctx context.Context, record *pof.StateRecord) error
	CreateWalletPoints(ctx context.Context, record *pof.PointsRecord) error
	GetWalletPoints(ctx context.Context, wallet string) (*pof.PointsRecord, error)
	AddWalletPoints(ctx context.Context, wallet string, delta int64) error
	CreateDailyCheckin(ctx context.Context, record *pof.CheckinRecord) error
	GetDailyCheckin(ctx context.Context, wallet string) (*pof.CheckinRecord, error)
	UpdateDailyCheckin(ctx context.Context, record *pof.CheckinRecord) error

	// ExecuteInTx executes fn with a single DB transaction that is scoped to the call.
	// The stores called within fn join the transaction through the context, so a
	// failure anywhere rolls back every write.
	ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error
}

type DatabaseProvider struct {
	platform platform.Store
	nonces   nonce.Store
	events   event.Store
	checkins checkin.Store
	tickets  ticket.Store
	listings listing.Store
	balances balance.Store
	pof      pof.Store

	db *sqlx.DB
}

func NewDatabaseProvider(dbConfig *pg.Config) (Provider, error) {
	db, err := pg.NewWithUsernameAndPassword(
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		fmt.Sprint(dbConfig.Port),
		dbConfig.DbName,
	)
	if err != nil {
		return nil, err
	}

	if dbConfig.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	}
	if dbConfig.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	}
	db.SetConnMaxIdleTime(time.Hour)
	db.SetConnMaxLifetime(time.Hour)

	return &DatabaseProvider{
		platform: platform_postgres_client.New(db),
		nonces:   nonce_postgres_client.New(db),
		events:   event_postgres_client.New(db),
		checkins: checkin_postgres_client.New(db),
		tickets:  ticket_postgres_client.New(db),
		listings: listing_postgres_client.New(db),
		balances: balance_postgres_client.New(db),
		pof:      pof_postgres_client.New(db),

		db: sqlx.NewDb(db, "pgx"),
	}, nil
}

func NewTestDataProvider() Provider {
	return &DatabaseProvider{
		platform: platform_memory_client.New(),
		nonces:   nonce_memory_client.New(),
		events:   event_memory_client.New(),
		checkins: checkin_memory_client.New(),
		tickets:  ticket_memory_client.New(),
		listings: listing_memory_client.New(),
		balances: balance_memory_client.New(),
		pof:      pof_memory_client.New(),
	}
}

func (dp *DatabaseProvider) ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if dp.db == nil {
		return fn(ctx)
	}

	return pg.ExecuteTxWithinCtx(ctx, dp.db, isolation, fn)
}

// Platform Config
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreatePlatformConfig(ctx context.Context, record *platform.Record) error {
	return dp.platform.Put(ctx, record)
}
func (dp *DatabaseProvider) GetPlatformConfig(ctx context.Context) (*platform.Record, error) {
	return dp.platform.Get(ctx)
}
func (dp *DatabaseProvider) UpdatePlatformConfig(ctx context.Context, record *platform.Record) error {
	return dp.platform.Update(ctx, record)
}

// Used Nonces
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) MarkNonceUsed(ctx context.Context, record *nonce.Record) error {
	return dp.nonces.Put(ctx, record)
}
func (dp *DatabaseProvider) GetUsedNonce(ctx context.Context, value uint64) (*nonce.Record, error) {
	return dp.nonces.Get(ctx, value)
}
func (dp *DatabaseProvider) GetUsedNonceCount(ctx context.Context) (uint64, error) {
	return dp.nonces.Count(ctx)
}
func (dp *DatabaseProvider) DeleteUsedNoncesBefore(ctx context.Context, t time.Time) (uint64, error) {
	return dp.nonces.DeleteBefore(ctx, t)
}

// Events
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateEvent(ctx context.Context, record *event.Record) error {
	return dp.events.Put(ctx, record)
}
func (dp *DatabaseProvider) GetEvent(ctx context.Context, eventId string) (*event.Record, error) {
	return dp.events.Get(ctx, eventId)
}
func (dp *DatabaseProvider) UpdateEvent(ctx context.Context, record *event.Record) error {
	return dp.events.Update(ctx, record)
}
func (dp *DatabaseProvider) GetAllEventsByOrganizer(ctx context.Context, organizer string) ([]*event.Record, error) {
	return dp.events.GetAllByOrganizer(ctx, organizer)
}

// Check-in Authorities
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateCheckinAuthority(ctx context.Context, record *checkin.Record) error {
	return dp.checkins.Put(ctx, record)
}
func (dp *DatabaseProvider) GetCheckinAuthority(ctx context.Context, eventId, operator string) (*checkin.Record, error) {
	return dp.checkins.Get(ctx, eventId, operator)
}
func (dp *DatabaseProvider) UpdateCheckinAuthority(ctx context.Context, record *checkin.Record) error {
	return dp.checkins.Update(ctx, record)
}
func (dp *DatabaseProvider) GetAllCheckinAuthoritiesByEvent(ctx context.Context, eventId string) ([]*checkin.Record, error) {
	return dp.checkins.GetAllByEvent(ctx, eventId)
}

// Tickets
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateTicket(ctx context.Context, record *ticket.Record) error {
	return dp.tickets.Put(ctx, record)
}
func (dp *DatabaseProvider) GetTicket(ctx context.Context, address string) (*ticket.Record, error) {
	return dp.tickets.Get(ctx, address)
}
func (dp *DatabaseProvider) UpdateTicket(ctx context.Context, record *ticket.Record) error {
	return dp.tickets.Update(ctx, record)
}
func (dp *DatabaseProvider) GetAllTicketsByOwner(ctx context.Context, owner string, opts ...query.Option) ([]*ticket.Record, error) {
	req, err := query.DefaultPaginationHandler(opts...)
	if err != nil {
		return nil, err
	}

	return dp.tickets.GetAllByOwner(ctx, owner, req.Cursor, req.Limit, req.SortBy)
}

// Listings
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateListing(ctx context.Context, record *listing.Record) error {
	return dp.listings.Put(ctx, record)
}
func (dp *DatabaseProvider) GetListingByTicket(ctx context.Context, ticketAddress string) (*listing.Record, error) {
	return dp.listings.GetByTicket(ctx, ticketAddress)
}
func (dp *DatabaseProvider) DeleteListing(ctx context.Context, ticketAddress string) error {
	return dp.listings.Delete(ctx, ticketAddress)
}
func (dp *DatabaseProvider) GetAllListingsBySeller(ctx context.Context, seller string) ([]*listing.Record, error) {
	return dp.listings.GetAllBySeller(ctx, seller)
}

// Token Balances
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateTokenAccount(ctx context.Context, record *balance.Record) error {
	return dp.balances.Put(ctx, record)
}
func (dp *DatabaseProvider) GetTokenAccount(ctx context.Context, tokenAccount string) (*balance.Record, error) {
	return dp.balances.Get(ctx, tokenAccount)
}
func (dp *DatabaseProvider) DepositFunds(ctx context.Context, tokenAccount string, amount uint64) error {
	return dp.balances.Deposit(ctx, tokenAccount, amount)
}
func (dp *DatabaseProvider) TransferFunds(ctx context.Context, source, destination string, amount uint64) error {
	return dp.balances.Transfer(ctx, source, destination, amount)
}

// Proof of Fan
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreatePointsState(ctx context.Context, record *pof.StateRecord) error {
	return dp.pof.PutState(ctx, record)
}
func (dp *DatabaseProvider) GetPointsState(ctx context.Context) (*pof.StateRecord, error) {
	return dp.pof.GetState(ctx)
}
func (dp *DatabaseProvider) UpdatePointsState(ctx context.Context, record *pof.StateRecord) error {
	return dp.pof.UpdateState(ctx, record)
}
func (dp *DatabaseProvider) CreateWalletPoints(ctx context.Context, record *pof.PointsRecord) error {
	return dp.pof.PutPoints(ctx, record)
}
func (dp *DatabaseProvider) GetWalletPoints(ctx context.Context, wallet string) (*pof.PointsRecord, error) {
	return dp.pof.GetPoints(ctx, wallet)
}
func (dp *DatabaseProvider) AddWalletPoints(ctx context.Context, wallet string, delta int64) error {
	return dp.pof.AddPoints(ctx, wallet, delta)
}
func (dp *DatabaseProvider) CreateDailyCheckin(ctx context.Context, record *pof.CheckinRecord) error {
	return dp.pof.PutCheckin(ctx, record)
}
func (dp *DatabaseProvider) GetDailyCheckin(ctx context.Context, wallet string) (*pof.CheckinRecord, error) {
	return dp.pof.GetCheckin(ctx, wallet)
}
func (dp *DatabaseProvider) UpdateDailyCheckin(ctx context.Context, record *pof.CheckinRecord) error {
	return dp.pof.UpdateCheckin(ctx, record)
}
