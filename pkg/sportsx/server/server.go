package server

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/database/query"
	"github.com/sportsx/sportsx-server/pkg/pointer"
	sync_util "github.com/sportsx/sportsx-server/pkg/sync"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"
)

// PointsIntegration is how the ticketing server reaches the fan points
// program. The implementation carries the ticketing program's identity, which
// the points program checks against its allowlist.
type PointsIntegration interface {
	UpdatePoints(ctx context.Context, wallet string, delta int64) error
}

// Server is the ticketing state machine: platform config, events, first
// sales, the escrow resale marketplace, and delegated check-in.
type Server struct {
	log  *logrus.Entry
	conf *conf
	data data.Provider

	points PointsIntegration

	// Negative cache in front of the used-nonce store. Test() == false
	// means the nonce was definitely never consumed by this process.
	nonceFilterMu sync.Mutex
	nonceFilter   *bloom.BloomFilter

	eventLocks  *sync_util.StripedLock
	ticketLocks *sync_util.StripedLock
}

func New(data data.Provider, points PointsIntegration, configProvider ConfigProvider) *Server {
	ctx := context.Background()

	conf := configProvider()

	stripedLockParallelization := uint(conf.stripedLockParallelization.Get(ctx))

	return &Server{
		log:  logrus.StandardLogger().WithField("type", "ticketing/server"),
		conf: conf,
		data: data,

		points: points,

		nonceFilter: bloom.NewWithEstimates(
			uint(conf.nonceFilterSize.Get(ctx)),
			conf.nonceFilterFalsePositiveRate.Get(ctx),
		),

		eventLocks:  sync_util.NewStripedLock(stripedLockParallelization),
		ticketLocks: sync_util.NewStripedLock(stripedLockParallelization),
	}
}

// InitializePlatformArgs are the immutable bootstrap parameters for the
// platform config.
type InitializePlatformArgs struct {
	FeeReceiver      *common.Account
	FeeAmountUsdc    uint64
	BackendAuthority *common.Account
	EventAdmin       *common.Account
	UpdateAuthority  *common.Account
}

// InitializePlatform creates the singleton platform config. It can only ever
// succeed once.
func (s *Server) InitializePlatform(ctx context.Context, args *InitializePlatformArgs) error {
	for _, account := range []*common.Account{
		args.FeeReceiver,
		args.BackendAuthority,
		args.EventAdmin,
		args.UpdateAuthority,
	} {
		if account == nil {
			return ErrPermissionDenied
		}
		if err := account.Validate(); err != nil {
			return err
		}
	}

	return s.data.CreatePlatformConfig(ctx, &platform.Record{
		FeeReceiver:      args.FeeReceiver.PublicKey().ToBase58(),
		FeeAmountUsdc:    args.FeeAmountUsdc,
		BackendAuthority: args.BackendAuthority.PublicKey().ToBase58(),
		EventAdmin:       args.EventAdmin.PublicKey().ToBase58(),
		UpdateAuthority:  args.UpdateAuthority.PublicKey().ToBase58(),
	})
}

// PlatformConfigUpdate selectively overwrites platform config fields. Nil
// fields are left untouched.
type PlatformConfigUpdate struct {
	FeeReceiver      *string
	FeeAmountUsdc    *uint64
	BackendAuthority *string
	EventAdmin       *string
}

// UpdatePlatformConfig applies a partial config update. Only the update
// authority may call this.
func (s *Server) UpdatePlatformConfig(ctx context.Context, caller *common.Account, update *PlatformConfigUpdate) error {
	log := s.log.WithField("method", "UpdatePlatformConfig")

	config, err := s.data.GetPlatformConfig(ctx)
	if err != nil {
		return err
	}

	if config.UpdateAuthority != caller.PublicKey().ToBase58() {
		return ErrPermissionDenied
	}

	config.FeeReceiver = *pointer.StringOrDefault(update.FeeReceiver, config.FeeReceiver)
	config.FeeAmountUsdc = *pointer.Uint64OrDefault(update.FeeAmountUsdc, config.FeeAmountUsdc)
	config.BackendAuthority = *pointer.StringOrDefault(update.BackendAuthority, config.BackendAuthority)
	config.EventAdmin = *pointer.StringOrDefault(update.EventAdmin, config.EventAdmin)

	if err := s.data.UpdatePlatformConfig(ctx, config); err != nil {
		log.WithError(err).Warn("failure updating platform config")
		return err
	}

	return nil
}

// TogglePause flips the platform pause flag. Only the update authority may
// call this.
func (s *Server) TogglePause(ctx context.Context, caller *common.Account) (bool, error) {
	config, err := s.data.GetPlatformConfig(ctx)
	if err != nil {
		return false, err
	}

	if config.UpdateAuthority != caller.PublicKey().ToBase58() {
		return false, ErrPermissionDenied
	}

	config.IsPaused = !config.IsPaused
	if err := s.data.UpdatePlatformConfig(ctx, config); err != nil {
		return false, err
	}

	return config.IsPaused, nil
}

// TransferAuthority hands the platform update authority to a new account.
func (s *Server) TransferAuthority(ctx context.Context, caller, newAuthority *common.Account) error {
	if err := newAuthority.Validate(); err != nil {
		return err
	}

	config, err := s.data.GetPlatformConfig(ctx)
	if err != nil {
		return err
	}

	if config.UpdateAuthority != caller.PublicKey().ToBase58() {
		return ErrPermissionDenied
	}

	config.UpdateAuthority = newAuthority.PublicKey().ToBase58()
	return s.data.UpdatePlatformConfig(ctx, config)
}

// GetPlatformConfig returns the current platform config.
func (s *Server) GetPlatformConfig(ctx context.Context) (*platform.Record, error) {
	return s.data.GetPlatformConfig(ctx)
}

// GetEvent returns the event record for an id.
func (s *Server) GetEvent(ctx context.Context, eventId string) (*event.Record, error) {
	return s.data.GetEvent(ctx, eventId)
}

// GetTicketStatus returns the ticket record for an address.
func (s *Server) GetTicketStatus(ctx context.Context, address string) (*ticket.Record, error) {
	return s.data.GetTicket(ctx, address)
}

// GetListing returns the active listing for a ticket address.
func (s *Server) GetListing(ctx context.Context, ticketAddress string) (*listing.Record, error) {
	return s.data.GetListingByTicket(ctx, ticketAddress)
}

// GetTicketsByOwner returns a page of tickets currently held by a wallet.
func (s *Server) GetTicketsByOwner(ctx context.Context, owner string, opts ...query.Option) ([]*ticket.Record, error) {
	return s.data.GetAllTicketsByOwner(ctx, owner, opts...)
}

// checkNonceUnused fails fast when a nonce was already consumed. The bloom
// filter only short-circuits the store lookup; a positive hit is always
// confirmed against the store because of false positives.
func (s *Server) checkNonceUnused(ctx context.Context, value uint64) error {
	s.nonceFilterMu.Lock()
	maybeUsed := s.nonceFilter.Test(nonceFilterKey(value))
	s.nonceFilterMu.Unlock()

	if !maybeUsed {
		return nil
	}

	_, err := s.data.GetUsedNonce(ctx, value)
	if err == nonce.ErrNonceNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return nonce.ErrNonceAlreadyUsed
}

func (s *Server) rememberNonce(value uint64) {
	s.nonceFilterMu.Lock()
	s.nonceFilter.Add(nonceFilterKey(value))
	s.nonceFilterMu.Unlock()
}

func nonceFilterKey(value uint64) []byte {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], value)
	return key[:]
}

func (s *Server) requireUnpaused(ctx context.Context) (*platform.Record, error) {
	config, err := s.data.GetPlatformConfig(ctx)
	if err != nil {
		return nil, err
	}

	if config.IsPaused {
		return nil, ErrPlatformPaused
	}
	return config, nil
}

// capFee bounds the platform fee so a cheap ticket never costs more than its
// price in fees.
func capFee(fee, price uint64) uint64 {
	if fee > price {
		return price
	}
	return fee
}

func (s *Server) backendAuthority(config *platform.Record) (*common.Account, error) {
	return common.NewAccountFromPublicKeyString(config.BackendAuthority)
}
