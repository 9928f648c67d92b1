package pof

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/metrics"
	sync_util "github.com/sportsx/sportsx-server/pkg/sync"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data"
	pof_data "github.com/sportsx/sportsx-server/pkg/sportsx/data/pof"
)

const (
	// DailyCheckinPoints is awarded for each successful daily check-in.
	DailyCheckinPoints = 10

	dailyCheckinCountMetricName = "Pof/daily_checkin_count"
	pointsUpdatedMetricName     = "Pof/points_updated_count"
)

var (
	// ErrNotAdmin is returned when a caller other than the points admin
	// attempts an admin operation.
	ErrNotAdmin = errors.New("caller is not the points admin")

	// ErrNotAuthorizedContract is returned when a program that isn't on
	// the allowlist attempts to move points.
	ErrNotAuthorizedContract = errors.New("caller is not an authorized contract")

	// ErrContractAlreadyAuthorized is returned when authorizing a program
	// that is already on the allowlist.
	ErrContractAlreadyAuthorized = errors.New("contract is already authorized")

	// ErrContractNotAuthorized is returned when revoking a program that
	// isn't on the allowlist.
	ErrContractNotAuthorized = errors.New("contract is not authorized")

	// ErrTooManyContracts is returned when the allowlist is full.
	ErrTooManyContracts = errors.New("authorized contract limit reached")

	// ErrCheckinTooSoon is returned when a wallet checks in before the
	// daily interval has elapsed.
	ErrCheckinTooSoon = errors.New("daily checkin interval has not elapsed")
)

// Service is the fan points program. Wallets accumulate points through
// purchases and check-ins, and only programs on an admin-managed allowlist
// may move points on a wallet's behalf.
type Service struct {
	log  *logrus.Entry
	conf *conf
	data data.Provider

	walletLocks *sync_util.StripedLock
}

func NewService(data data.Provider, configProvider ConfigProvider) *Service {
	ctx := context.Background()

	conf := configProvider()

	stripedLockParallelization := uint(conf.stripedLockParallelization.Get(ctx))

	return &Service{
		log:  logrus.StandardLogger().WithField("type", "pof/service"),
		conf: conf,
		data: data,

		walletLocks: sync_util.NewStripedLock(stripedLockParallelization),
	}
}

// Initialize creates the singleton program state with an empty allowlist.
func (s *Service) Initialize(ctx context.Context, admin *common.Account) error {
	if err := admin.Validate(); err != nil {
		return err
	}

	return s.data.CreatePointsState(ctx, &pof_data.StateRecord{
		Admin:               admin.PublicKey().ToBase58(),
		AuthorizedContracts: []string{},
	})
}

// AuthorizeContract adds a program to the allowlist of contracts that may
// move points.
func (s *Service) AuthorizeContract(ctx context.Context, caller *common.Account, contract string) error {
	log := s.log.WithFields(logrus.Fields{
		"method":   "AuthorizeContract",
		"contract": contract,
	})

	state, err := s.data.GetPointsState(ctx)
	if err != nil {
		return err
	}

	if state.Admin != caller.PublicKey().ToBase58() {
		return ErrNotAdmin
	}

	if state.IsAuthorized(contract) {
		return ErrContractAlreadyAuthorized
	}

	if len(state.AuthorizedContracts) >= pof_data.MaxAuthorizedContracts {
		return ErrTooManyContracts
	}

	state.AuthorizedContracts = append(state.AuthorizedContracts, contract)
	if err := s.data.UpdatePointsState(ctx, state); err != nil {
		log.WithError(err).Warn("failure updating points state")
		return err
	}

	return nil
}

// RevokeContract removes a program from the allowlist.
func (s *Service) RevokeContract(ctx context.Context, caller *common.Account, contract string) error {
	log := s.log.WithFields(logrus.Fields{
		"method":   "RevokeContract",
		"contract": contract,
	})

	state, err := s.data.GetPointsState(ctx)
	if err != nil {
		return err
	}

	if state.Admin != caller.PublicKey().ToBase58() {
		return ErrNotAdmin
	}

	if !state.IsAuthorized(contract) {
		return ErrContractNotAuthorized
	}

	contracts := make([]string, 0, len(state.AuthorizedContracts)-1)
	for _, authorized := range state.AuthorizedContracts {
		if authorized != contract {
			contracts = append(contracts, authorized)
		}
	}

	state.AuthorizedContracts = contracts
	if err := s.data.UpdatePointsState(ctx, state); err != nil {
		log.WithError(err).Warn("failure updating points state")
		return err
	}

	return nil
}

// InitializeWallet creates a zero-balance points record for a wallet.
func (s *Service) InitializeWallet(ctx context.Context, wallet *common.Account) error {
	if err := wallet.Validate(); err != nil {
		return err
	}

	return s.data.CreateWalletPoints(ctx, &pof_data.PointsRecord{
		Wallet: wallet.PublicKey().ToBase58(),
	})
}

// GetPoints returns the points balance for a wallet.
func (s *Service) GetPoints(ctx context.Context, wallet string) (uint64, error) {
	record, err := s.data.GetWalletPoints(ctx, wallet)
	if err != nil {
		return 0, err
	}
	return record.Points, nil
}

// canMovePoints reports whether a caller program may move wallet points. The
// admin bypasses the allowlist; everyone else must be on it.
func canMovePoints(state *pof_data.StateRecord, callerProgram string) bool {
	return state.Admin == callerProgram || state.IsAuthorized(callerProgram)
}

// UpdatePoints applies a signed delta to a wallet's points on behalf of an
// authorized program. The caller is the program identity, not the wallet.
func (s *Service) UpdatePoints(ctx context.Context, callerProgram, wallet string, delta int64) error {
	log := s.log.WithFields(logrus.Fields{
		"method": "UpdatePoints",
		"caller": callerProgram,
		"wallet": wallet,
		"delta":  delta,
	})

	state, err := s.data.GetPointsState(ctx)
	if err != nil {
		return err
	}

	if !canMovePoints(state, callerProgram) {
		return ErrNotAuthorizedContract
	}

	lock := s.walletLocks.Get([]byte(wallet))
	lock.Lock()
	defer lock.Unlock()

	if err := s.data.AddWalletPoints(ctx, wallet, delta); err != nil {
		log.WithError(err).Warn("failure applying points delta")
		return err
	}

	metrics.RecordCount(ctx, pointsUpdatedMetricName, 1)

	return nil
}

// InitializeCheckin creates the daily check-in record for a wallet.
func (s *Service) InitializeCheckin(ctx context.Context, wallet *common.Account) error {
	if err := wallet.Validate(); err != nil {
		return err
	}

	return s.data.CreateDailyCheckin(ctx, &pof_data.CheckinRecord{
		Wallet: wallet.PublicKey().ToBase58(),
	})
}

// DailyCheckin awards DailyCheckinPoints to a wallet at most once per
// configured interval.
func (s *Service) DailyCheckin(ctx context.Context, wallet *common.Account) error {
	log := s.log.WithField("method", "DailyCheckin")

	if err := wallet.Validate(); err != nil {
		return err
	}
	walletAddress := wallet.PublicKey().ToBase58()
	log = log.WithField("wallet", walletAddress)

	// The award is credited by the check-in ledger's derived identity, which
	// must pass the same gate as any other contract moving points.
	state, err := s.data.GetPointsState(ctx)
	if err != nil {
		return err
	}
	if !canMovePoints(state, common.GetCheckinAuthority().PublicKey().ToBase58()) {
		return ErrNotAuthorizedContract
	}

	lock := s.walletLocks.Get(wallet.PublicKey().ToBytes())
	lock.Lock()
	defer lock.Unlock()

	record, err := s.data.GetDailyCheckin(ctx, walletAddress)
	if err != nil {
		return err
	}

	now := time.Now()
	interval := s.conf.dailyCheckinInterval.Get(ctx)
	if !record.LastCheckin.IsZero() && now.Sub(record.LastCheckin) < interval {
		return ErrCheckinTooSoon
	}

	record.LastCheckin = now
	record.TotalCheckins++

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		if err := s.data.UpdateDailyCheckin(ctx, record); err != nil {
			return err
		}
		return s.data.AddWalletPoints(ctx, walletAddress, DailyCheckinPoints)
	})
	if err != nil {
		log.WithError(err).Warn("failure processing daily checkin")
		return err
	}

	metrics.RecordCount(ctx, dailyCheckinCountMetricName, 1)

	return nil
}

// GetCheckinInfo returns the daily check-in record for a wallet.
func (s *Service) GetCheckinInfo(ctx context.Context, wallet string) (*pof_data.CheckinRecord, error) {
	return s.data.GetDailyCheckin(ctx, wallet)
}
