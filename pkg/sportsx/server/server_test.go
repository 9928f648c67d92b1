package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/database/query"
	"github.com/sportsx/sportsx-server/pkg/pointer"
	"github.com/sportsx/sportsx-server/pkg/testutil"

	"github.com/sportsx/sportsx-server/pkg/sportsx/auth"
	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/balance"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"
	"github.com/sportsx/sportsx-server/pkg/sportsx/pof"
)

const testPlatformFee = 100_000 // 0.1 USDC

type testEnv struct {
	ctx  context.Context
	data data.Provider

	server     *Server
	pofService *pof.Service

	updateAuthority *common.Account
	backend         *common.Account
	eventAdmin      *common.Account
	feeReceiver     *common.Account
	organizer       *common.Account
}

func setup(t *testing.T) *testEnv {
	ctx := context.Background()

	db := data.NewTestDataProvider()

	updateAuthority := testutil.NewRandomAccount(t)
	backend := testutil.NewRandomAccount(t)
	eventAdmin := testutil.NewRandomAccount(t)
	feeReceiver := testutil.NewRandomAccount(t)
	organizer := testutil.NewRandomAccount(t)
	pofAdmin := testutil.NewRandomAccount(t)

	pofService := pof.NewService(db, pof.WithEnvConfigs())
	require.NoError(t, pofService.Initialize(ctx, pofAdmin))
	ticketCaller := common.GetTicketAuthority().PublicKey().ToBase58()
	require.NoError(t, pofService.AuthorizeContract(ctx, pofAdmin, ticketCaller))

	server := New(db, pofService.ContractClient(ticketCaller), withManualTestOverrides(&testOverrides{}))

	require.NoError(t, server.InitializePlatform(ctx, &InitializePlatformArgs{
		FeeReceiver:      feeReceiver,
		FeeAmountUsdc:    testPlatformFee,
		BackendAuthority: backend,
		EventAdmin:       eventAdmin,
		UpdateAuthority:  updateAuthority,
	}))

	env := &testEnv{
		ctx:  ctx,
		data: db,

		server:     server,
		pofService: pofService,

		updateAuthority: updateAuthority,
		backend:         backend,
		eventAdmin:      eventAdmin,
		feeReceiver:     feeReceiver,
		organizer:       organizer,
	}

	env.createTokenAccount(t, feeReceiver, 0)
	env.createTokenAccount(t, organizer, 0)

	return env
}

func (env *testEnv) createTokenAccount(t *testing.T, owner *common.Account, amount uint64) {
	require.NoError(t, env.data.CreateTokenAccount(env.ctx, &balance.Record{
		TokenAccount: owner.PublicKey().ToBase58(),
		Owner:        owner.PublicKey().ToBase58(),
		Amount:       amount,
	}))
}

func (env *testEnv) newFundedBuyer(t *testing.T, amount uint64) *common.Account {
	buyer := testutil.NewRandomAccount(t)

	env.createTokenAccount(t, buyer, amount)
	require.NoError(t, env.pofService.InitializeWallet(env.ctx, buyer))

	return buyer
}

func (env *testEnv) defaultEventArgs(eventId string) *CreateEventArgs {
	start := time.Now().Add(2 * time.Hour)
	return &CreateEventArgs{
		EventId:           eventId,
		Name:              "Championship Finals",
		Symbol:            "FIN",
		Organizer:         env.organizer,
		MetadataUri:       "https://example.com/" + eventId + ".json",
		StartTime:         start,
		EndTime:           start.Add(4 * time.Hour),
		TicketReleaseTime: time.Now().Add(-time.Hour),
		StopSaleBefore:    30 * time.Minute,
		ResaleFeeBps:      250,
		MaxResaleTimes:    3,
	}
}

func (env *testEnv) signedAuthorization(t *testing.T, buyer *common.Account, maxPrice, nonceValue uint64, ticketAccount *common.Account) (*auth.Authorization, []byte) {
	authz := &auth.Authorization{
		Buyer:        buyer,
		TicketTypeId: "ga",
		MaxPrice:     maxPrice,
		ValidUntil:   time.Now().Add(5 * time.Minute),
		Nonce:        nonceValue,
		Ticket:       ticketAccount,
	}

	signature, err := authz.SignedBy(env.backend)
	require.NoError(t, err)

	return authz, signature
}

func (env *testEnv) purchaseTicket(t *testing.T, buyer *common.Account, eventId string, price, nonceValue uint64) *ticket.Record {
	authz, signature := env.signedAuthorization(t, buyer, price, nonceValue, nil)

	record, err := env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  eventId,
		TicketId: uuid.New(),
		Price:    price,
	})
	require.NoError(t, err)

	return record
}

func (env *testEnv) assertBalance(t *testing.T, owner *common.Account, expected uint64) {
	record, err := env.data.GetTokenAccount(env.ctx, owner.PublicKey().ToBase58())
	require.NoError(t, err)
	assert.EqualValues(t, expected, record.Amount)
}

func (env *testEnv) assertPoints(t *testing.T, owner *common.Account, expected uint64) {
	points, err := env.pofService.GetPoints(env.ctx, owner.PublicKey().ToBase58())
	require.NoError(t, err)
	assert.EqualValues(t, expected, points)
}

func TestInitializePlatform_Once(t *testing.T) {
	env := setup(t)

	err := env.server.InitializePlatform(env.ctx, &InitializePlatformArgs{
		FeeReceiver:      env.feeReceiver,
		FeeAmountUsdc:    testPlatformFee,
		BackendAuthority: env.backend,
		EventAdmin:       env.eventAdmin,
		UpdateAuthority:  env.updateAuthority,
	})
	assert.Equal(t, platform.ErrAlreadyInitialized, err)

	config, err := env.server.GetPlatformConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, env.feeReceiver.PublicKey().ToBase58(), config.FeeReceiver)
	assert.EqualValues(t, testPlatformFee, config.FeeAmountUsdc)
	assert.False(t, config.IsPaused)
}

func TestUpdatePlatformConfig_AuthorityGated(t *testing.T) {
	env := setup(t)

	newFeeReceiver := testutil.NewRandomAccount(t)

	update := &PlatformConfigUpdate{
		FeeReceiver:   pointer.String(newFeeReceiver.PublicKey().ToBase58()),
		FeeAmountUsdc: pointer.Uint64(250_000),
	}

	err := env.server.UpdatePlatformConfig(env.ctx, env.organizer, update)
	assert.Equal(t, ErrPermissionDenied, err)

	require.NoError(t, env.server.UpdatePlatformConfig(env.ctx, env.updateAuthority, update))

	config, err := env.server.GetPlatformConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, newFeeReceiver.PublicKey().ToBase58(), config.FeeReceiver)
	assert.EqualValues(t, 250_000, config.FeeAmountUsdc)

	// Untouched fields survive partial updates
	assert.Equal(t, env.backend.PublicKey().ToBase58(), config.BackendAuthority)
	assert.Equal(t, env.eventAdmin.PublicKey().ToBase58(), config.EventAdmin)
}

func TestTransferAuthority(t *testing.T) {
	env := setup(t)

	newAuthority := testutil.NewRandomAccount(t)

	err := env.server.TransferAuthority(env.ctx, env.organizer, newAuthority)
	assert.Equal(t, ErrPermissionDenied, err)

	require.NoError(t, env.server.TransferAuthority(env.ctx, env.updateAuthority, newAuthority))

	// The old authority is locked out immediately
	_, err = env.server.TogglePause(env.ctx, env.updateAuthority)
	assert.Equal(t, ErrPermissionDenied, err)

	paused, err := env.server.TogglePause(env.ctx, newAuthority)
	require.NoError(t, err)
	assert.True(t, paused)
}

func TestCreateEvent_Validation(t *testing.T) {
	env := setup(t)

	args := env.defaultEventArgs("finals-2026")

	_, err := env.server.CreateEvent(env.ctx, env.organizer, args)
	assert.Equal(t, ErrPermissionDenied, err)

	args.EventId = "this-event-id-is-way-too-long-to-be-valid"
	_, err = env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	assert.Equal(t, ErrInvalidEventId, err)

	args.EventId = "finals-2026"
	args.MetadataUri = "http://example.com/finals.json"
	_, err = env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	assert.Equal(t, ErrInvalidMetadataUri, err)

	args.MetadataUri = "ipfs://QmFinals2026"
	created, err := env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)
	assert.Equal(t, event.StatusActive, created.Status)

	_, err = env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	assert.Equal(t, event.ErrEventExists, err)
}

func TestUpdateEventStatus_OneDirectional(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	err = env.server.UpdateEventStatus(env.ctx, env.eventAdmin, "finals-2026", event.StatusCancelled)
	assert.Equal(t, ErrPermissionDenied, err)

	require.NoError(t, env.server.UpdateEventStatus(env.ctx, env.organizer, "finals-2026", event.StatusCancelled))

	// No un-cancelling
	err = env.server.UpdateEventStatus(env.ctx, env.organizer, "finals-2026", event.StatusActive)
	assert.Equal(t, ErrInvalidStatusTransition, err)
}

func TestPurchaseTicket_HappyPath(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	price := uint64(50_000_000) // 50 USDC
	buyer := env.newFundedBuyer(t, price)

	record := env.purchaseTicket(t, buyer, "finals-2026", price, 1)

	assert.Equal(t, buyer.PublicKey().ToBase58(), record.Owner)
	assert.Equal(t, buyer.PublicKey().ToBase58(), record.OriginalOwner)
	assert.EqualValues(t, price, record.OriginalPrice)
	assert.EqualValues(t, 0, record.ResaleCount)
	assert.False(t, record.IsCheckedIn)

	env.assertBalance(t, buyer, 0)
	env.assertBalance(t, env.feeReceiver, testPlatformFee)
	env.assertBalance(t, env.organizer, price-testPlatformFee)

	// 50 USDC earns floor(50 / 10) = 5 points
	env.assertPoints(t, buyer, 5)

	stored, err := env.server.GetTicketStatus(env.ctx, record.Address)
	require.NoError(t, err)
	assert.Equal(t, record.TicketId, stored.TicketId)
}

func TestPurchaseTicket_NonceReplay(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 100_000_000)

	env.purchaseTicket(t, buyer, "finals-2026", 50_000_000, 7)

	authz, signature := env.signedAuthorization(t, buyer, 50_000_000, 7, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	assert.Equal(t, nonce.ErrNonceAlreadyUsed, err)
}

func TestPurchaseTicket_AuthorizationChecks(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 100_000_000)
	args := &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	}

	// Signature from a key other than the backend authority
	authz, _ := env.signedAuthorization(t, buyer, 50_000_000, 1, nil)
	badSignature, err := authz.SignedBy(env.organizer)
	require.NoError(t, err)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, badSignature, args)
	assert.Equal(t, auth.ErrInvalidSignature, err)

	// Expired authorization
	authz, _ = env.signedAuthorization(t, buyer, 50_000_000, 2, nil)
	authz.ValidUntil = time.Now().Add(-time.Minute)
	signature, err := authz.SignedBy(env.backend)
	require.NoError(t, err)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, args)
	assert.Equal(t, ErrAuthorizationExpired, err)

	// Submitted by a wallet other than the authorized buyer
	other := env.newFundedBuyer(t, 100_000_000)
	authz, signature = env.signedAuthorization(t, buyer, 50_000_000, 3, nil)
	_, err = env.server.PurchaseTicket(env.ctx, other, authz, signature, args)
	assert.Equal(t, ErrBuyerMismatch, err)

	// Price above the authorized ceiling
	authz, signature = env.signedAuthorization(t, buyer, 40_000_000, 4, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, args)
	assert.Equal(t, ErrPriceExceedsMax, err)
}

func TestPurchaseTicket_SaleWindow(t *testing.T) {
	env := setup(t)

	buyer := env.newFundedBuyer(t, 200_000_000)

	// Sale hasn't opened yet
	args := env.defaultEventArgs("early")
	args.TicketReleaseTime = time.Now().Add(time.Hour)
	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	authz, signature := env.signedAuthorization(t, buyer, 50_000_000, 1, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "early",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	assert.Equal(t, ErrSaleNotStarted, err)

	// Too close to the event start
	args = env.defaultEventArgs("late")
	args.StartTime = time.Now().Add(10 * time.Minute)
	args.EndTime = args.StartTime.Add(4 * time.Hour)
	_, err = env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	authz, signature = env.signedAuthorization(t, buyer, 50_000_000, 2, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "late",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	assert.Equal(t, ErrSaleEnded, err)

	// Cancelled event
	_, err = env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("cancelled"))
	require.NoError(t, err)
	require.NoError(t, env.server.UpdateEventStatus(env.ctx, env.organizer, "cancelled", event.StatusCancelled))

	authz, signature = env.signedAuthorization(t, buyer, 50_000_000, 3, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "cancelled",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	assert.Equal(t, ErrEventNotActive, err)
}

func TestPurchaseTicket_Paused(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 100_000_000)

	_, err = env.server.TogglePause(env.ctx, env.updateAuthority)
	require.NoError(t, err)

	authz, signature := env.signedAuthorization(t, buyer, 50_000_000, 1, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	assert.Equal(t, ErrPlatformPaused, err)

	// Unpause and the same authorization goes through
	_, err = env.server.TogglePause(env.ctx, env.updateAuthority)
	require.NoError(t, err)

	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	require.NoError(t, err)
}

func TestPurchaseTicket_InsufficientFunds(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 1_000_000)

	authz, signature := env.signedAuthorization(t, buyer, 50_000_000, 1, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	assert.Equal(t, balance.ErrInsufficientFunds, err)
}

func TestPurchaseTicket_FeeCappedAtPrice(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	// Ticket cheaper than the flat platform fee
	price := uint64(50_000)
	buyer := env.newFundedBuyer(t, price)

	env.purchaseTicket(t, buyer, "finals-2026", price, 1)

	env.assertBalance(t, buyer, 0)
	env.assertBalance(t, env.feeReceiver, price)
	env.assertBalance(t, env.organizer, 0)
}

func TestMarketplace_ListBuyFlow(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	originalPrice := uint64(50_000_000)
	seller := env.newFundedBuyer(t, originalPrice)
	record := env.purchaseTicket(t, seller, "finals-2026", originalPrice, 1)

	resalePrice := uint64(60_000_000)
	listingRecord, err := env.server.ListTicket(env.ctx, seller, record.Address, resalePrice)
	require.NoError(t, err)
	assert.Equal(t, seller.PublicKey().ToBase58(), listingRecord.Seller)

	// Custody moved to the escrow authority
	held, err := env.server.GetTicketStatus(env.ctx, record.Address)
	require.NoError(t, err)
	assert.Equal(t, common.GetEscrowAuthority().PublicKey().ToBase58(), held.Owner)

	// The escrow-held ticket can't be listed again
	_, err = env.server.ListTicket(env.ctx, seller, record.Address, resalePrice)
	assert.Equal(t, ErrNotTicketOwner, err)

	buyer := env.newFundedBuyer(t, resalePrice)
	ticketAccount, err := common.NewAccountFromPublicKeyString(record.Address)
	require.NoError(t, err)

	authz, signature := env.signedAuthorization(t, buyer, resalePrice, 2, ticketAccount)
	require.NoError(t, env.server.BuyListedTicket(env.ctx, buyer, authz, signature, record.Address))

	// 60 USDC at 250 bps royalty: 0.1 platform + 1.5 organizer + 58.4 seller
	env.assertBalance(t, buyer, 0)
	env.assertBalance(t, env.feeReceiver, 2*testPlatformFee)
	env.assertBalance(t, env.organizer, originalPrice-testPlatformFee+1_500_000)
	env.assertBalance(t, seller, 58_400_000)

	// Seller's original 5 points claw back, buyer earns 6 for 60 USDC
	env.assertPoints(t, seller, 0)
	env.assertPoints(t, buyer, 6)

	bought, err := env.server.GetTicketStatus(env.ctx, record.Address)
	require.NoError(t, err)
	assert.Equal(t, buyer.PublicKey().ToBase58(), bought.Owner)
	assert.Equal(t, seller.PublicKey().ToBase58(), bought.OriginalOwner)
	assert.EqualValues(t, 1, bought.ResaleCount)

	_, err = env.server.GetListing(env.ctx, record.Address)
	assert.Equal(t, listing.ErrListingNotFound, err)
}

func TestMarketplace_BuyValidation(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	seller := env.newFundedBuyer(t, 50_000_000)
	record := env.purchaseTicket(t, seller, "finals-2026", 50_000_000, 1)

	_, err = env.server.ListTicket(env.ctx, seller, record.Address, 60_000_000)
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 100_000_000)
	ticketAccount, err := common.NewAccountFromPublicKeyString(record.Address)
	require.NoError(t, err)

	// Authorization that doesn't name the ticket
	authz, signature := env.signedAuthorization(t, buyer, 60_000_000, 2, nil)
	err = env.server.BuyListedTicket(env.ctx, buyer, authz, signature, record.Address)
	assert.Equal(t, ErrAuthorizationTicketMismatch, err)

	// Listing price above the authorized ceiling
	authz, signature = env.signedAuthorization(t, buyer, 55_000_000, 3, ticketAccount)
	err = env.server.BuyListedTicket(env.ctx, buyer, authz, signature, record.Address)
	assert.Equal(t, ErrPriceExceedsMax, err)
}

func TestMarketplace_CancelListing(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	seller := env.newFundedBuyer(t, 50_000_000)
	record := env.purchaseTicket(t, seller, "finals-2026", 50_000_000, 1)

	_, err = env.server.ListTicket(env.ctx, seller, record.Address, 60_000_000)
	require.NoError(t, err)

	stranger := testutil.NewRandomAccount(t)
	err = env.server.CancelListing(env.ctx, stranger, record.Address)
	assert.Equal(t, ErrNotListingSeller, err)

	require.NoError(t, env.server.CancelListing(env.ctx, seller, record.Address))

	returned, err := env.server.GetTicketStatus(env.ctx, record.Address)
	require.NoError(t, err)
	assert.Equal(t, seller.PublicKey().ToBase58(), returned.Owner)

	_, err = env.server.GetListing(env.ctx, record.Address)
	assert.Equal(t, listing.ErrListingNotFound, err)
}

func TestMarketplace_ResaleLimit(t *testing.T) {
	env := setup(t)

	args := env.defaultEventArgs("finals-2026")
	args.MaxResaleTimes = 1
	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	seller := env.newFundedBuyer(t, 50_000_000)
	record := env.purchaseTicket(t, seller, "finals-2026", 50_000_000, 1)

	_, err = env.server.ListTicket(env.ctx, seller, record.Address, 60_000_000)
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 60_000_000)
	ticketAccount, err := common.NewAccountFromPublicKeyString(record.Address)
	require.NoError(t, err)

	authz, signature := env.signedAuthorization(t, buyer, 60_000_000, 2, ticketAccount)
	require.NoError(t, env.server.BuyListedTicket(env.ctx, buyer, authz, signature, record.Address))

	// The resale allowance is exhausted
	_, err = env.server.ListTicket(env.ctx, buyer, record.Address, 70_000_000)
	assert.Equal(t, ErrResaleLimitReached, err)
}

func TestCheckInTicket_OperatorFlow(t *testing.T) {
	env := setup(t)

	args := env.defaultEventArgs("finals-2026")
	args.CheckinAvailableFrom = time.Now().Add(-time.Minute)
	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	holder := env.newFundedBuyer(t, 50_000_000)
	record := env.purchaseTicket(t, holder, "finals-2026", 50_000_000, 1)

	operator := testutil.NewRandomAccount(t)

	err = env.server.CheckInTicket(env.ctx, operator, record.Address)
	assert.Equal(t, ErrNotCheckinOperator, err)

	require.NoError(t, env.server.AddCheckinOperator(env.ctx, env.organizer, "finals-2026", operator))
	// Granting twice is a no-op
	require.NoError(t, env.server.AddCheckinOperator(env.ctx, env.organizer, "finals-2026", operator))

	require.NoError(t, env.server.CheckInTicket(env.ctx, operator, record.Address))

	checked, err := env.server.GetTicketStatus(env.ctx, record.Address)
	require.NoError(t, err)
	assert.True(t, checked.IsCheckedIn)

	// 5 purchase points + 100 entry points
	env.assertPoints(t, holder, 105)

	err = env.server.CheckInTicket(env.ctx, operator, record.Address)
	assert.Equal(t, ErrAlreadyCheckedIn, err)

	// Checked-in tickets can't be listed
	_, err = env.server.ListTicket(env.ctx, holder, record.Address, 60_000_000)
	assert.Equal(t, ErrTicketCheckedIn, err)
}

func TestCheckInTicket_RevokedOperator(t *testing.T) {
	env := setup(t)

	args := env.defaultEventArgs("finals-2026")
	args.CheckinAvailableFrom = time.Now().Add(-time.Minute)
	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	holder := env.newFundedBuyer(t, 50_000_000)
	record := env.purchaseTicket(t, holder, "finals-2026", 50_000_000, 1)

	operator := testutil.NewRandomAccount(t)

	require.NoError(t, env.server.AddCheckinOperator(env.ctx, env.organizer, "finals-2026", operator))
	require.NoError(t, env.server.RevokeCheckinOperator(env.ctx, env.organizer, "finals-2026", operator))

	err = env.server.CheckInTicket(env.ctx, operator, record.Address)
	assert.Equal(t, ErrNotCheckinOperator, err)

	// Re-granting reactivates the revoked capability
	require.NoError(t, env.server.AddCheckinOperator(env.ctx, env.organizer, "finals-2026", operator))
	require.NoError(t, env.server.CheckInTicket(env.ctx, operator, record.Address))
}

func TestCheckInTicket_WindowAndCustody(t *testing.T) {
	env := setup(t)

	// Check-in defaults to opening one hour before start; this event is
	// two hours out.
	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	holder := env.newFundedBuyer(t, 100_000_000)
	record := env.purchaseTicket(t, holder, "finals-2026", 50_000_000, 1)

	err = env.server.CheckInTicket(env.ctx, env.organizer, record.Address)
	assert.Equal(t, ErrCheckinWindowClosed, err)

	// An escrow-held ticket can't be checked in
	args := env.defaultEventArgs("derby")
	args.CheckinAvailableFrom = time.Now().Add(-time.Minute)
	_, err = env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	listed := env.purchaseTicket(t, holder, "derby", 50_000_000, 2)
	_, err = env.server.ListTicket(env.ctx, holder, listed.Address, 60_000_000)
	require.NoError(t, err)

	err = env.server.CheckInTicket(env.ctx, env.organizer, listed.Address)
	assert.Equal(t, ErrTicketInEscrow, err)
}

func TestPurchaseTicket_StrictPoints(t *testing.T) {
	env := setup(t)

	args := env.defaultEventArgs("finals-2026")
	args.StrictPoints = true
	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, args)
	require.NoError(t, err)

	// Buyer without a points wallet: the purchase fails outright in
	// strict mode
	buyer := testutil.NewRandomAccount(t)
	env.createTokenAccount(t, buyer, 50_000_000)

	authz, signature := env.signedAuthorization(t, buyer, 50_000_000, 1, nil)
	_, err = env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	require.Error(t, err)
}

func TestPurchaseTicket_BestEffortPoints(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	// Buyer without a points wallet: the purchase still succeeds
	buyer := testutil.NewRandomAccount(t)
	env.createTokenAccount(t, buyer, 50_000_000)

	authz, signature := env.signedAuthorization(t, buyer, 50_000_000, 1, nil)
	record, err := env.server.PurchaseTicket(env.ctx, buyer, authz, signature, &PurchaseTicketArgs{
		EventId:  "finals-2026",
		TicketId: uuid.New(),
		Price:    50_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, buyer.PublicKey().ToBase58(), record.Owner)
}

func TestGetTicketsByOwner_Pagination(t *testing.T) {
	env := setup(t)

	_, err := env.server.CreateEvent(env.ctx, env.eventAdmin, env.defaultEventArgs("finals-2026"))
	require.NoError(t, err)

	buyer := env.newFundedBuyer(t, 150_000_000)

	var purchased []*ticket.Record
	for i := 0; i < 3; i++ {
		purchased = append(purchased, env.purchaseTicket(t, buyer, "finals-2026", 50_000_000, uint64(i+1)))
	}

	actual, err := env.server.GetTicketsByOwner(env.ctx, buyer.PublicKey().ToBase58())
	require.NoError(t, err)
	require.Len(t, actual, 3)
	for i, record := range actual {
		assert.Equal(t, purchased[i].Address, record.Address)
	}

	actual, err = env.server.GetTicketsByOwner(
		env.ctx,
		buyer.PublicKey().ToBase58(),
		query.WithLimit(2),
		query.WithDirection(query.Descending),
	)
	require.NoError(t, err)
	require.Len(t, actual, 2)
	assert.Equal(t, purchased[2].Address, actual[0].Address)
	assert.Equal(t, purchased[1].Address, actual[1].Address)

	other := testutil.NewRandomAccount(t)
	_, err = env.server.GetTicketsByOwner(env.ctx, other.PublicKey().ToBase58())
	assert.Equal(t, ticket.ErrTicketNotFound, err)
}
