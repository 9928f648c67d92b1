package server

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/metrics"

	"github.com/sportsx/sportsx-server/pkg/sportsx/auth"
	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"
)

const (
	microUsdcPerUsdc = 1_000_000

	// Purchases earn one point per ten USDC spent, capped.
	maxPurchasePoints     = 50
	purchasePointsDivisor = 10

	// EventCheckinPoints is awarded when a ticket is used for entry.
	EventCheckinPoints = 100

	ticketsSoldMetricName   = "Ticketing/tickets_sold_count"
	ticketsResoldMetricName = "Ticketing/tickets_resold_count"
)

// PurchaseTicketArgs identify the exact ticket being minted in a first sale.
type PurchaseTicketArgs struct {
	EventId  string
	TicketId uuid.UUID
	Price    uint64

	RowNumber    uint16
	ColumnNumber uint16
}

// PurchaseTicket executes a backend-authorized first sale: funds move from
// the buyer to the platform fee receiver and organizer, and the ticket is
// minted to the buyer. The authorization's nonce is consumed atomically with
// the payment, so a replayed authorization can never mint twice.
func (s *Server) PurchaseTicket(ctx context.Context, buyer *common.Account, authz *auth.Authorization, signature []byte, args *PurchaseTicketArgs) (*ticket.Record, error) {
	log := s.log.WithFields(logrus.Fields{
		"method":    "PurchaseTicket",
		"event_id":  args.EventId,
		"ticket_id": args.TicketId.String(),
	})

	config, err := s.requireUnpaused(ctx)
	if err != nil {
		return nil, err
	}

	backendAuthority, err := s.backendAuthority(config)
	if err != nil {
		return nil, err
	}

	if err := authz.VerifiedBy(backendAuthority, signature); err != nil {
		return nil, err
	}

	now := time.Now()
	if authz.IsExpired(now) {
		return nil, ErrAuthorizationExpired
	}

	if err := s.checkNonceUnused(ctx, authz.Nonce); err != nil {
		return nil, err
	}

	buyerAddress := buyer.PublicKey().ToBase58()
	if authz.Buyer.PublicKey().ToBase58() != buyerAddress {
		return nil, ErrBuyerMismatch
	}

	if args.Price > authz.MaxPrice {
		return nil, ErrPriceExceedsMax
	}

	eventRecord, err := s.data.GetEvent(ctx, args.EventId)
	if err != nil {
		return nil, err
	}

	if !eventRecord.IsActive() {
		return nil, ErrEventNotActive
	}
	if now.Before(eventRecord.TicketReleaseTime) {
		return nil, ErrSaleNotStarted
	}
	if now.After(eventRecord.StartTime.Add(-eventRecord.StopSaleBefore)) {
		return nil, ErrSaleEnded
	}

	ticketAddress := common.GetTicketAddress(args.EventId, args.TicketId.String())

	lock := s.ticketLocks.Get(ticketAddress.PublicKey().ToBytes())
	lock.Lock()
	defer lock.Unlock()

	fee := capFee(config.FeeAmountUsdc, args.Price)
	organizerAmount := args.Price - fee

	record := &ticket.Record{
		Address:       ticketAddress.PublicKey().ToBase58(),
		EventId:       args.EventId,
		TicketTypeId:  authz.TicketTypeId,
		TicketId:      args.TicketId,
		Owner:         buyerAddress,
		OriginalOwner: buyerAddress,
		OriginalPrice: args.Price,
		RowNumber:     args.RowNumber,
		ColumnNumber:  args.ColumnNumber,
	}

	points := pointsForPurchase(args.Price)

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		err := s.data.MarkNonceUsed(ctx, &nonce.Record{
			Nonce:  authz.Nonce,
			UsedBy: buyerAddress,
			UsedAt: now,
		})
		if err != nil {
			return err
		}

		if fee > 0 {
			if err := s.data.TransferFunds(ctx, buyerAddress, config.FeeReceiver, fee); err != nil {
				return err
			}
		}
		if organizerAmount > 0 {
			if err := s.data.TransferFunds(ctx, buyerAddress, eventRecord.Organizer, organizerAmount); err != nil {
				return err
			}
		}

		if err := s.data.CreateTicket(ctx, record); err != nil {
			return err
		}

		// In strict mode a points failure rolls the purchase back
		if eventRecord.StrictPoints && points > 0 {
			return s.points.UpdatePoints(ctx, buyerAddress, points)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("failure executing purchase")
		return nil, err
	}

	s.rememberNonce(authz.Nonce)

	if !eventRecord.StrictPoints && points > 0 {
		if err := s.points.UpdatePoints(ctx, buyerAddress, points); err != nil {
			log.WithError(err).Warn("failure awarding purchase points")
		}
	}

	metrics.RecordCount(ctx, ticketsSoldMetricName, 1)

	return record, nil
}

func pointsForPurchase(price uint64) int64 {
	points := price / microUsdcPerUsdc / purchasePointsDivisor
	if points > maxPurchasePoints {
		points = maxPurchasePoints
	}
	return int64(points)
}
