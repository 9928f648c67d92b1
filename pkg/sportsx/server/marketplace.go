package server

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/metrics"

	"github.com/sportsx/sportsx-server/pkg/sportsx/auth"
	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
)

// ListTicket puts a ticket up for resale. Custody moves to the escrow
// authority until the listing is filled or cancelled.
func (s *Server) ListTicket(ctx context.Context, seller *common.Account, ticketAddress string, price uint64) (*listing.Record, error) {
	log := s.log.WithFields(logrus.Fields{
		"method": "ListTicket",
		"ticket": ticketAddress,
	})

	if _, err := s.requireUnpaused(ctx); err != nil {
		return nil, err
	}

	if price == 0 {
		return nil, ErrInvalidPrice
	}

	lock := s.ticketLocks.Get([]byte(ticketAddress))
	lock.Lock()
	defer lock.Unlock()

	ticketRecord, err := s.data.GetTicket(ctx, ticketAddress)
	if err != nil {
		return nil, err
	}

	sellerAddress := seller.PublicKey().ToBase58()
	if ticketRecord.Owner != sellerAddress {
		return nil, ErrNotTicketOwner
	}

	if ticketRecord.IsCheckedIn {
		return nil, ErrTicketCheckedIn
	}

	eventRecord, err := s.data.GetEvent(ctx, ticketRecord.EventId)
	if err != nil {
		return nil, err
	}

	if ticketRecord.ResaleCount >= eventRecord.MaxResaleTimes {
		return nil, ErrResaleLimitReached
	}

	if time.Now().After(eventRecord.StartTime) {
		return nil, ErrEventStarted
	}

	escrow := common.GetEscrowAuthority().PublicKey().ToBase58()

	ticketAccount, err := common.NewAccountFromPublicKeyString(ticketAddress)
	if err != nil {
		return nil, err
	}

	record := &listing.Record{
		Address: common.GetListingAddress(ticketAccount).PublicKey().ToBase58(),
		Ticket:  ticketAddress,
		Seller:  sellerAddress,
		Price:   price,
	}

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		ticketRecord.Owner = escrow
		if err := s.data.UpdateTicket(ctx, ticketRecord); err != nil {
			return err
		}
		return s.data.CreateListing(ctx, record)
	})
	if err != nil {
		log.WithError(err).Warn("failure creating listing")
		return nil, err
	}

	return record, nil
}

// BuyListedTicket fills a resale listing with a backend authorization that
// names the exact ticket. The buyer pays the listed price; the platform takes
// its flat fee, the organizer takes the configured royalty, and the seller
// keeps the remainder.
func (s *Server) BuyListedTicket(ctx context.Context, buyer *common.Account, authz *auth.Authorization, signature []byte, ticketAddress string) error {
	log := s.log.WithFields(logrus.Fields{
		"method": "BuyListedTicket",
		"ticket": ticketAddress,
	})

	config, err := s.requireUnpaused(ctx)
	if err != nil {
		return err
	}

	backendAuthority, err := s.backendAuthority(config)
	if err != nil {
		return err
	}

	if err := authz.VerifiedBy(backendAuthority, signature); err != nil {
		return err
	}

	now := time.Now()
	if authz.IsExpired(now) {
		return ErrAuthorizationExpired
	}

	if err := s.checkNonceUnused(ctx, authz.Nonce); err != nil {
		return err
	}

	buyerAddress := buyer.PublicKey().ToBase58()
	if authz.Buyer.PublicKey().ToBase58() != buyerAddress {
		return ErrBuyerMismatch
	}

	if authz.Ticket == nil || authz.Ticket.PublicKey().ToBase58() != ticketAddress {
		return ErrAuthorizationTicketMismatch
	}

	lock := s.ticketLocks.Get([]byte(ticketAddress))
	lock.Lock()
	defer lock.Unlock()

	listingRecord, err := s.data.GetListingByTicket(ctx, ticketAddress)
	if err != nil {
		return err
	}

	if listingRecord.Price > authz.MaxPrice {
		return ErrPriceExceedsMax
	}

	ticketRecord, err := s.data.GetTicket(ctx, ticketAddress)
	if err != nil {
		return err
	}

	eventRecord, err := s.data.GetEvent(ctx, ticketRecord.EventId)
	if err != nil {
		return err
	}

	if ticketRecord.ResaleCount >= eventRecord.MaxResaleTimes {
		return ErrResaleLimitReached
	}

	price := listingRecord.Price
	platformFee := capFee(config.FeeAmountUsdc, price)
	organizerFee := price * uint64(eventRecord.ResaleFeeBps) / 10_000
	if platformFee+organizerFee > price {
		organizerFee = price - platformFee
	}
	sellerAmount := price - platformFee - organizerFee

	sellerPoints := pointsForPurchase(ticketRecord.OriginalPrice)
	buyerPoints := pointsForPurchase(price)

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		err := s.data.MarkNonceUsed(ctx, &nonce.Record{
			Nonce:  authz.Nonce,
			UsedBy: buyerAddress,
			UsedAt: now,
		})
		if err != nil {
			return err
		}

		if platformFee > 0 {
			if err := s.data.TransferFunds(ctx, buyerAddress, config.FeeReceiver, platformFee); err != nil {
				return err
			}
		}
		if organizerFee > 0 {
			if err := s.data.TransferFunds(ctx, buyerAddress, eventRecord.Organizer, organizerFee); err != nil {
				return err
			}
		}
		if sellerAmount > 0 {
			if err := s.data.TransferFunds(ctx, buyerAddress, listingRecord.Seller, sellerAmount); err != nil {
				return err
			}
		}

		ticketRecord.Owner = buyerAddress
		ticketRecord.ResaleCount++
		if err := s.data.UpdateTicket(ctx, ticketRecord); err != nil {
			return err
		}

		if err := s.data.DeleteListing(ctx, ticketAddress); err != nil {
			return err
		}

		if eventRecord.StrictPoints {
			return s.settleResalePoints(ctx, listingRecord.Seller, buyerAddress, sellerPoints, buyerPoints)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("failure executing resale")
		return err
	}

	s.rememberNonce(authz.Nonce)

	if !eventRecord.StrictPoints {
		if err := s.settleResalePoints(ctx, listingRecord.Seller, buyerAddress, sellerPoints, buyerPoints); err != nil {
			log.WithError(err).Warn("failure settling resale points")
		}
	}

	metrics.RecordCount(ctx, ticketsResoldMetricName, 1)

	return nil
}

// settleResalePoints claws back the seller's original purchase points and
// awards the buyer points for the resale price.
func (s *Server) settleResalePoints(ctx context.Context, seller, buyer string, sellerPoints, buyerPoints int64) error {
	if sellerPoints > 0 {
		if err := s.points.UpdatePoints(ctx, seller, -sellerPoints); err != nil {
			return err
		}
	}
	if buyerPoints > 0 {
		return s.points.UpdatePoints(ctx, buyer, buyerPoints)
	}
	return nil
}

// CancelListing takes a listing down and returns custody of the ticket to
// the seller.
func (s *Server) CancelListing(ctx context.Context, seller *common.Account, ticketAddress string) error {
	log := s.log.WithFields(logrus.Fields{
		"method": "CancelListing",
		"ticket": ticketAddress,
	})

	lock := s.ticketLocks.Get([]byte(ticketAddress))
	lock.Lock()
	defer lock.Unlock()

	listingRecord, err := s.data.GetListingByTicket(ctx, ticketAddress)
	if err != nil {
		return err
	}

	if listingRecord.Seller != seller.PublicKey().ToBase58() {
		return ErrNotListingSeller
	}

	ticketRecord, err := s.data.GetTicket(ctx, ticketAddress)
	if err != nil {
		return err
	}

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		ticketRecord.Owner = listingRecord.Seller
		if err := s.data.UpdateTicket(ctx, ticketRecord); err != nil {
			return err
		}
		return s.data.DeleteListing(ctx, ticketAddress)
	})
	if err != nil {
		log.WithError(err).Warn("failure cancelling listing")
		return err
	}

	return nil
}
