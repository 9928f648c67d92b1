package server

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/metrics"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"
)

const ticketsCheckedInMetricName = "Ticketing/tickets_checked_in_count"

// CheckInTicket marks a ticket as used for entry. The caller must be the
// event organizer or hold an active check-in capability, and the ticket must
// be held by a real wallet rather than the escrow authority.
func (s *Server) CheckInTicket(ctx context.Context, operator *common.Account, ticketAddress string) error {
	log := s.log.WithFields(logrus.Fields{
		"method": "CheckInTicket",
		"ticket": ticketAddress,
	})

	lock := s.ticketLocks.Get([]byte(ticketAddress))
	lock.Lock()
	defer lock.Unlock()

	ticketRecord, err := s.data.GetTicket(ctx, ticketAddress)
	if err != nil {
		return err
	}

	eventRecord, err := s.data.GetEvent(ctx, ticketRecord.EventId)
	if err != nil {
		return err
	}

	operatorAddress := operator.PublicKey().ToBase58()
	if eventRecord.Organizer != operatorAddress {
		capability, err := s.data.GetCheckinAuthority(ctx, ticketRecord.EventId, operatorAddress)
		if err == checkin.ErrAuthorityNotFound {
			return ErrNotCheckinOperator
		}
		if err != nil {
			return err
		}
		if !capability.IsActive {
			return ErrNotCheckinOperator
		}
	}

	if !eventRecord.CanCheckIn(time.Now()) {
		return ErrCheckinWindowClosed
	}

	if ticketRecord.IsCheckedIn {
		return ErrAlreadyCheckedIn
	}

	if ticketRecord.Owner == common.GetEscrowAuthority().PublicKey().ToBase58() {
		return ErrTicketInEscrow
	}

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		ticketRecord.IsCheckedIn = true
		if err := s.data.UpdateTicket(ctx, ticketRecord); err != nil {
			return err
		}

		if eventRecord.StrictPoints {
			return s.points.UpdatePoints(ctx, ticketRecord.Owner, EventCheckinPoints)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("failure checking in ticket")
		return err
	}

	if !eventRecord.StrictPoints {
		if err := s.points.UpdatePoints(ctx, ticketRecord.Owner, EventCheckinPoints); err != nil {
			log.WithError(err).Warn("failure awarding checkin points")
		}
	}

	metrics.RecordCount(ctx, ticketsCheckedInMetricName, 1)

	return nil
}
