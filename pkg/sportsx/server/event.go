package server

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
)

// Metadata must live on a content-addressed or TLS-backed host.
var allowedMetadataUriSchemes = []string{"https://", "ipfs://", "ar://"}

// CreateEventArgs are the parameters for a new event.
type CreateEventArgs struct {
	EventId   string
	Name      string
	Symbol    string
	Organizer *common.Account

	MetadataUri string

	StartTime         time.Time
	EndTime           time.Time
	TicketReleaseTime time.Time
	StopSaleBefore    time.Duration

	// Zero value defaults the check-in window to one hour before start
	CheckinAvailableFrom time.Time

	ResaleFeeBps   uint16
	MaxResaleTimes uint8
	StrictPoints   bool
}

// CreateEvent registers a new event. Only the platform event admin may call
// this; the event is owned by the organizer and starts out active.
func (s *Server) CreateEvent(ctx context.Context, caller *common.Account, args *CreateEventArgs) (*event.Record, error) {
	log := s.log.WithFields(logrus.Fields{
		"method":   "CreateEvent",
		"event_id": args.EventId,
	})

	config, err := s.data.GetPlatformConfig(ctx)
	if err != nil {
		return nil, err
	}

	if config.EventAdmin != caller.PublicKey().ToBase58() {
		return nil, ErrPermissionDenied
	}

	if len(args.EventId) == 0 || len(args.EventId) > event.MaxEventIdLength {
		return nil, ErrInvalidEventId
	}

	if !isValidMetadataUri(args.MetadataUri) {
		return nil, ErrInvalidMetadataUri
	}

	if args.Organizer == nil {
		return nil, ErrPermissionDenied
	}
	if err := args.Organizer.Validate(); err != nil {
		return nil, err
	}

	record := &event.Record{
		EventId:              args.EventId,
		Name:                 args.Name,
		Symbol:               args.Symbol,
		Organizer:            args.Organizer.PublicKey().ToBase58(),
		MetadataUri:          args.MetadataUri,
		StartTime:            args.StartTime,
		EndTime:              args.EndTime,
		TicketReleaseTime:    args.TicketReleaseTime,
		StopSaleBefore:       args.StopSaleBefore,
		CheckinAvailableFrom: args.CheckinAvailableFrom,
		ResaleFeeBps:         args.ResaleFeeBps,
		MaxResaleTimes:       args.MaxResaleTimes,
		StrictPoints:         args.StrictPoints,
		Status:               event.StatusActive,
	}

	if err := s.data.CreateEvent(ctx, record); err != nil {
		log.WithError(err).Warn("failure creating event")
		return nil, err
	}

	return record, nil
}

// UpdateEventStatus moves an event's status forward. Transitions never move
// backwards: a cancelled event stays cancelled.
func (s *Server) UpdateEventStatus(ctx context.Context, caller *common.Account, eventId string, newStatus event.Status) error {
	log := s.log.WithFields(logrus.Fields{
		"method":   "UpdateEventStatus",
		"event_id": eventId,
		"status":   newStatus.String(),
	})

	lock := s.eventLocks.Get([]byte(eventId))
	lock.Lock()
	defer lock.Unlock()

	record, err := s.data.GetEvent(ctx, eventId)
	if err != nil {
		return err
	}

	if record.Organizer != caller.PublicKey().ToBase58() {
		return ErrPermissionDenied
	}

	if newStatus <= record.Status || newStatus > event.StatusCancelled {
		return ErrInvalidStatusTransition
	}

	record.Status = newStatus
	if err := s.data.UpdateEvent(ctx, record); err != nil {
		log.WithError(err).Warn("failure updating event status")
		return err
	}

	return nil
}

// AddCheckinOperator grants a wallet the capability to check tickets in for
// an event. Re-granting a revoked operator reactivates the existing record.
func (s *Server) AddCheckinOperator(ctx context.Context, caller *common.Account, eventId string, operator *common.Account) error {
	if err := operator.Validate(); err != nil {
		return err
	}

	record, err := s.data.GetEvent(ctx, eventId)
	if err != nil {
		return err
	}

	callerAddress := caller.PublicKey().ToBase58()
	if record.Organizer != callerAddress {
		return ErrPermissionDenied
	}

	operatorAddress := operator.PublicKey().ToBase58()

	existing, err := s.data.GetCheckinAuthority(ctx, eventId, operatorAddress)
	if err == checkin.ErrAuthorityNotFound {
		return s.data.CreateCheckinAuthority(ctx, &checkin.Record{
			EventId:   eventId,
			Operator:  operatorAddress,
			IsActive:  true,
			GrantedBy: callerAddress,
		})
	}
	if err != nil {
		return err
	}

	if existing.IsActive {
		return nil
	}

	existing.IsActive = true
	existing.GrantedBy = callerAddress
	return s.data.UpdateCheckinAuthority(ctx, existing)
}

// RevokeCheckinOperator deactivates an operator's capability for an event.
func (s *Server) RevokeCheckinOperator(ctx context.Context, caller *common.Account, eventId string, operator *common.Account) error {
	record, err := s.data.GetEvent(ctx, eventId)
	if err != nil {
		return err
	}

	if record.Organizer != caller.PublicKey().ToBase58() {
		return ErrPermissionDenied
	}

	existing, err := s.data.GetCheckinAuthority(ctx, eventId, operator.PublicKey().ToBase58())
	if err != nil {
		return err
	}

	if !existing.IsActive {
		return nil
	}

	existing.IsActive = false
	return s.data.UpdateCheckinAuthority(ctx, existing)
}

func isValidMetadataUri(uri string) bool {
	for _, scheme := range allowedMetadataUriSchemes {
		if strings.HasPrefix(uri, scheme) && len(uri) > len(scheme) {
			return true
		}
	}
	return false
}
