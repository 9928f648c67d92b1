package event

import (
	"errors"
	"time"
)

// MaxEventIdLength bounds event ids, which double as address seeds.
const MaxEventIdLength = 32

// DefaultCheckinLeadTime is how long before the event start check-in opens
// when no explicit check-in start is configured.
const DefaultCheckinLeadTime = time.Hour

type Status uint8

const (
	StatusDraft Status = iota
	StatusActive
	StatusCancelled
)

// Record is the per-event lifecycle and timing configuration.
type Record struct {
	Id uint64

	EventId   string
	Name      string
	Symbol    string
	Organizer string

	MetadataUri string

	StartTime         time.Time
	EndTime           time.Time
	TicketReleaseTime time.Time
	StopSaleBefore    time.Duration

	// Zero value means check-in opens DefaultCheckinLeadTime before StartTime
	CheckinAvailableFrom time.Time

	ResaleFeeBps   uint16
	MaxResaleTimes uint8

	// Whether a failed PoF cross-call rolls back the enclosing operation
	StrictPoints bool

	Status Status

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.EventId) == 0 {
		return errors.New("event id is required")
	}

	if len(r.EventId) > MaxEventIdLength {
		return errors.New("event id exceeds maximum length")
	}

	if len(r.Organizer) == 0 {
		return errors.New("organizer is required")
	}

	if r.Status > StatusCancelled {
		return errors.New("invalid event status")
	}

	return nil
}

func (r *Record) IsActive() bool {
	return r.Status == StatusActive
}

// CanSellTickets reports whether first-sale purchases are allowed at the
// provided time. Sales open at the ticket release time and close a configured
// offset before the event starts.
func (r *Record) CanSellTickets(now time.Time) bool {
	if !r.IsActive() {
		return false
	}

	if now.Before(r.TicketReleaseTime) {
		return false
	}

	return !now.After(r.StartTime.Add(-r.StopSaleBefore))
}

// CheckinWindowStart returns when check-in opens for the event.
func (r *Record) CheckinWindowStart() time.Time {
	if !r.CheckinAvailableFrom.IsZero() {
		return r.CheckinAvailableFrom
	}
	return r.StartTime.Add(-DefaultCheckinLeadTime)
}

// CanCheckIn reports whether the check-in window is open at the provided
// time. The window closes when the event ends.
func (r *Record) CanCheckIn(now time.Time) bool {
	return !now.Before(r.CheckinWindowStart()) && !now.After(r.EndTime)
}

func (r *Record) Clone() Record {
	return Record{
		Id:                   r.Id,
		EventId:              r.EventId,
		Name:                 r.Name,
		Symbol:               r.Symbol,
		Organizer:            r.Organizer,
		MetadataUri:          r.MetadataUri,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		TicketReleaseTime:    r.TicketReleaseTime,
		StopSaleBefore:       r.StopSaleBefore,
		CheckinAvailableFrom: r.CheckinAvailableFrom,
		ResaleFeeBps:         r.ResaleFeeBps,
		MaxResaleTimes:       r.MaxResaleTimes,
		StrictPoints:         r.StrictPoints,
		Status:               r.Status,
		CreatedAt:            r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id
	dst.EventId = r.EventId
	dst.Name = r.Name
	dst.Symbol = r.Symbol
	dst.Organizer = r.Organizer
	dst.MetadataUri = r.MetadataUri
	dst.StartTime = r.StartTime
	dst.EndTime = r.EndTime
	dst.TicketReleaseTime = r.TicketReleaseTime
	dst.StopSaleBefore = r.StopSaleBefore
	dst.CheckinAvailableFrom = r.CheckinAvailableFrom
	dst.ResaleFeeBps = r.ResaleFeeBps
	dst.MaxResaleTimes = r.MaxResaleTimes
	dst.StrictPoints = r.StrictPoints
	dst.Status = r.Status
	dst.CreatedAt = r.CreatedAt
}

func (s Status) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusActive:
		return "active"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}
