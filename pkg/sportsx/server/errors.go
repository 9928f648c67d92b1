package server

import "github.com/pkg/errors"

var (
	// ErrPlatformPaused is returned when a purchase or marketplace
	// operation is attempted while the platform is paused.
	ErrPlatformPaused = errors.New("platform is paused")

	// ErrPermissionDenied is returned when the caller lacks the authority
	// required for an operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidEventId is returned when an event id is empty or exceeds
	// the maximum length.
	ErrInvalidEventId = errors.New("invalid event id")

	// ErrInvalidMetadataUri is returned when a metadata URI doesn't use a
	// supported scheme.
	ErrInvalidMetadataUri = errors.New("invalid metadata uri")

	// ErrInvalidStatusTransition is returned for event status transitions
	// that move backwards.
	ErrInvalidStatusTransition = errors.New("invalid event status transition")

	// ErrEventNotActive is returned when selling against an event that
	// isn't active.
	ErrEventNotActive = errors.New("event is not active")

	// ErrSaleNotStarted is returned when purchasing before the ticket
	// release time.
	ErrSaleNotStarted = errors.New("ticket sale has not started")

	// ErrSaleEnded is returned when purchasing after the sale cutoff.
	ErrSaleEnded = errors.New("ticket sale has ended")

	// ErrAuthorizationExpired is returned when a purchase authorization's
	// validity window has passed.
	ErrAuthorizationExpired = errors.New("authorization expired")

	// ErrBuyerMismatch is returned when the purchase is submitted by a
	// wallet other than the authorized buyer.
	ErrBuyerMismatch = errors.New("buyer does not match authorization")

	// ErrPriceExceedsMax is returned when the price exceeds the maximum
	// the buyer authorized.
	ErrPriceExceedsMax = errors.New("price exceeds authorized maximum")

	// ErrAuthorizationTicketMismatch is returned when a resale
	// authorization doesn't name the ticket being bought.
	ErrAuthorizationTicketMismatch = errors.New("authorization does not cover ticket")

	// ErrNotTicketOwner is returned when the caller doesn't own the
	// ticket.
	ErrNotTicketOwner = errors.New("caller does not own ticket")

	// ErrNotListingSeller is returned when someone other than the seller
	// cancels a listing.
	ErrNotListingSeller = errors.New("caller is not the listing seller")

	// ErrTicketCheckedIn is returned when listing a ticket that was
	// already used for entry.
	ErrTicketCheckedIn = errors.New("ticket has been checked in")

	// ErrAlreadyCheckedIn is returned on a second check-in attempt.
	ErrAlreadyCheckedIn = errors.New("ticket already checked in")

	// ErrTicketInEscrow is returned when checking in a ticket that is
	// held by the escrow authority.
	ErrTicketInEscrow = errors.New("ticket is held in escrow")

	// ErrResaleLimitReached is returned when a ticket has exhausted its
	// resale allowance.
	ErrResaleLimitReached = errors.New("resale limit reached")

	// ErrEventStarted is returned when listing a ticket after the event
	// has started.
	ErrEventStarted = errors.New("event has already started")

	// ErrNotCheckinOperator is returned when a check-in is attempted by a
	// wallet without an active capability.
	ErrNotCheckinOperator = errors.New("caller is not a checkin operator")

	// ErrCheckinWindowClosed is returned when checking in outside the
	// event's check-in window.
	ErrCheckinWindowClosed = errors.New("checkin window is closed")

	// ErrInvalidPrice is returned for zero-priced listings.
	ErrInvalidPrice = errors.New("price must be positive")
)
