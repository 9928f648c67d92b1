package auth

import (
	"crypto/ed25519"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
)

var (
	ErrInvalidSignature = errors.New("invalid backend signature")
	ErrMissingBuyer     = errors.New("buyer is required")
	ErrMissingNonce     = errors.New("nonce is required")
)

// Authorization is the statement a backend authority signs to approve a
// purchase. It binds the buyer, what they may buy, a price ceiling, a
// validity deadline and a single-use nonce. For resales it additionally pins
// the exact ticket being bought.
type Authorization struct {
	Buyer        *common.Account
	TicketTypeId string
	MaxPrice     uint64
	ValidUntil   time.Time
	Nonce        uint64

	// Set for resale authorizations only
	Ticket *common.Account
}

// Message returns the canonical byte serialization that is signed. The layout
// must match what backend signers produce:
//
//	buyer(32) || ticket_type_id || max_price(le64) || valid_until(le64) || nonce(le64) || ticket(32)?
func (a *Authorization) Message() []byte {
	message := make([]byte, 0, 32+len(a.TicketTypeId)+24+32)
	message = append(message, a.Buyer.PublicKey().ToBytes()...)
	message = append(message, []byte(a.TicketTypeId)...)
	message = binary.LittleEndian.AppendUint64(message, a.MaxPrice)
	message = binary.LittleEndian.AppendUint64(message, uint64(a.ValidUntil.Unix()))
	message = binary.LittleEndian.AppendUint64(message, a.Nonce)
	if a.Ticket != nil {
		message = append(message, a.Ticket.PublicKey().ToBytes()...)
	}
	return message
}

func (a *Authorization) Validate() error {
	if a.Buyer == nil {
		return ErrMissingBuyer
	}
	if a.Nonce == 0 {
		return ErrMissingNonce
	}
	return nil
}

// IsExpired reports whether the authorization's validity deadline has passed.
func (a *Authorization) IsExpired(now time.Time) bool {
	return now.After(a.ValidUntil)
}

// VerifiedBy checks the signature over the canonical message against the
// configured backend authority.
func (a *Authorization) VerifiedBy(backendAuthority *common.Account, signature []byte) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if len(signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}

	if !backendAuthority.Verify(a.Message(), signature) {
		return ErrInvalidSignature
	}
	return nil
}

// SignedBy signs the canonical message. Backend signing normally happens off
// the core; this is used by tests and tooling.
func (a *Authorization) SignedBy(backendAuthority *common.Account) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return backendAuthority.Sign(a.Message())
}
