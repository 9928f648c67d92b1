package common

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/pkg/errors"
)

// Program identities for the ticketing and PoF ledgers. These take the place
// of deployed program IDs, and every derived address is rooted in one of them.
const (
	TicketingProgramId = "sportsx.ticketing"
	PofProgramId       = "sportsx.pof"
	CheckinProgramId   = "sportsx.checkin"
)

// Seed prefixes for derived addresses.
var (
	escrowAuthoritySeed  = []byte("program_authority")
	ticketAuthoritySeed  = []byte("ticket_authority")
	checkinAuthoritySeed = []byte("checkin_authority")
	ticketSeed           = []byte("ticket")
	listingSeed          = []byte("listing")
)

type Account struct {
	publicKey  *Key
	privateKey *Key // Optional
}

func NewAccountFromPublicKey(publicKey *Key) (*Account, error) {
	account := &Account{
		publicKey: publicKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPublicKeyBytes(publicKey []byte) (*Account, error) {
	key, err := NewKeyFromBytes(publicKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKey(key)
}

func NewAccountFromPublicKeyString(publicKey string) (*Account, error) {
	key, err := NewKeyFromString(publicKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKey(key)
}

func NewAccountFromPrivateKey(privateKey *Key) (*Account, error) {
	publicKeyBytes := ed25519.PrivateKey(privateKey.ToBytes()).Public().(ed25519.PublicKey)
	publicKey, err := NewKeyFromBytes(publicKeyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "error creating public key from private key")
	}

	account := &Account{
		publicKey:  publicKey,
		privateKey: privateKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPrivateKeyString(privateKey string) (*Account, error) {
	key, err := NewKeyFromString(privateKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPrivateKey(key)
}

func NewRandomAccount() (*Account, error) {
	key, err := NewRandomKey()
	if err != nil {
		return nil, err
	}

	account, err := NewAccountFromPrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid account")
	}

	return account, nil
}

func (a *Account) PublicKey() *Key {
	return a.publicKey
}

func (a *Account) PrivateKey() *Key {
	return a.privateKey
}

func (a *Account) Sign(message []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, errors.New("private key not available")
	}

	signature := ed25519.Sign(a.privateKey.ToBytes(), message)
	return signature, nil
}

func (a *Account) Verify(message, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(a.publicKey.ToBytes(), message, signature)
}

func (a *Account) Validate() error {
	if a == nil {
		return errors.New("account is nil")
	}

	if err := a.publicKey.Validate(); err != nil {
		return errors.Wrap(err, "error validating public key")
	}

	if !a.publicKey.IsPublic() {
		return errors.New("public key value is a private key")
	}

	if a.privateKey == nil {
		return nil
	}

	if err := a.privateKey.Validate(); err != nil {
		return errors.Wrap(err, "error validating private key")
	}

	if a.privateKey.IsPublic() {
		return errors.New("private key value is a public key")
	}

	expectedPublicKey := ed25519.PrivateKey(a.privateKey.ToBytes()).Public().(ed25519.PublicKey)
	if !bytes.Equal(a.publicKey.ToBytes(), expectedPublicKey) {
		return errors.New("private key doesn't match public key")
	}

	return nil
}

// DeriveAddress deterministically derives an address from a program identity
// and a set of seed parts. There is no private key for a derived address, so
// nothing can sign as it. Authority over a derived address is enforced by the
// service layer's call-origin checks.
func DeriveAddress(programId string, seeds ...[]byte) *Account {
	h := sha256.New()
	h.Write([]byte(programId))
	for _, seed := range seeds {
		h.Write(seed)
	}

	publicKey, _ := NewKeyFromBytes(h.Sum(nil))
	return &Account{
		publicKey: publicKey,
	}
}

// GetEscrowAuthority returns the reserved custody identity that owns a ticket
// while it is listed for resale. Every ownership check recognizes this value
// as "held by the program, not a wallet".
func GetEscrowAuthority() *Account {
	return DeriveAddress(TicketingProgramId, escrowAuthoritySeed)
}

// GetTicketAuthority returns the ticketing program's caller identity for
// cross-ledger PoF calls. It must be present in the PoF allowlist before any
// point-crediting call succeeds.
func GetTicketAuthority() *Account {
	return DeriveAddress(TicketingProgramId, ticketAuthoritySeed)
}

// GetCheckinAuthority returns the daily check-in ledger's caller identity for
// PoF calls.
func GetCheckinAuthority() *Account {
	return DeriveAddress(CheckinProgramId, checkinAuthoritySeed)
}

// GetTicketAddress derives the address of a ticket record from its event and
// ticket UUID.
func GetTicketAddress(eventId, ticketId string) *Account {
	return DeriveAddress(TicketingProgramId, ticketSeed, []byte(eventId), []byte(ticketId))
}

// GetListingAddress derives the address of the listing record for a ticket.
func GetListingAddress(ticketAddress *Account) *Account {
	return DeriveAddress(TicketingProgramId, listingSeed, ticketAddress.PublicKey().ToBytes())
}
