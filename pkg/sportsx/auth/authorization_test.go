package auth

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
)

func TestAuthorization_SignAndVerify(t *testing.T) {
	backend, err := common.NewRandomAccount()
	require.NoError(t, err)

	buyer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authz := &Authorization{
		Buyer:        buyer,
		TicketTypeId: "vip",
		MaxPrice:     50_000_000,
		ValidUntil:   time.Now().Add(5 * time.Minute),
		Nonce:        42,
	}

	signature, err := authz.SignedBy(backend)
	require.NoError(t, err)
	require.Len(t, signature, ed25519.SignatureSize)

	assert.NoError(t, authz.VerifiedBy(backend, signature))

	// Any field change invalidates the signature
	tampered := *authz
	tampered.MaxPrice = 60_000_000
	assert.Equal(t, ErrInvalidSignature, tampered.VerifiedBy(backend, signature))

	// A signature from the wrong key doesn't verify
	other, err := common.NewRandomAccount()
	require.NoError(t, err)
	assert.Equal(t, ErrInvalidSignature, authz.VerifiedBy(other, signature))

	// Garbage signatures are rejected before verification
	assert.Equal(t, ErrInvalidSignature, authz.VerifiedBy(backend, []byte("too short")))
}

func TestAuthorization_TicketBinding(t *testing.T) {
	backend, err := common.NewRandomAccount()
	require.NoError(t, err)

	buyer, err := common.NewRandomAccount()
	require.NoError(t, err)

	ticketAccount := common.GetTicketAddress("finals-2026", "some-ticket-uuid")

	authz := &Authorization{
		Buyer:      buyer,
		MaxPrice:   60_000_000,
		ValidUntil: time.Now().Add(5 * time.Minute),
		Nonce:      43,
		Ticket:     ticketAccount,
	}

	signature, err := authz.SignedBy(backend)
	require.NoError(t, err)
	require.NoError(t, authz.VerifiedBy(backend, signature))

	// The ticket is part of the signed message
	unbound := *authz
	unbound.Ticket = nil
	assert.Equal(t, ErrInvalidSignature, unbound.VerifiedBy(backend, signature))

	rebound := *authz
	rebound.Ticket = common.GetTicketAddress("finals-2026", "another-ticket-uuid")
	assert.Equal(t, ErrInvalidSignature, rebound.VerifiedBy(backend, signature))
}

func TestAuthorization_Validation(t *testing.T) {
	backend, err := common.NewRandomAccount()
	require.NoError(t, err)

	buyer, err := common.NewRandomAccount()
	require.NoError(t, err)

	missingBuyer := &Authorization{
		Nonce:      1,
		ValidUntil: time.Now().Add(time.Minute),
	}
	_, err = missingBuyer.SignedBy(backend)
	assert.Equal(t, ErrMissingBuyer, err)

	missingNonce := &Authorization{
		Buyer:      buyer,
		ValidUntil: time.Now().Add(time.Minute),
	}
	_, err = missingNonce.SignedBy(backend)
	assert.Equal(t, ErrMissingNonce, err)
}

func TestAuthorization_Expiry(t *testing.T) {
	buyer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authz := &Authorization{
		Buyer:      buyer,
		ValidUntil: time.Now(),
		Nonce:      1,
	}

	assert.False(t, authz.IsExpired(authz.ValidUntil.Add(-time.Second)))
	assert.True(t, authz.IsExpired(authz.ValidUntil.Add(time.Second)))
}
