package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
)

func RunTests(t *testing.T, s nonce.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s nonce.Store){
		testRoundTrip,
		testConsumeOnce,
		testDeleteBefore,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s nonce.Store) {
	ctx := context.Background()

	actual, err := s.Get(ctx, 12345)
	require.Error(t, err)
	assert.Equal(t, nonce.ErrNonceNotFound, err)
	assert.Nil(t, actual)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	expected := nonce.Record{
		Nonce:  12345,
		UsedBy: "buyer_address",
	}
	require.NoError(t, s.Put(ctx, &expected))
	assert.EqualValues(t, 1, expected.Id)
	assert.False(t, expected.UsedAt.IsZero())

	actual, err = s.Get(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, expected.Nonce, actual.Nonce)
	assert.Equal(t, expected.UsedBy, actual.UsedBy)

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func testConsumeOnce(t *testing.T, s nonce.Store) {
	ctx := context.Background()

	record := nonce.Record{
		Nonce:  42,
		UsedBy: "buyer_address",
	}
	require.NoError(t, s.Put(ctx, &record))

	replay := nonce.Record{
		Nonce:  42,
		UsedBy: "other_address",
	}
	assert.Equal(t, nonce.ErrNonceAlreadyUsed, s.Put(ctx, &replay))

	actual, err := s.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "buyer_address", actual.UsedBy)
}

func testDeleteBefore(t *testing.T, s nonce.Store) {
	ctx := context.Background()

	old := nonce.Record{
		Nonce:  1,
		UsedBy: "buyer_address",
		UsedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, s.Put(ctx, &old))

	recent := nonce.Record{
		Nonce:  2,
		UsedBy: "buyer_address",
		UsedAt: time.Now(),
	}
	require.NoError(t, s.Put(ctx, &recent))

	deleted, err := s.DeleteBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = s.Get(ctx, 1)
	assert.Equal(t, nonce.ErrNonceNotFound, err)

	_, err = s.Get(ctx, 2)
	require.NoError(t, err)

	// A pruned nonce is consumable again, which is why pruning must only
	// target nonces whose authorizations have expired.
	require.NoError(t, s.Put(ctx, &nonce.Record{Nonce: 1, UsedBy: "buyer_address"}))
}
