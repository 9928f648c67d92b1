package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/balance"
)

func RunTests(t *testing.T, s balance.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s balance.Store){
		testRoundTrip,
		testDeposit,
		testTransfer,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s balance.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, "account1")
		require.Error(t, err)
		assert.Equal(t, balance.ErrAccountNotFound, err)
		assert.Nil(t, actual)

		expected := &balance.Record{
			TokenAccount: "account1",
			Owner:        "owner1",
			Amount:       100_000_000,
		}
		require.NoError(t, s.Put(ctx, expected))

		err = s.Put(ctx, expected)
		require.Error(t, err)
		assert.Equal(t, balance.ErrAccountExists, err)

		actual, err = s.Get(ctx, "account1")
		require.NoError(t, err)
		assert.Equal(t, "account1", actual.TokenAccount)
		assert.Equal(t, "owner1", actual.Owner)
		assert.EqualValues(t, 100_000_000, actual.Amount)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testDeposit(t *testing.T, s balance.Store) {
	t.Run("testDeposit", func(t *testing.T) {
		ctx := context.Background()

		err := s.Deposit(ctx, "account1", 1_000_000)
		require.Error(t, err)
		assert.Equal(t, balance.ErrAccountNotFound, err)

		require.NoError(t, s.Put(ctx, &balance.Record{
			TokenAccount: "account1",
			Owner:        "owner1",
		}))

		require.NoError(t, s.Deposit(ctx, "account1", 1_000_000))
		require.NoError(t, s.Deposit(ctx, "account1", 500_000))

		actual, err := s.Get(ctx, "account1")
		require.NoError(t, err)
		assert.EqualValues(t, 1_500_000, actual.Amount)
	})
}

func testTransfer(t *testing.T, s balance.Store) {
	t.Run("testTransfer", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, &balance.Record{
			TokenAccount: "account1",
			Owner:        "owner1",
			Amount:       50_000_000,
		}))
		require.NoError(t, s.Put(ctx, &balance.Record{
			TokenAccount: "account2",
			Owner:        "owner2",
		}))

		err := s.Transfer(ctx, "account1", "account3", 1)
		require.Error(t, err)
		assert.Equal(t, balance.ErrAccountNotFound, err)

		err = s.Transfer(ctx, "account1", "account2", 50_000_001)
		require.Error(t, err)
		assert.Equal(t, balance.ErrInsufficientFunds, err)

		require.NoError(t, s.Transfer(ctx, "account1", "account2", 20_000_000))

		src, err := s.Get(ctx, "account1")
		require.NoError(t, err)
		assert.EqualValues(t, 30_000_000, src.Amount)

		dst, err := s.Get(ctx, "account2")
		require.NoError(t, err)
		assert.EqualValues(t, 20_000_000, dst.Amount)

		// Draining the account exactly to zero is allowed
		require.NoError(t, s.Transfer(ctx, "account1", "account2", 30_000_000))

		src, err = s.Get(ctx, "account1")
		require.NoError(t, err)
		assert.EqualValues(t, 0, src.Amount)
	})
}
