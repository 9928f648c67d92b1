package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/pof"
)

func RunTests(t *testing.T, s pof.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s pof.Store){
		testStateRoundTrip,
		testPointsRoundTrip,
		testAddPoints,
		testCheckinRoundTrip,
	} {
		tf(t, s)
		teardown()
	}
}

func testStateRoundTrip(t *testing.T, s pof.Store) {
	t.Run("testStateRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetState(ctx)
		require.Error(t, err)
		assert.Equal(t, pof.ErrStateNotFound, err)
		assert.Nil(t, actual)

		expected := &pof.StateRecord{
			Admin:               "admin1",
			AuthorizedContracts: []string{"contract1"},
		}
		require.NoError(t, s.PutState(ctx, expected))

		err = s.PutState(ctx, expected)
		require.Error(t, err)
		assert.Equal(t, pof.ErrStateExists, err)

		actual, err = s.GetState(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin1", actual.Admin)
		assert.Equal(t, []string{"contract1"}, actual.AuthorizedContracts)

		actual.AuthorizedContracts = append(actual.AuthorizedContracts, "contract2")
		require.NoError(t, s.UpdateState(ctx, actual))

		actual, err = s.GetState(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"contract1", "contract2"}, actual.AuthorizedContracts)
		assert.True(t, actual.IsAuthorized("contract2"))
		assert.False(t, actual.IsAuthorized("contract3"))
	})
}

func testPointsRoundTrip(t *testing.T, s pof.Store) {
	t.Run("testPointsRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetPoints(ctx, "wallet1")
		require.Error(t, err)
		assert.Equal(t, pof.ErrWalletNotFound, err)
		assert.Nil(t, actual)

		expected := &pof.PointsRecord{
			Wallet: "wallet1",
		}
		require.NoError(t, s.PutPoints(ctx, expected))

		err = s.PutPoints(ctx, expected)
		require.Error(t, err)
		assert.Equal(t, pof.ErrWalletExists, err)

		actual, err = s.GetPoints(ctx, "wallet1")
		require.NoError(t, err)
		assert.Equal(t, "wallet1", actual.Wallet)
		assert.EqualValues(t, 0, actual.Points)
	})
}

func testAddPoints(t *testing.T, s pof.Store) {
	t.Run("testAddPoints", func(t *testing.T) {
		ctx := context.Background()

		err := s.AddPoints(ctx, "wallet1", 100)
		require.Error(t, err)
		assert.Equal(t, pof.ErrWalletNotFound, err)

		require.NoError(t, s.PutPoints(ctx, &pof.PointsRecord{Wallet: "wallet1"}))

		require.NoError(t, s.AddPoints(ctx, "wallet1", 100))
		require.NoError(t, s.AddPoints(ctx, "wallet1", 10))

		err = s.AddPoints(ctx, "wallet1", -111)
		require.Error(t, err)
		assert.Equal(t, pof.ErrInsufficientPoints, err)

		require.NoError(t, s.AddPoints(ctx, "wallet1", -110))

		actual, err := s.GetPoints(ctx, "wallet1")
		require.NoError(t, err)
		assert.EqualValues(t, 0, actual.Points)
	})
}

func testCheckinRoundTrip(t *testing.T, s pof.Store) {
	t.Run("testCheckinRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetCheckin(ctx, "wallet1")
		require.Error(t, err)
		assert.Equal(t, pof.ErrCheckinNotFound, err)
		assert.Nil(t, actual)

		first := time.Now().Add(-25 * time.Hour)
		expected := &pof.CheckinRecord{
			Wallet:        "wallet1",
			LastCheckin:   first,
			TotalCheckins: 1,
		}
		require.NoError(t, s.PutCheckin(ctx, expected))

		err = s.PutCheckin(ctx, expected)
		require.Error(t, err)
		assert.Equal(t, pof.ErrCheckinExists, err)

		expected.LastCheckin = time.Now()
		expected.TotalCheckins = 2
		require.NoError(t, s.UpdateCheckin(ctx, expected))

		actual, err = s.GetCheckin(ctx, "wallet1")
		require.NoError(t, err)
		assert.EqualValues(t, 2, actual.TotalCheckins)
		assert.True(t, actual.LastCheckin.After(first))
	})
}
