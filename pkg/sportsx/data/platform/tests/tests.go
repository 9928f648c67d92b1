package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"
)

func RunTests(t *testing.T, s platform.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s platform.Store){
		testRoundTrip,
		testUpdate,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s platform.Store) {
	ctx := context.Background()

	actual, err := s.Get(ctx)
	require.Error(t, err)
	assert.Equal(t, platform.ErrNotInitialized, err)
	assert.Nil(t, actual)

	expected := platform.Record{
		FeeReceiver:      "fee_receiver",
		FeeAmountUsdc:    100_000,
		BackendAuthority: "backend_authority",
		EventAdmin:       "event_admin",
		UpdateAuthority:  "update_authority",
	}
	require.NoError(t, s.Put(ctx, &expected))
	assert.EqualValues(t, 1, expected.Id)

	assert.Equal(t, platform.ErrAlreadyInitialized, s.Put(ctx, &expected))

	actual, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected.FeeReceiver, actual.FeeReceiver)
	assert.Equal(t, expected.FeeAmountUsdc, actual.FeeAmountUsdc)
	assert.Equal(t, expected.BackendAuthority, actual.BackendAuthority)
	assert.Equal(t, expected.EventAdmin, actual.EventAdmin)
	assert.Equal(t, expected.UpdateAuthority, actual.UpdateAuthority)
	assert.False(t, actual.IsPaused)
}

func testUpdate(t *testing.T, s platform.Store) {
	ctx := context.Background()

	record := platform.Record{
		FeeReceiver:      "fee_receiver",
		FeeAmountUsdc:    100_000,
		BackendAuthority: "backend_authority",
		EventAdmin:       "event_admin",
		UpdateAuthority:  "update_authority",
	}

	err := s.Update(ctx, &record)
	assert.Equal(t, platform.ErrNotInitialized, err)

	require.NoError(t, s.Put(ctx, &record))

	record.FeeAmountUsdc = 250_000
	record.IsPaused = true
	require.NoError(t, s.Update(ctx, &record))

	actual, err := s.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 250_000, actual.FeeAmountUsdc)
	assert.True(t, actual.IsPaused)
	assert.Equal(t, record.Id, actual.Id)
}
