package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"
)

func RunTests(t *testing.T, s checkin.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s checkin.Store){
		testRoundTrip,
		testRevokeAndRegrant,
		testGetAllByEvent,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s checkin.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, "finals-2026", "operator1")
		require.Error(t, err)
		assert.Equal(t, checkin.ErrAuthorityNotFound, err)
		assert.Nil(t, actual)

		expected := &checkin.Record{
			EventId:   "finals-2026",
			Operator:  "operator1",
			IsActive:  true,
			GrantedBy: "organizer1",
		}
		require.NoError(t, s.Put(ctx, expected))

		err = s.Put(ctx, expected)
		require.Error(t, err)
		assert.Equal(t, checkin.ErrAuthorityExists, err)

		actual, err = s.Get(ctx, "finals-2026", "operator1")
		require.NoError(t, err)
		assert.Equal(t, "finals-2026", actual.EventId)
		assert.Equal(t, "operator1", actual.Operator)
		assert.Equal(t, "organizer1", actual.GrantedBy)
		assert.True(t, actual.IsActive)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testRevokeAndRegrant(t *testing.T, s checkin.Store) {
	t.Run("testRevokeAndRegrant", func(t *testing.T) {
		ctx := context.Background()

		record := &checkin.Record{
			EventId:   "derby",
			Operator:  "operator1",
			IsActive:  true,
			GrantedBy: "organizer1",
		}

		err := s.Update(ctx, record)
		require.Error(t, err)
		assert.Equal(t, checkin.ErrAuthorityNotFound, err)

		require.NoError(t, s.Put(ctx, record))

		record.IsActive = false
		require.NoError(t, s.Update(ctx, record))

		actual, err := s.Get(ctx, "derby", "operator1")
		require.NoError(t, err)
		assert.False(t, actual.IsActive)

		record.IsActive = true
		require.NoError(t, s.Update(ctx, record))

		actual, err = s.Get(ctx, "derby", "operator1")
		require.NoError(t, err)
		assert.True(t, actual.IsActive)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testGetAllByEvent(t *testing.T, s checkin.Store) {
	t.Run("testGetAllByEvent", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetAllByEvent(ctx, "finals-2026")
		require.Error(t, err)
		assert.Equal(t, checkin.ErrAuthorityNotFound, err)
		assert.Nil(t, actual)

		for _, operator := range []string{"operator1", "operator2"} {
			record := &checkin.Record{
				EventId:   "finals-2026",
				Operator:  operator,
				IsActive:  true,
				GrantedBy: "organizer1",
			}
			require.NoError(t, s.Put(ctx, record))
		}

		require.NoError(t, s.Put(ctx, &checkin.Record{
			EventId:   "derby",
			Operator:  "operator1",
			IsActive:  true,
			GrantedBy: "organizer2",
		}))

		actual, err = s.GetAllByEvent(ctx, "finals-2026")
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "operator1", actual[0].Operator)
		assert.Equal(t, "operator2", actual[1].Operator)
	})
}
