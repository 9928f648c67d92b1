package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/database/query"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"
)

func RunTests(t *testing.T, s ticket.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s ticket.Store){
		testRoundTrip,
		testMintOnce,
		testUpdate,
		testGetAllByOwner,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s ticket.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, "address1")
		require.Error(t, err)
		assert.Equal(t, ticket.ErrTicketNotFound, err)
		assert.Nil(t, actual)

		expected := &ticket.Record{
			Address:       "address1",
			EventId:       "finals-2026",
			TicketTypeId:  "vip",
			TicketId:      uuid.New(),
			Owner:         "buyer1",
			OriginalOwner: "buyer1",
			OriginalPrice: 50_000_000,
			RowNumber:     12,
			ColumnNumber:  4,
		}
		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))

		actual, err = s.Get(ctx, "address1")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testMintOnce(t *testing.T, s ticket.Store) {
	t.Run("testMintOnce", func(t *testing.T) {
		ctx := context.Background()

		record := &ticket.Record{
			Address:       "address1",
			EventId:       "finals-2026",
			TicketTypeId:  "ga",
			TicketId:      uuid.New(),
			Owner:         "buyer1",
			OriginalOwner: "buyer1",
		}
		require.NoError(t, s.Put(ctx, record))

		err := s.Put(ctx, record)
		require.Error(t, err)
		assert.Equal(t, ticket.ErrTicketAlreadyMinted, err)

		// Same ticket id under a different address is still a double mint
		duplicateId := record.Clone()
		duplicateId.Address = "address2"
		err = s.Put(ctx, &duplicateId)
		require.Error(t, err)
		assert.Equal(t, ticket.ErrTicketAlreadyMinted, err)
	})
}

func testUpdate(t *testing.T, s ticket.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		ctx := context.Background()

		record := &ticket.Record{
			Address:       "address1",
			EventId:       "finals-2026",
			TicketTypeId:  "ga",
			TicketId:      uuid.New(),
			Owner:         "buyer1",
			OriginalOwner: "buyer1",
		}

		err := s.Update(ctx, record)
		require.Error(t, err)
		assert.Equal(t, ticket.ErrTicketNotFound, err)

		require.NoError(t, s.Put(ctx, record))

		record.Owner = "buyer2"
		record.ResaleCount = 1
		record.IsCheckedIn = true
		require.NoError(t, s.Update(ctx, record))

		actual, err := s.Get(ctx, "address1")
		require.NoError(t, err)
		assert.Equal(t, "buyer2", actual.Owner)
		assert.Equal(t, "buyer1", actual.OriginalOwner)
		assert.EqualValues(t, 1, actual.ResaleCount)
		assert.True(t, actual.IsCheckedIn)
	})
}

func testGetAllByOwner(t *testing.T, s ticket.Store) {
	t.Run("testGetAllByOwner", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetAllByOwner(ctx, "buyer1", query.EmptyCursor, 10, query.Ascending)
		require.Error(t, err)
		assert.Equal(t, ticket.ErrTicketNotFound, err)
		assert.Nil(t, actual)

		for i, owner := range []string{"buyer1", "buyer1", "buyer1", "buyer2"} {
			record := &ticket.Record{
				Address:       "address" + string(rune('a'+i)),
				EventId:       "finals-2026",
				TicketTypeId:  "ga",
				TicketId:      uuid.New(),
				Owner:         owner,
				OriginalOwner: owner,
			}
			require.NoError(t, s.Put(ctx, record))
		}

		actual, err = s.GetAllByOwner(ctx, "buyer1", query.EmptyCursor, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		assert.Equal(t, "addressa", actual[0].Address)
		assert.Equal(t, "addressb", actual[1].Address)
		assert.Equal(t, "addressc", actual[2].Address)

		// Page forward from the first record
		actual, err = s.GetAllByOwner(ctx, "buyer1", query.ToCursor(actual[0].Id), 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "addressb", actual[0].Address)

		actual, err = s.GetAllByOwner(ctx, "buyer1", query.EmptyCursor, 2, query.Descending)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "addressc", actual[0].Address)
		assert.Equal(t, "addressb", actual[1].Address)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *ticket.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.EventId, obj2.EventId)
	assert.Equal(t, obj1.TicketTypeId, obj2.TicketTypeId)
	assert.Equal(t, obj1.TicketId, obj2.TicketId)
	assert.Equal(t, obj1.Owner, obj2.Owner)
	assert.Equal(t, obj1.OriginalOwner, obj2.OriginalOwner)
	assert.Equal(t, obj1.OriginalPrice, obj2.OriginalPrice)
	assert.Equal(t, obj1.RowNumber, obj2.RowNumber)
	assert.Equal(t, obj1.ColumnNumber, obj2.ColumnNumber)
	assert.Equal(t, obj1.ResaleCount, obj2.ResaleCount)
	assert.Equal(t, obj1.IsCheckedIn, obj2.IsCheckedIn)
}
