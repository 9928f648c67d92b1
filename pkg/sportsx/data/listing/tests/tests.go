package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
)

func RunTests(t *testing.T, s listing.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s listing.Store){
		testRoundTrip,
		testOneListingPerTicket,
		testDelete,
		testGetAllBySeller,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s listing.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetByTicket(ctx, "ticket1")
		require.Error(t, err)
		assert.Equal(t, listing.ErrListingNotFound, err)
		assert.Nil(t, actual)

		expected := &listing.Record{
			Address: "listing1",
			Ticket:  "ticket1",
			Seller:  "seller1",
			Price:   60_000_000,
		}
		require.NoError(t, s.Put(ctx, expected))

		actual, err = s.GetByTicket(ctx, "ticket1")
		require.NoError(t, err)
		assert.Equal(t, "listing1", actual.Address)
		assert.Equal(t, "ticket1", actual.Ticket)
		assert.Equal(t, "seller1", actual.Seller)
		assert.EqualValues(t, 60_000_000, actual.Price)
		assert.EqualValues(t, 1, actual.Id)
	})
}

func testOneListingPerTicket(t *testing.T, s listing.Store) {
	t.Run("testOneListingPerTicket", func(t *testing.T) {
		ctx := context.Background()

		record := &listing.Record{
			Address: "listing1",
			Ticket:  "ticket1",
			Seller:  "seller1",
			Price:   60_000_000,
		}
		require.NoError(t, s.Put(ctx, record))

		relist := record.Clone()
		relist.Price = 75_000_000
		err := s.Put(ctx, &relist)
		require.Error(t, err)
		assert.Equal(t, listing.ErrListingExists, err)
	})
}

func testDelete(t *testing.T, s listing.Store) {
	t.Run("testDelete", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, s.Delete(ctx, "ticket1"))

		record := &listing.Record{
			Address: "listing1",
			Ticket:  "ticket1",
			Seller:  "seller1",
			Price:   60_000_000,
		}
		require.NoError(t, s.Put(ctx, record))
		require.NoError(t, s.Delete(ctx, "ticket1"))

		actual, err := s.GetByTicket(ctx, "ticket1")
		require.Error(t, err)
		assert.Equal(t, listing.ErrListingNotFound, err)
		assert.Nil(t, actual)

		// The ticket can be listed again after the old listing is gone
		record.Price = 55_000_000
		require.NoError(t, s.Put(ctx, record))
	})
}

func testGetAllBySeller(t *testing.T, s listing.Store) {
	t.Run("testGetAllBySeller", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetAllBySeller(ctx, "seller1")
		require.Error(t, err)
		assert.Equal(t, listing.ErrListingNotFound, err)
		assert.Nil(t, actual)

		for i, seller := range []string{"seller1", "seller1", "seller2"} {
			record := &listing.Record{
				Address: "listing" + string(rune('a'+i)),
				Ticket:  "ticket" + string(rune('a'+i)),
				Seller:  seller,
				Price:   60_000_000,
			}
			require.NoError(t, s.Put(ctx, record))
		}

		actual, err = s.GetAllBySeller(ctx, "seller1")
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "ticketa", actual[0].Ticket)
		assert.Equal(t, "ticketb", actual[1].Ticket)
	})
}
