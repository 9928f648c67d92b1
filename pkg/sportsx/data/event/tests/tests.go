package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
)

func RunTests(t *testing.T, s event.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s event.Store){
		testRoundTrip,
		testUpdate,
		testGetAllByOrganizer,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s event.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.Get(ctx, "finals-2026")
		require.Error(t, err)
		assert.Equal(t, event.ErrEventNotFound, err)
		assert.Nil(t, actual)

		start := time.Now().Add(24 * time.Hour)
		expected := &event.Record{
			EventId:              "finals-2026",
			Name:                 "Championship Finals",
			Symbol:               "FIN26",
			Organizer:            "organizer1",
			MetadataUri:          "https://example.com/finals-2026.json",
			StartTime:            start,
			EndTime:              start.Add(4 * time.Hour),
			TicketReleaseTime:    time.Now(),
			StopSaleBefore:       30 * time.Minute,
			CheckinAvailableFrom: start.Add(-2 * time.Hour),
			ResaleFeeBps:         250,
			MaxResaleTimes:       3,
			StrictPoints:         true,
			Status:               event.StatusActive,
		}
		cloned := expected.Clone()
		require.NoError(t, s.Put(ctx, expected))

		err = s.Put(ctx, expected)
		require.Error(t, err)
		assert.Equal(t, event.ErrEventExists, err)

		actual, err = s.Get(ctx, "finals-2026")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.EqualValues(t, 1, actual.Id)
		assert.False(t, actual.CreatedAt.IsZero())
	})
}

func testUpdate(t *testing.T, s event.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		ctx := context.Background()

		start := time.Now().Add(24 * time.Hour)
		record := &event.Record{
			EventId:           "derby",
			Name:              "City Derby",
			Symbol:            "DRBY",
			Organizer:         "organizer1",
			MetadataUri:       "ipfs://QmDerby",
			StartTime:         start,
			EndTime:           start.Add(2 * time.Hour),
			TicketReleaseTime: time.Now(),
			ResaleFeeBps:      100,
			MaxResaleTimes:    1,
			Status:            event.StatusDraft,
		}

		err := s.Update(ctx, record)
		require.Error(t, err)
		assert.Equal(t, event.ErrEventNotFound, err)

		require.NoError(t, s.Put(ctx, record))

		record.Status = event.StatusActive
		record.MetadataUri = "ipfs://QmDerbyV2"
		cloned := record.Clone()
		require.NoError(t, s.Update(ctx, record))

		actual, err := s.Get(ctx, "derby")
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testGetAllByOrganizer(t *testing.T, s event.Store) {
	t.Run("testGetAllByOrganizer", func(t *testing.T) {
		ctx := context.Background()

		actual, err := s.GetAllByOrganizer(ctx, "organizer1")
		require.Error(t, err)
		assert.Equal(t, event.ErrEventNotFound, err)
		assert.Nil(t, actual)

		start := time.Now().Add(24 * time.Hour)
		for i, organizer := range []string{"organizer1", "organizer1", "organizer2"} {
			record := &event.Record{
				EventId:           "event" + string(rune('a'+i)),
				Name:              "Event",
				Symbol:            "EVT",
				Organizer:         organizer,
				MetadataUri:       "https://example.com/event.json",
				StartTime:         start,
				EndTime:           start.Add(time.Hour),
				TicketReleaseTime: time.Now(),
				Status:            event.StatusActive,
			}
			require.NoError(t, s.Put(ctx, record))
		}

		actual, err = s.GetAllByOrganizer(ctx, "organizer1")
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "eventa", actual[0].EventId)
		assert.Equal(t, "eventb", actual[1].EventId)

		actual, err = s.GetAllByOrganizer(ctx, "organizer2")
		require.NoError(t, err)
		require.Len(t, actual, 1)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *event.Record) {
	assert.Equal(t, obj1.EventId, obj2.EventId)
	assert.Equal(t, obj1.Name, obj2.Name)
	assert.Equal(t, obj1.Symbol, obj2.Symbol)
	assert.Equal(t, obj1.Organizer, obj2.Organizer)
	assert.Equal(t, obj1.MetadataUri, obj2.MetadataUri)
	assert.Equal(t, obj1.StartTime.Unix(), obj2.StartTime.Unix())
	assert.Equal(t, obj1.EndTime.Unix(), obj2.EndTime.Unix())
	assert.Equal(t, obj1.TicketReleaseTime.Unix(), obj2.TicketReleaseTime.Unix())
	assert.Equal(t, obj1.StopSaleBefore, obj2.StopSaleBefore)
	assert.Equal(t, obj1.CheckinWindowStart().Unix(), obj2.CheckinWindowStart().Unix())
	assert.Equal(t, obj1.ResaleFeeBps, obj2.ResaleFeeBps)
	assert.Equal(t, obj1.MaxResaleTimes, obj2.MaxResaleTimes)
	assert.Equal(t, obj1.StrictPoints, obj2.StrictPoints)
	assert.Equal(t, obj1.Status, obj2.Status)
}
