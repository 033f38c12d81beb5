package activity

import (
	"context"
	"testing"
	"time"

	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Ring(t *testing.T) {
	t.Run("should drop the oldest record past capacity", func(t *testing.T) {
		// given a log of three
		activityLog := NewLog(3)
		base := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

		// when four records arrive
		activityLog.Add("a", "first", base)
		activityLog.Add("a", "second", base.Add(time.Minute))
		activityLog.Add("a", "third", base.Add(2*time.Minute))
		activityLog.Add("a", "fourth", base.Add(3*time.Minute))

		// then the first is gone and the rest come back newest first
		records := activityLog.List()
		require.Len(t, records, 3)
		assert.Equal(t, "fourth", records[0].Message)
		assert.Equal(t, "third", records[1].Message)
		assert.Equal(t, "second", records[2].Message)
	})

	t.Run("should keep assigning increasing ids", func(t *testing.T) {
		activityLog := NewLog(2)
		activityLog.Add("a", "one", time.Now())
		activityLog.Add("a", "two", time.Now())
		activityLog.Add("a", "three", time.Now())

		records := activityLog.List()
		assert.Equal(t, 3, records[0].Id)
		assert.Equal(t, 2, records[1].Id)
	})
}

func TestLog_Subscribe(t *testing.T) {
	// given a log attached to the bus
	activityLog := NewLog(10)
	eventBus := event_bus.NewEventBus()
	activityLog.Subscribe(eventBus)

	// when domain events are published
	err := eventBus.Publish(event_bus.NewEvent(context.Background(), event_bus.SettlementRecorded, event_bus.SettlementRecordedPayload{
		Debtor:   "partner_b",
		Creditor: "partner_a",
		Amount:   30000,
		Date:     time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)
	err = eventBus.Publish(event_bus.NewEvent(context.Background(), event_bus.ChoreCompleted, event_bus.ChoreCompletedPayload{
		ChoreUid: "uid", Name: "Vacuum", CompletedAt: time.Now(),
	}))
	require.NoError(t, err)

	// then the feed reflects them, newest first
	records := activityLog.List()
	require.Len(t, records, 2)
	assert.Equal(t, "Chore done: Vacuum", records[0].Message)
	assert.Equal(t, "Settlement recorded: partner_b paid 300,00 to partner_a", records[1].Message)
	assert.Equal(t, string(event_bus.SettlementRecorded), records[1].Type)
}
