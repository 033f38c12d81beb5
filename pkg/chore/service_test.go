package chore

import (
	"context"
	"testing"
	"time"

	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = household.WithHousehold(context.Background(), household.Household{Id: 1})

var repoStub = NewStubRepository()
var clock = &utils.MockClock{FixedNow: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}

var eventBus *event_bus.EventBus
var service Service

func setup(t *testing.T) func() {
	clock.FixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	eventBus = event_bus.NewEventBus()
	service = NewService(repoStub, eventBus, clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_CreateChore(t *testing.T) {
	t.Run("should create a chore that has never been done", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateChore(ctx, Chore{Name: "Water plants", Icon: "🪴", FrequencyDays: 3})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Nil(t, created.LastCompletedAt)
		assert.Equal(t, StateOverdue, created.State(clock.Now()))
	})

	t.Run("should reject a frequency below one day", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreateChore(ctx, Chore{Name: "Broken", FrequencyDays: 0})
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})
}

func TestServiceImpl_Complete(t *testing.T) {
	t.Run("should stamp the chore and append history", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateChore(ctx, Chore{Name: "Take out trash", FrequencyDays: 2})
		require.NoError(t, err)

		// when
		completed, err := service.Complete(ctx, created.Uid)

		// then
		require.NoError(t, err)
		require.NotNil(t, completed.LastCompletedAt)
		assert.Equal(t, clock.Now().UTC(), *completed.LastCompletedAt)

		history, err := service.History(ctx, created.Uid)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, clock.Now().UTC(), history[0].CompletedAt)
	})

	t.Run("should keep history append-only across completions", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateChore(ctx, Chore{Name: "Laundry", FrequencyDays: 4})
		require.NoError(t, err)

		// when completed twice on different days
		_, err = service.Complete(ctx, created.Uid)
		require.NoError(t, err)
		clock.FixedNow = clock.FixedNow.AddDate(0, 0, 3)
		completed, err := service.Complete(ctx, created.Uid)
		require.NoError(t, err)

		// then both completions are kept, newest first
		history, err := service.History(ctx, created.Uid)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.True(t, history[0].CompletedAt.After(history[1].CompletedAt))
		assert.Equal(t, history[0].CompletedAt, *completed.LastCompletedAt)
	})

	t.Run("should publish a completion event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateChore(ctx, Chore{Name: "Vacuum", FrequencyDays: 7})
		require.NoError(t, err)
		var events []event_bus.ChoreCompletedPayload
		event_bus.SubscribeTyped(eventBus, event_bus.ChoreCompleted, func(e event_bus.EventT[event_bus.ChoreCompletedPayload]) error {
			events = append(events, e.Data)
			return nil
		})

		// when
		_, err = service.Complete(ctx, created.Uid)

		// then
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, created.Uid, events[0].ChoreUid)
		assert.Equal(t, "Vacuum", events[0].Name)
	})

	t.Run("should report an unknown chore", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Complete(ctx, "missing")
		assert.ErrorIs(t, err, ErrChoreNotFound)
	})
}

func TestServiceImpl_ListChores(t *testing.T) {
	t.Run("should list most urgent first", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given one fresh and one never-done chore
		fresh, err := service.CreateChore(ctx, Chore{Name: "Dishes", FrequencyDays: 7})
		require.NoError(t, err)
		_, err = service.Complete(ctx, fresh.Uid)
		require.NoError(t, err)
		neverDone, err := service.CreateChore(ctx, Chore{Name: "Windows", FrequencyDays: 30})
		require.NoError(t, err)

		// when
		chores, err := service.ListChores(ctx)

		// then the never-done chore leads
		require.NoError(t, err)
		require.Len(t, chores, 2)
		assert.Equal(t, neverDone.Uid, chores[0].Uid)
		assert.Equal(t, fresh.Uid, chores[1].Uid)
	})
}
