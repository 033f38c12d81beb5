package goal

import (
	"context"
	"testing"
	"time"

	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/ledger"
	"github.com/nidoapp/nido/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHousehold = household.Household{Id: 1}
var ctx = household.WithHousehold(context.Background(), testHousehold)

var repoStub = NewStubRepository()
var ledgerStub = ledger.NewStubRepository()
var clock = &utils.MockClock{FixedNow: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}

var eventBus *event_bus.EventBus
var service Service

func setup(t *testing.T) func() {
	eventBus = event_bus.NewEventBus()
	service = NewService(repoStub, ledgerStub, eventBus, clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		ledgerStub.Cleanup()
	}
}

func createGoal(t *testing.T, target money.Money) Goal {
	t.Helper()
	created, err := service.CreateGoal(ctx, Goal{Name: "Vacation", Target: target, Color: "#2a9d8f"})
	require.NoError(t, err)
	return created
}

func TestServiceImpl_CreateGoal(t *testing.T) {
	t.Run("should create a goal starting at zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created := createGoal(t, 100000)

		// then
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, money.Money(0), created.Current)
		assert.Equal(t, 0, created.ProgressPercent())
	})

	t.Run("should reject a non-positive target", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreateGoal(ctx, Goal{Name: "Broken", Target: 0})
		assert.ErrorIs(t, err, ErrNonPositiveTarget)
	})
}

func TestServiceImpl_Contribute(t *testing.T) {
	t.Run("should raise progress and mirror a savings entry in the ledger", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created := createGoal(t, 100000)

		// when
		updated, err := service.Contribute(ctx, created.Uid, 25000)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Money(25000), updated.Current)
		assert.Equal(t, 25, updated.ProgressPercent())

		entries, err := ledgerStub.ListEntries(ctx, testHousehold.Id, ledger.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, ledger.Expense, entries[0].Kind)
		assert.Equal(t, money.Money(25000), entries[0].Amount)
		assert.Equal(t, category.Savings, entries[0].Category)
		assert.Equal(t, household.OwnerJoint, entries[0].Owner)
		assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), entries[0].Date)
	})

	t.Run("should reject a non-positive contribution", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created := createGoal(t, 100000)

		_, err := service.Contribute(ctx, created.Uid, 0)
		assert.ErrorIs(t, err, ErrNonPositiveContribution)

		_, err = service.Contribute(ctx, created.Uid, -500)
		assert.ErrorIs(t, err, ErrNonPositiveContribution)
	})

	t.Run("should allow overshooting the target", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created := createGoal(t, 10000)

		updated, err := service.Contribute(ctx, created.Uid, 15000)

		require.NoError(t, err)
		assert.Equal(t, money.Money(15000), updated.Current)
		assert.Equal(t, 100, updated.ProgressPercent())
		assert.True(t, updated.IsCompleted())
	})

	t.Run("should publish a completion event only on the crossing contribution", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created := createGoal(t, 50000)
		var completions []event_bus.GoalCompletedPayload
		event_bus.SubscribeTyped(eventBus, event_bus.GoalCompleted, func(e event_bus.EventT[event_bus.GoalCompletedPayload]) error {
			completions = append(completions, e.Data)
			return nil
		})

		// when contributions cross the target once and then keep going
		_, err := service.Contribute(ctx, created.Uid, 30000)
		require.NoError(t, err)
		_, err = service.Contribute(ctx, created.Uid, 30000)
		require.NoError(t, err)
		_, err = service.Contribute(ctx, created.Uid, 10000)
		require.NoError(t, err)

		// then
		require.Len(t, completions, 1)
		assert.Equal(t, created.Uid, completions[0].GoalUid)
		assert.Equal(t, int64(60000), completions[0].Current)
	})

	t.Run("should roll progress back when the ledger write fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given a ledger that rejects the next append
		created := createGoal(t, 100000)
		ledgerStub.FailAppendAfter = 0
		_, err := service.Contribute(ctx, created.Uid, 10000)
		require.NoError(t, err)
		ledgerStub.FailAppendAfter = 1

		// when
		_, err = service.Contribute(ctx, created.Uid, 5000)

		// then the contribution is fully undone
		require.Error(t, err)
		stored, getErr := service.GetGoal(ctx, created.Uid)
		require.NoError(t, getErr)
		assert.Equal(t, money.Money(10000), stored.Current)
	})

	t.Run("should report an unknown goal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Contribute(ctx, "missing", 1000)
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}
