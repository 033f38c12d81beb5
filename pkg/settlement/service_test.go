package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/ledger"
	"github.com/nidoapp/nido/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = household.WithHousehold(context.Background(), household.Household{
	Id: 1,
	Settings: household.Settings{
		PartnerAName: "Ana",
		PartnerBName: "Bruno",
	},
})

var ledgerStub = ledger.NewStubRepository()
var tokenStub = NewStubTokenStore()
var clock = &utils.MockClock{FixedNow: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}

var service Service

func setup(t *testing.T) func() {
	service = NewService(ledgerStub, tokenStub, event_bus.NewEventBus(), clock, 0)
	return func() {
		t.Log("Teardown after test")
		ledgerStub.Cleanup()
		tokenStub.Cleanup()
	}
}

func recordShared(t *testing.T, owner household.Owner, amount money.Money) {
	t.Helper()
	_, err := ledgerStub.AppendEntry(context.Background(), 1, sharedExpense(owner, amount))
	require.NoError(t, err)
}

func TestServiceImpl_ComputePending(t *testing.T) {
	t.Run("should return debt with a fresh token", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		recordShared(t, household.OwnerPartnerA, 80000)
		recordShared(t, household.OwnerPartnerB, 20000)

		// when
		pending, err := service.ComputePending(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, money.Money(30000), pending.Amount)
		assert.Equal(t, household.OwnerPartnerB, pending.Debtor)
		assert.NotEmpty(t, pending.Token)
		assert.Equal(t, "Bruno owes Ana 300,00", pending.Statement)
	})

	t.Run("should return error when context has no household", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ComputePending(context.Background())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current household")
	})
}

func TestServiceImpl_Confirm(t *testing.T) {
	t.Run("should record both settlement entries", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		recordShared(t, household.OwnerPartnerA, 80000)
		recordShared(t, household.OwnerPartnerB, 20000)
		pending, err := service.ComputePending(ctx)
		require.NoError(t, err)

		// when
		receipt, err := service.Confirm(ctx, pending.Amount, pending.Token)

		// then
		assert.NoError(t, err)
		assert.Equal(t, money.Money(30000), receipt.Amount)
		assert.Equal(t, household.OwnerPartnerB, receipt.Debtor)

		entries, err := ledgerStub.ListEntries(context.Background(), 1, ledger.EntryFilter{})
		require.NoError(t, err)
		assert.Len(t, entries, 4)

		// and the debt is gone on the next computation
		after, err := service.ComputePending(ctx)
		assert.NoError(t, err)
		assert.True(t, after.AtPeace)
	})

	t.Run("should reject a reused token", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		recordShared(t, household.OwnerPartnerA, 80000)
		recordShared(t, household.OwnerPartnerB, 20000)
		pending, err := service.ComputePending(ctx)
		require.NoError(t, err)
		require.NoError(t, tokenStub.SaveToken(context.Background(), 1, pending.Token))

		// when
		_, err = service.Confirm(ctx, pending.Amount, pending.Token)

		// then
		assert.ErrorIs(t, err, ErrDuplicateToken)
	})

	t.Run("should reject a stale amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		recordShared(t, household.OwnerPartnerA, 80000)
		recordShared(t, household.OwnerPartnerB, 20000)
		pending, err := service.ComputePending(ctx)
		require.NoError(t, err)

		// and more shared spending recorded after the computation
		recordShared(t, household.OwnerPartnerB, 50000)

		// when
		_, err = service.Confirm(ctx, pending.Amount, pending.Token)

		// then
		assert.ErrorIs(t, err, ErrStaleSettlement)
	})

	t.Run("should not settle when at peace", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		recordShared(t, household.OwnerPartnerA, 50000)
		recordShared(t, household.OwnerPartnerB, 50000)
		pending, err := service.ComputePending(ctx)
		require.NoError(t, err)

		// when
		_, err = service.Confirm(ctx, 0, pending.Token)

		// then
		assert.ErrorIs(t, err, ErrNothingToSettle)
	})

	t.Run("should compensate the first write when the second fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		recordShared(t, household.OwnerPartnerA, 80000)
		recordShared(t, household.OwnerPartnerB, 20000)
		pending, err := service.ComputePending(ctx)
		require.NoError(t, err)

		// the debtor expense succeeds, the creditor income fails
		ledgerStub.FailAppendAfter = 3

		// when
		_, err = service.Confirm(ctx, pending.Amount, pending.Token)

		// then
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCompensationFailed)

		entries, listErr := ledgerStub.ListEntries(context.Background(), 1, ledger.EntryFilter{})
		require.NoError(t, listErr)
		assert.Len(t, entries, 2, "the half-written settlement entry must be rolled back")
	})
}
