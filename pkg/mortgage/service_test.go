package mortgage

import (
	"context"
	"testing"
	"time"

	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = household.WithHousehold(context.Background(), household.Household{Id: 1})

var repoStub = NewStubRepository()
var clock = &utils.MockClock{FixedNow: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}
var availableFunds money.Money

var service Service

func setup(t *testing.T) func() {
	availableFunds = 0
	funds := func(ctx context.Context) (money.Money, error) {
		return availableFunds, nil
	}
	service = NewService(repoStub, testCosts, funds, clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_SaveConfig(t *testing.T) {
	t.Run("should save and read back a scenario", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		cfg := Config{Price: 20000000, PropertyType: Resale, FinancingPercent: 80, AnnualRatePercent: 3.0, TermYears: 30}

		// when
		err := service.SaveConfig(ctx, cfg)

		// then
		require.NoError(t, err)
		stored, err := service.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg, stored)
	})

	t.Run("should reject financing outside 50 to 100 percent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.SaveConfig(ctx, Config{Price: 20000000, PropertyType: Resale, FinancingPercent: 40, TermYears: 30})
		assert.ErrorIs(t, err, ErrInvalidFinancing)

		err = service.SaveConfig(ctx, Config{Price: 20000000, PropertyType: Resale, FinancingPercent: 101, TermYears: 30})
		assert.ErrorIs(t, err, ErrInvalidFinancing)
	})

	t.Run("should reject a zero-year term", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.SaveConfig(ctx, Config{Price: 20000000, PropertyType: Resale, FinancingPercent: 80})
		assert.ErrorIs(t, err, ErrInvalidTerm)
	})
}

func TestServiceImpl_ProjectCurrent(t *testing.T) {
	t.Run("should project the saved scenario against current funds", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given a saved scenario and 50.000,00 on hand
		require.NoError(t, service.SaveConfig(ctx, Config{
			Price:             20000000,
			PropertyType:      Resale,
			FinancingPercent:  80,
			AnnualRatePercent: 3.0,
			TermYears:         30,
			NetMonthlyIncome:  300000,
		}))
		availableFunds = 5000000

		// when
		p, err := service.ProjectCurrent(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Money(16000000), p.LoanAmount)
		assert.Equal(t, money.Money(6250000), p.TotalNeeded)
		assert.Equal(t, money.Money(1250000), p.FundingGap)
	})

	t.Run("should report missing scenario", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.ProjectCurrent(ctx)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}
