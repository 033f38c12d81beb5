package household

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_CreateHousehold(t *testing.T) {
	t.Run("should assign uid and default currency", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateHousehold(context.Background(), Household{
			Name: "Casa Nido",
			Settings: Settings{
				PartnerAName: "Ana",
				PartnerBName: "Bruno",
			},
		})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, "EUR", created.Settings.Currency)
	})
}

func TestServiceImpl_GetCurrentHousehold(t *testing.T) {
	t.Run("should read the household carried in context", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateHousehold(context.Background(), Household{Name: "Casa Nido"})
		require.NoError(t, err)
		ctx := WithHousehold(context.Background(), created)

		// when
		current, err := service.GetCurrentHousehold(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Id, current.Id)
		assert.Equal(t, "Casa Nido", current.Name)
	})

	t.Run("should fail without a household in context", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.GetCurrentHousehold(context.Background())
		assert.ErrorIs(t, err, ErrNoHousehold)
	})
}

func TestOwner_Other(t *testing.T) {
	assert.Equal(t, OwnerPartnerB, OwnerPartnerA.Other())
	assert.Equal(t, OwnerPartnerA, OwnerPartnerB.Other())
	assert.Equal(t, OwnerJoint, OwnerJoint.Other())
}
