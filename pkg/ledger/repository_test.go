package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidoapp/nido/internal/test_utils"
	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	container, connect := test_utils.TestWithDB()
	db = connect()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	t.Helper()
	testCtx := context.Background()
	repository := NewRepository(db)

	var householdId int
	err := db.QueryRow(testCtx,
		"INSERT INTO household (uid, name) VALUES ($1, $2) RETURNING id",
		uuid.NewString(), "Integration Household").Scan(&householdId)
	require.NoError(t, err)

	return testCtx, repository, householdId
}

func TestRepositoryImpl_AppendAndListEntries(t *testing.T) {
	// given
	testCtx, repo, householdId := setupTestRepository(t)

	// when
	stored, err := repo.AppendEntry(testCtx, householdId, Entry{
		Uid:        uuid.NewString(),
		Kind:       Expense,
		Amount:     30000,
		Owner:      household.OwnerPartnerA,
		Instrument: Digital,
		Category:   category.Groceries,
		Date:       time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Concept:    "Weekly shop",
	})
	require.NoError(t, err)

	// then
	assert.NotZero(t, stored.Id)
	entries, err := repo.ListEntries(testCtx, householdId, EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, money.Money(30000), entries[0].Amount)
	assert.Equal(t, category.Groceries, entries[0].Category)
	assert.Equal(t, "Weekly shop", entries[0].Concept)
}

func TestRepositoryImpl_ListEntries_Filters(t *testing.T) {
	// given entries for both partners across two months
	testCtx, repo, householdId := setupTestRepository(t)
	appendEntry := func(owner household.Owner, day int) {
		t.Helper()
		_, err := repo.AppendEntry(testCtx, householdId, Entry{
			Uid:        uuid.NewString(),
			Kind:       Expense,
			Amount:     1000,
			Owner:      owner,
			Instrument: Cash,
			Category:   category.Other,
			Date:       time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	appendEntry(household.OwnerPartnerA, 1)
	appendEntry(household.OwnerPartnerA, 20)
	appendEntry(household.OwnerPartnerB, 20)

	// when filtering by owner and date range
	ownerA := household.OwnerPartnerA
	entries, err := repo.ListEntries(testCtx, householdId, EntryFilter{
		Owner: &ownerA,
		From:  time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	})

	// then only partner A's entry in range remains
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), entries[0].Date)
}

func TestRepositoryImpl_DeleteEntryByUid(t *testing.T) {
	// given
	testCtx, repo, householdId := setupTestRepository(t)
	stored, err := repo.AppendEntry(testCtx, householdId, Entry{
		Uid:        uuid.NewString(),
		Kind:       Income,
		Amount:     500,
		Owner:      household.OwnerPartnerB,
		Instrument: Digital,
		Category:   category.Salary,
		Date:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// when
	deleted, err := repo.DeleteEntryByUid(testCtx, householdId, stored.Uid)

	// then
	require.NoError(t, err)
	assert.True(t, deleted)
	entries, err := repo.ListEntries(testCtx, householdId, EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepositoryImpl_Snapshot(t *testing.T) {
	// given
	testCtx, repo, householdId := setupTestRepository(t)

	t.Run("should return nil before any snapshot exists", func(t *testing.T) {
		snapshot, err := repo.GetSnapshot(testCtx, householdId)
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("should replace the active snapshot on put", func(t *testing.T) {
		// when stored twice
		first := Snapshot{
			EffectiveDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			Amounts: map[household.Owner]map[Instrument]money.Money{
				household.OwnerPartnerA: {Digital: 100000},
			},
		}
		require.NoError(t, repo.PutSnapshot(testCtx, householdId, first))

		second := Snapshot{
			EffectiveDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			Amounts: map[household.Owner]map[Instrument]money.Money{
				household.OwnerPartnerA: {Digital: 120000, Cash: 5000},
				household.OwnerPartnerB: {Digital: 80000},
			},
		}
		require.NoError(t, repo.PutSnapshot(testCtx, householdId, second))

		// then only the second one is active
		stored, err := repo.GetSnapshot(testCtx, householdId)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, second.EffectiveDate, stored.EffectiveDate)
		assert.Equal(t, money.Money(120000), stored.Amounts[household.OwnerPartnerA][Digital])
		assert.Equal(t, money.Money(5000), stored.Amounts[household.OwnerPartnerA][Cash])
		assert.Equal(t, money.Money(80000), stored.Amounts[household.OwnerPartnerB][Digital])
	})
}
