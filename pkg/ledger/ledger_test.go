package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeBalances_Scenario(t *testing.T) {
	// given a snapshot of 1000,00 digital for partner A and one later expense of 300,00
	snapshot := &Snapshot{
		EffectiveDate: date(2025, time.January, 1),
		Amounts: map[household.Owner]map[Instrument]money.Money{
			household.OwnerPartnerA: {Digital: 100000},
		},
	}
	entries := []Entry{
		{Kind: Expense, Amount: 30000, Owner: household.OwnerPartnerA, Instrument: Digital, Category: category.Groceries, Date: date(2025, time.January, 10)},
	}

	// when
	result := ComputeBalances(snapshot, entries, date(2025, time.January, 31))

	// then
	assert.Equal(t, money.Money(70000), result.PerOwner[household.OwnerPartnerA].Total)
	assert.Equal(t, money.Money(70000), result.PerOwner[household.OwnerPartnerA].Digital)
	assert.Equal(t, money.Money(0), result.PerOwner[household.OwnerPartnerA].Cash)
	assert.Equal(t, money.Money(70000), result.GrandTotal)
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	snapshot := &Snapshot{
		EffectiveDate: date(2025, time.January, 1),
		Amounts: map[household.Owner]map[Instrument]money.Money{
			household.OwnerPartnerA: {Cash: 5000, Digital: 20000},
			household.OwnerPartnerB: {Digital: 15000},
		},
	}
	entries := []Entry{
		{Kind: Income, Amount: 120000, Owner: household.OwnerPartnerA, Instrument: Digital, Date: date(2025, time.January, 2)},
		{Kind: Expense, Amount: 4550, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.January, 3)},
		{Kind: Income, Amount: 95000, Owner: household.OwnerPartnerB, Instrument: Digital, Date: date(2025, time.January, 5)},
		{Kind: Expense, Amount: 31999, Owner: household.OwnerPartnerB, Instrument: Digital, Date: date(2025, time.January, 9)},
		{Kind: Expense, Amount: 700, Owner: household.OwnerJoint, Instrument: Cash, Date: date(2025, time.January, 12)},
		{Kind: Income, Amount: 1, Owner: household.OwnerJoint, Instrument: Digital, Date: date(2025, time.January, 13)},
	}
	asOf := date(2025, time.January, 31)

	expected := ComputeBalances(snapshot, entries, asOf)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Entry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		assert.Equal(t, expected, ComputeBalances(snapshot, shuffled, asOf))
	}
}

func TestComputeBalances_Conservation(t *testing.T) {
	snapshot := &Snapshot{
		EffectiveDate: date(2025, time.January, 1),
		Amounts: map[household.Owner]map[Instrument]money.Money{
			household.OwnerPartnerA: {Cash: 111, Digital: 222},
			household.OwnerPartnerB: {Cash: 333},
			household.OwnerJoint:    {Digital: 444},
		},
	}
	entries := []Entry{
		{Kind: Income, Amount: 1000, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.January, 5)},
		{Kind: Income, Amount: 2000, Owner: household.OwnerPartnerB, Instrument: Digital, Date: date(2025, time.January, 6)},
		{Kind: Expense, Amount: 300, Owner: household.OwnerJoint, Instrument: Digital, Date: date(2025, time.January, 7)},
		{Kind: Expense, Amount: 70, Owner: household.OwnerPartnerA, Instrument: Digital, Date: date(2025, time.January, 8)},
	}

	result := ComputeBalances(snapshot, entries, date(2025, time.February, 1))

	// grand total = snapshot sum + incomes - expenses, exactly
	expected := money.Money(111+222+333+444) + 1000 + 2000 - 300 - 70
	assert.Equal(t, expected, result.GrandTotal)
}

func TestComputeBalances_DateBoundsInclusive(t *testing.T) {
	snapshot := &Snapshot{
		EffectiveDate: date(2025, time.March, 1),
		Amounts:       map[household.Owner]map[Instrument]money.Money{},
	}
	entries := []Entry{
		// before the snapshot: excluded
		{Kind: Income, Amount: 100, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.February, 28)},
		// exactly on the snapshot date: included
		{Kind: Income, Amount: 200, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.March, 1)},
		// exactly on asOf: included
		{Kind: Income, Amount: 400, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.March, 31)},
		// after asOf: excluded
		{Kind: Income, Amount: 800, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.April, 1)},
	}

	result := ComputeBalances(snapshot, entries, date(2025, time.March, 31))

	assert.Equal(t, money.Money(600), result.PerOwner[household.OwnerPartnerA].Cash)
}

func TestComputeBalances_NilSnapshot(t *testing.T) {
	entries := []Entry{
		{Kind: Income, Amount: 500, Owner: household.OwnerPartnerB, Instrument: Digital, Date: date(2025, time.January, 2)},
	}

	result := ComputeBalances(nil, entries, date(2025, time.January, 31))

	assert.Equal(t, money.Money(500), result.PerOwner[household.OwnerPartnerB].Total)
	assert.Equal(t, money.Money(0), result.PerOwner[household.OwnerPartnerA].Total)
	assert.Equal(t, money.Money(500), result.GrandTotal)
}

func TestComputeBalances_StrayStoredOwner(t *testing.T) {
	// given a stored entry and snapshot row whose owner is none of the three known values
	snapshot := &Snapshot{
		EffectiveDate: date(2025, time.January, 1),
		Amounts: map[household.Owner]map[Instrument]money.Money{
			household.Owner("bob"): {Cash: 100},
		},
	}
	entries := []Entry{
		{Kind: Income, Amount: 500, Owner: household.Owner("bob"), Instrument: Digital, Date: date(2025, time.January, 2)},
		{Kind: Income, Amount: 200, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.January, 3)},
	}

	// when
	result := ComputeBalances(snapshot, entries, date(2025, time.January, 31))

	// then the stray owner is reported as its own bucket and the known owners are untouched
	assert.Equal(t, money.Money(600), result.PerOwner[household.Owner("bob")].Total)
	assert.Equal(t, money.Money(200), result.PerOwner[household.OwnerPartnerA].Total)
	assert.Equal(t, money.Money(800), result.GrandTotal)
}

func TestDTOToEntry_RejectsUnknownEnums(t *testing.T) {
	valid := EntryDTO{Kind: "income", Amount: "10,00", Owner: "partner_a", Instrument: "cash", Category: "groceries", Date: "2025-01-02"}

	_, err := DTOToEntry(valid)
	assert.NoError(t, err)

	badOwner := valid
	badOwner.Owner = "bob"
	_, err = DTOToEntry(badOwner)
	assert.ErrorIs(t, err, ErrInvalidOwner)

	badKind := valid
	badKind.Kind = "transfer"
	_, err = DTOToEntry(badKind)
	assert.ErrorIs(t, err, ErrInvalidKind)

	badInstrument := valid
	badInstrument.Instrument = "crypto"
	_, err = DTOToEntry(badInstrument)
	assert.ErrorIs(t, err, ErrInvalidInstrument)
}

func TestComputeBalances_Idempotent(t *testing.T) {
	entries := []Entry{
		{Kind: Income, Amount: 123, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.January, 2)},
		{Kind: Expense, Amount: 45, Owner: household.OwnerPartnerA, Instrument: Cash, Date: date(2025, time.January, 3)},
	}
	asOf := date(2025, time.January, 31)

	first := ComputeBalances(nil, entries, asOf)
	second := ComputeBalances(nil, entries, asOf)

	assert.Equal(t, first, second)
}
