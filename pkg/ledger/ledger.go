package ledger

import (
	"errors"
	"time"

	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
)

// Kind tells whether an entry adds to or subtracts from a balance.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

// Instrument is where the money physically sits.
type Instrument string

const (
	Cash    Instrument = "cash"
	Digital Instrument = "digital"
)

func (i Instrument) IsValid() bool {
	return i == Cash || i == Digital
}

var ErrInvalidKind = errors.New("unknown entry kind")
var ErrInvalidOwner = errors.New("unknown owner")
var ErrInvalidInstrument = errors.New("unknown instrument")

// Entry is a single dated income or expense record. Entries are immutable
// once aggregated; edits happen through the repository, never in place.
type Entry struct {
	Id         int
	Uid        string
	Kind       Kind
	Amount     money.Money
	Owner      household.Owner
	Instrument Instrument
	Category   category.Category
	Date       time.Time
	Recurring  bool
	Concept    string
}

// Snapshot is the per-owner, per-instrument starting balance of a household.
// Aggregation is bounded below by EffectiveDate: entries dated earlier are
// already baked into the snapshot amounts and must not be counted again.
type Snapshot struct {
	EffectiveDate time.Time
	Amounts       map[household.Owner]map[Instrument]money.Money
}

// OwnerBalance is the running balance of one owner split by instrument.
type OwnerBalance struct {
	Cash    money.Money
	Digital money.Money
	Total   money.Money
}

// BalanceResult is the derived balance view. It is recomputed on every read
// and never persisted.
type BalanceResult struct {
	PerOwner   map[household.Owner]OwnerBalance
	GrandTotal money.Money
}

// ComputeBalances folds dated entries on top of a starting snapshot into
// per-owner balances as of the given date. It is a pure function of its
// inputs: no hidden state, and entry order does not matter because all
// arithmetic is integer addition.
//
// A nil snapshot seeds every owner at zero; only entries within
// [snapshot.EffectiveDate, asOf] (inclusive on both ends) are counted.
func ComputeBalances(snapshot *Snapshot, entries []Entry, asOf time.Time) BalanceResult {
	perOwner := map[household.Owner]map[Instrument]money.Money{
		household.OwnerPartnerA: {Cash: 0, Digital: 0},
		household.OwnerPartnerB: {Cash: 0, Digital: 0},
		household.OwnerJoint:    {Cash: 0, Digital: 0},
	}

	// Owner values outside the three known ones should never reach storage,
	// but a stored stray must not break the read path. Unknown owners get a
	// lazily created bucket and show up in the result like any other.
	bucket := func(owner household.Owner) map[Instrument]money.Money {
		byInstrument, ok := perOwner[owner]
		if !ok {
			byInstrument = map[Instrument]money.Money{}
			perOwner[owner] = byInstrument
		}
		return byInstrument
	}

	var floor time.Time
	if snapshot != nil {
		floor = snapshot.EffectiveDate
		for owner, byInstrument := range snapshot.Amounts {
			for instrument, amount := range byInstrument {
				bucket(owner)[instrument] += amount
			}
		}
	}

	for _, e := range entries {
		if e.Date.Before(floor) || e.Date.After(asOf) {
			continue
		}
		switch e.Kind {
		case Income:
			bucket(e.Owner)[e.Instrument] += e.Amount
		case Expense:
			bucket(e.Owner)[e.Instrument] -= e.Amount
		}
	}

	result := BalanceResult{PerOwner: make(map[household.Owner]OwnerBalance, len(perOwner))}
	for owner, byInstrument := range perOwner {
		balance := OwnerBalance{
			Cash:    byInstrument[Cash],
			Digital: byInstrument[Digital],
		}
		balance.Total = balance.Cash + balance.Digital
		result.PerOwner[owner] = balance
		result.GrandTotal += balance.Total
	}
	return result
}
