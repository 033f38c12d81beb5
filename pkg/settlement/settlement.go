package settlement

import (
	"fmt"

	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/ledger"
	"github.com/nidoapp/nido/pkg/money"
)

// DefaultPeaceThreshold is the dead-zone below which a contribution difference
// is treated as rounding noise instead of a debt: one major unit in cents.
const DefaultPeaceThreshold money.Money = 100

// PoolConfig tunes the pure settlement computation.
type PoolConfig struct {
	// IncludeJoint pools expenses paid from the joint pot, attributing half to
	// each partner. The joint half-shares cancel out in the difference, so the
	// flag changes the reported pool composition, never the resulting debt.
	IncludeJoint bool
	// PeaceThreshold is the dead-zone width; DefaultPeaceThreshold when zero.
	PeaceThreshold money.Money
}

// Result is the outcome of pooling shared-category spending between the two
// partners.
type Result struct {
	PaidByA money.Money
	PaidByB money.Money
	Pool    money.Money
	Half    money.Money
	// Debtor and Creditor are set only when AtPeace is false.
	Debtor   household.Owner
	Creditor household.Owner
	Amount   money.Money
	AtPeace  bool
}

// Compute pools expense entries in shared categories and derives who owes
// whom. Settlement-marker entries are counted as transfers: the payer's
// settlement expense raises their contribution and the receiver's settlement
// income lowers theirs, so a recorded settlement zeroes the debt on the next
// computation without touching the underlying expense history.
//
// half = floor(pool / 2); difference = paidByA - half. A difference inside
// the dead-zone means the couple is even and no debt is reported.
func Compute(entries []ledger.Entry, cfg PoolConfig) Result {
	threshold := cfg.PeaceThreshold
	if threshold == 0 {
		threshold = DefaultPeaceThreshold
	}

	var paidA, paidB, joint money.Money
	for _, e := range entries {
		if e.Category == category.Settlement {
			switch {
			case e.Kind == ledger.Expense && e.Owner == household.OwnerPartnerA:
				paidA += e.Amount
			case e.Kind == ledger.Expense && e.Owner == household.OwnerPartnerB:
				paidB += e.Amount
			case e.Kind == ledger.Income && e.Owner == household.OwnerPartnerA:
				paidA -= e.Amount
			case e.Kind == ledger.Income && e.Owner == household.OwnerPartnerB:
				paidB -= e.Amount
			}
			continue
		}
		if e.Kind != ledger.Expense || !e.Category.SharedForSettlement() {
			continue
		}
		switch {
		case e.Owner == household.OwnerPartnerA:
			paidA += e.Amount
		case e.Owner == household.OwnerPartnerB:
			paidB += e.Amount
		case e.Owner == household.OwnerJoint && cfg.IncludeJoint:
			joint += e.Amount
		}
	}

	// Joint money already benefits both partners equally; split it so the pool
	// reflects it without shifting the difference.
	paidA += joint / 2
	paidB += joint - joint/2

	pool := paidA + paidB
	half := pool / 2
	difference := paidA - half

	result := Result{PaidByA: paidA, PaidByB: paidB, Pool: pool, Half: half}

	abs := difference
	if abs < 0 {
		abs = -abs
	}
	if abs < threshold {
		result.AtPeace = true
		return result
	}

	result.Amount = abs
	if difference > 0 {
		result.Debtor = household.OwnerPartnerB
		result.Creditor = household.OwnerPartnerA
	} else {
		result.Debtor = household.OwnerPartnerA
		result.Creditor = household.OwnerPartnerB
	}
	return result
}

// Statement renders a human-readable summary of the result using the
// household's partner names.
func (r Result) Statement(h household.Household) string {
	if r.AtPeace {
		return "All settled, nothing to pay"
	}
	return fmt.Sprintf("%s owes %s %s", h.PartnerName(r.Debtor), h.PartnerName(r.Creditor), r.Amount.Format())
}
