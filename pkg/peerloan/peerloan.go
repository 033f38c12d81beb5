package peerloan

import (
	"fmt"
	"time"

	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
)

// Loan is an informal loan between the two partners: "I covered your share of
// the concert tickets". Loans are settled one by one, never netted away
// automatically.
type Loan struct {
	Id          int
	Uid         string
	Amount      money.Money
	From        household.Owner
	To          household.Owner
	Date        time.Time
	Concept     string
	Settled     bool
	SettledDate *time.Time
}

// NetResult is the single signed balance the open loans collapse into.
type NetResult struct {
	// Debtor is nil when the loans cancel out.
	Debtor    *household.Owner
	Amount    money.Money
	Statement string
}

// Net folds the unsettled loans between the two partners into one balance.
// Loans touching the joint pot are excluded: joint-account lending is not a
// debt between the partners. The accumulator counts A→B lending as positive,
// so a negative net means partner A received more than they gave.
func Net(loans []Loan, h household.Household) NetResult {
	var acc money.Money
	for _, l := range loans {
		if l.Settled {
			continue
		}
		if !l.From.IsPartner() || !l.To.IsPartner() {
			continue
		}
		if l.From == household.OwnerPartnerA {
			acc += l.Amount
		} else {
			acc -= l.Amount
		}
	}

	if acc == 0 {
		return NetResult{Statement: "All loans balanced"}
	}

	var debtor household.Owner
	amount := acc
	if acc > 0 {
		// A lent more, so B owes the difference.
		debtor = household.OwnerPartnerB
	} else {
		debtor = household.OwnerPartnerA
		amount = -acc
	}

	return NetResult{
		Debtor: &debtor,
		Amount: amount,
		Statement: fmt.Sprintf("%s owes %s %s",
			h.PartnerName(debtor), h.PartnerName(debtor.Other()), amount.Format()),
	}
}
