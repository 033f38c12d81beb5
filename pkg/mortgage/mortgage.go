package mortgage

import (
	"math"
	"time"

	"github.com/nidoapp/nido/pkg/money"
)

type PropertyType string

const (
	NewBuild PropertyType = "new_build"
	Resale   PropertyType = "resale"
)

// Affordability classifies the debt-to-income ratio of the monthly payment.
type Affordability string

const (
	AffordabilityOk    Affordability = "ok"
	AffordabilityTight Affordability = "tight"
	AffordabilityRisky Affordability = "risky"
)

// Tax rates in basis points. New builds pay VAT plus stamp duty; resales pay
// a transfer tax with a reduced rate for buyers under 35.
const (
	vatBP                = 1000 // 10%
	stampDutyBP          = 150  // 1.5%
	transferTaxBP        = 1000 // 10%
	transferTaxUnder35BP = 600  // 6%
)

// Config is the purchase scenario the household is exploring. It is a plain
// value object edited by the user; Project only reads it.
type Config struct {
	Price             money.Money
	PropertyType      PropertyType
	BuyerUnder35      bool
	FinancingPercent  int
	AnnualRatePercent float64
	TermYears         int
	NetMonthlyIncome  money.Money
	FurnishingBudget  money.Money
	EmergencyBuffer   money.Money
	MonthlySavings    money.Money
}

// ClosingCosts are the fixed notary, registry and valuation fees added on top
// of taxes. They come from application configuration, not from the user.
type ClosingCosts struct {
	Notary    money.Money
	Registry  money.Money
	Valuation money.Money
}

func (c ClosingCosts) Total() money.Money {
	return c.Notary + c.Registry + c.Valuation
}

// Projection is everything the affordability view needs, derived in one pass.
type Projection struct {
	VAT                money.Money
	StampDuty          money.Money
	TransferTax        money.Money
	TotalTaxes         money.Money
	TotalPurchaseCosts money.Money

	LoanAmount     money.Money
	DownPayment    money.Money
	MonthlyPayment money.Money
	TotalInterest  money.Money

	DebtToIncomeRatio float64
	Affordability     Affordability

	TotalNeeded money.Money
	FundingGap  money.Money

	// MonthsToGoal and TargetDate are set when the gap can be closed at the
	// configured savings rate. A positive gap with no savings rate leaves the
	// projection undetermined: TargetDate stays nil.
	MonthsToGoal int
	TargetDate   *time.Time
}

// Project derives the full affordability picture from a purchase scenario and
// the funds currently available. It is a pure function: same inputs, same
// projection.
func Project(cfg Config, costs ClosingCosts, available money.Money, today time.Time) Projection {
	p := Projection{}

	// Exactly one tax branch applies.
	if cfg.PropertyType == NewBuild {
		p.VAT = cfg.Price.PercentBP(vatBP)
		p.StampDuty = cfg.Price.PercentBP(stampDutyBP)
		p.TotalTaxes = p.VAT + p.StampDuty
	} else {
		rate := int64(transferTaxBP)
		if cfg.BuyerUnder35 {
			rate = transferTaxUnder35BP
		}
		p.TransferTax = cfg.Price.PercentBP(rate)
		p.TotalTaxes = p.TransferTax
	}
	p.TotalPurchaseCosts = p.TotalTaxes + costs.Total()

	p.LoanAmount = money.RoundDiv(int64(cfg.Price)*int64(cfg.FinancingPercent), 100)
	p.DownPayment = cfg.Price - p.LoanAmount

	p.MonthlyPayment = monthlyPayment(p.LoanAmount, cfg.AnnualRatePercent, cfg.TermYears)
	if p.MonthlyPayment > 0 {
		n := int64(cfg.TermYears) * 12
		p.TotalInterest = p.MonthlyPayment*money.Money(n) - p.LoanAmount
	}

	if cfg.NetMonthlyIncome > 0 {
		p.DebtToIncomeRatio = float64(p.MonthlyPayment) / float64(cfg.NetMonthlyIncome) * 100
	}
	p.Affordability = classify(p.DebtToIncomeRatio)

	p.TotalNeeded = p.DownPayment + p.TotalPurchaseCosts + cfg.FurnishingBudget + cfg.EmergencyBuffer
	p.FundingGap = p.TotalNeeded - available

	switch {
	case p.FundingGap <= 0:
		date := today
		p.TargetDate = &date
	case cfg.MonthlySavings > 0:
		p.MonthsToGoal = int(money.CeilDiv(int64(p.FundingGap), int64(cfg.MonthlySavings)))
		date := today.AddDate(0, p.MonthsToGoal, 0)
		p.TargetDate = &date
	}
	// gap > 0 with no savings rate: undetermined, not an error

	return p
}

// monthlyPayment applies the French amortization formula
// P * i * (1+i)^n / ((1+i)^n - 1) and rounds to the nearest cent. Degenerate
// inputs return a zero payment instead of dividing by zero.
func monthlyPayment(principal money.Money, annualRatePercent float64, termYears int) money.Money {
	n := termYears * 12
	i := annualRatePercent / 100 / 12
	if principal <= 0 || i <= 0 || n <= 0 {
		return 0
	}

	factor := math.Pow(1+i, float64(n))
	payment := float64(principal) * i * factor / (factor - 1)
	return money.Money(math.Round(payment))
}

func classify(ratio float64) Affordability {
	switch {
	case ratio <= 30:
		return AffordabilityOk
	case ratio <= 35:
		return AffordabilityTight
	default:
		return AffordabilityRisky
	}
}
