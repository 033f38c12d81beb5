// Package category defines the closed set of ledger categories and the traits
// the rest of the application derives from them. Categories used to be free
// strings; keeping them in one table makes the settlement pool explicit
// instead of inferred from tag names.
package category

// Category tags a ledger entry with what the money was for.
type Category string

const (
	Rent          Category = "rent"
	Utilities     Category = "utilities"
	Groceries     Category = "groceries"
	Subscriptions Category = "subscriptions"
	Transport     Category = "transport"
	Health        Category = "health"
	Leisure       Category = "leisure"
	Salary        Category = "salary"
	Savings       Category = "savings"
	Settlement    Category = "settlement"
	Other         Category = "other"
)

// Traits describes how a category behaves across the application.
type Traits struct {
	// SharedForSettlement marks categories whose spending benefits both
	// partners and is therefore pooled by the settlement engine.
	SharedForSettlement bool
	// DisplayGroup is the heading the category is listed under.
	DisplayGroup string
}

var traits = map[Category]Traits{
	Rent:          {SharedForSettlement: true, DisplayGroup: "Home"},
	Utilities:     {SharedForSettlement: true, DisplayGroup: "Home"},
	Groceries:     {SharedForSettlement: true, DisplayGroup: "Home"},
	Subscriptions: {SharedForSettlement: true, DisplayGroup: "Home"},
	Transport:     {SharedForSettlement: false, DisplayGroup: "Personal"},
	Health:        {SharedForSettlement: false, DisplayGroup: "Personal"},
	Leisure:       {SharedForSettlement: false, DisplayGroup: "Personal"},
	Salary:        {SharedForSettlement: false, DisplayGroup: "Income"},
	Savings:       {SharedForSettlement: false, DisplayGroup: "Savings"},
	Settlement:    {SharedForSettlement: false, DisplayGroup: "Transfers"},
	Other:         {SharedForSettlement: false, DisplayGroup: "Other"},
}

// Normalize maps an arbitrary tag to a known category, falling back to Other.
func Normalize(tag string) Category {
	c := Category(tag)
	if _, known := traits[c]; known {
		return c
	}
	return Other
}

// TraitsOf returns the traits for a category. Unknown categories get Other's
// traits.
func TraitsOf(c Category) Traits {
	if t, known := traits[c]; known {
		return t
	}
	return traits[Other]
}

// SharedForSettlement reports whether spending in this category is pooled by
// the settlement engine.
func (c Category) SharedForSettlement() bool {
	return TraitsOf(c).SharedForSettlement
}

// All returns every known category in a fixed order, for building UI pickers.
func All() []Category {
	return []Category{
		Rent, Utilities, Groceries, Subscriptions,
		Transport, Health, Leisure,
		Salary, Savings, Settlement, Other,
	}
}
