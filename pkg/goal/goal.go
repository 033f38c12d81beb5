package goal

import (
	"time"

	"github.com/nidoapp/nido/pkg/money"
)

// Goal is a savings target the household is working towards. Current only
// grows through explicit contributions; overshooting the target is allowed.
type Goal struct {
	Id       int
	Uid      string
	Name     string
	Target   money.Money
	Current  money.Money
	Color    string
	Deadline *time.Time
}

// ProgressPercent is capped at 100 even when the goal is overshot. A zero
// target yields 0 instead of dividing by zero.
func (g Goal) ProgressPercent() int {
	if g.Target <= 0 {
		return 0
	}
	percent := int(money.RoundDiv(int64(g.Current)*100, int64(g.Target)))
	if percent > 100 {
		percent = 100
	}
	return percent
}

// IsCompleted is recomputed every time rather than stored, so a later data
// correction that lowers Current also un-completes the goal.
func (g Goal) IsCompleted() bool {
	return g.Target > 0 && g.Current >= g.Target
}

// DaysRemaining counts days until the deadline, rounding partial days up.
// Negative means overdue, zero means due today. Purely informational: it
// never blocks a contribution. The second return reports whether a deadline
// is set at all.
func (g Goal) DaysRemaining(today time.Time) (int, bool) {
	if g.Deadline == nil {
		return 0, false
	}
	day := 24 * time.Hour
	diff := g.Deadline.Sub(today)
	days := int(diff / day)
	if diff%day > 0 {
		days++
	}
	return days, true
}
