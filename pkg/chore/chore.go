package chore

import (
	"sort"
	"time"
)

// State is the urgency bucket a chore sits in, recomputed fresh from the
// completion history every time it is asked for.
type State string

const (
	StateOverdue State = "overdue"
	StateWarning State = "warning"
	StateOk      State = "ok"
)

// statePriority orders buckets for display, most urgent first.
func statePriority(s State) int {
	switch s {
	case StateOverdue:
		return 0
	case StateWarning:
		return 1
	default:
		return 2
	}
}

// Chore is a recurring household task. LastCompletedAt is nil until the first
// completion; a never-done chore starts out overdue.
type Chore struct {
	Id              int
	Uid             string
	Name            string
	Icon            string
	FrequencyDays   int
	LastCompletedAt *time.Time
}

// HistoryEntry is one completion event. The history is append-only.
type HistoryEntry struct {
	Id          int
	ChoreId     int
	CompletedAt time.Time
}

// DaysSince counts whole days since the last completion. The second return is
// false when the chore has never been completed.
func (c Chore) DaysSince(now time.Time) (int, bool) {
	if c.LastCompletedAt == nil {
		return 0, false
	}
	return int(now.Sub(*c.LastCompletedAt) / (24 * time.Hour)), true
}

// State classifies the chore: overdue once the frequency is exceeded (or
// never done), warning from one day before the frequency, ok otherwise.
func (c Chore) State(now time.Time) State {
	daysSince, done := c.DaysSince(now)
	switch {
	case !done || daysSince > c.FrequencyDays:
		return StateOverdue
	case daysSince >= c.FrequencyDays-1:
		return StateWarning
	default:
		return StateOk
	}
}

// Urgency is daysSince over frequency clamped to [0, 1]. A never-done chore
// is maximally urgent. Used only as a sort key within a state bucket.
func (c Chore) Urgency(now time.Time) float64 {
	daysSince, done := c.DaysSince(now)
	if !done {
		return 1
	}
	if c.FrequencyDays < 1 {
		return 1
	}
	ratio := float64(daysSince) / float64(c.FrequencyDays)
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// Sort orders chores in place for display: overdue before warning before ok,
// most urgent first within a bucket, uid as the final tie-break so the order
// is total and stable across recomputations.
func Sort(chores []Chore, now time.Time) {
	sort.SliceStable(chores, func(i, j int) bool {
		pi, pj := statePriority(chores[i].State(now)), statePriority(chores[j].State(now))
		if pi != pj {
			return pi < pj
		}
		ui, uj := chores[i].Urgency(now), chores[j].Urgency(now)
		if ui != uj {
			return ui > uj
		}
		return chores[i].Uid < chores[j].Uid
	})
}
