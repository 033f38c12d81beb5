package chore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func choreDoneDaysAgo(uid string, frequencyDays, daysAgo int) Chore {
	last := now.AddDate(0, 0, -daysAgo)
	return Chore{Uid: uid, FrequencyDays: frequencyDays, LastCompletedAt: &last}
}

func TestChore_State(t *testing.T) {
	t.Run("weekly chore transitions at six and seven days", func(t *testing.T) {
		assert.Equal(t, StateOk, choreDoneDaysAgo("a", 7, 5).State(now))
		assert.Equal(t, StateWarning, choreDoneDaysAgo("a", 7, 6).State(now))
		assert.Equal(t, StateWarning, choreDoneDaysAgo("a", 7, 7).State(now))
		assert.Equal(t, StateOverdue, choreDoneDaysAgo("a", 7, 8).State(now))
	})

	t.Run("never-completed chore starts overdue", func(t *testing.T) {
		assert.Equal(t, StateOverdue, Chore{FrequencyDays: 7}.State(now))
	})

	t.Run("daily chore warns immediately after completion", func(t *testing.T) {
		// frequency 1 means daysSince 0 is already >= frequency-1
		assert.Equal(t, StateWarning, choreDoneDaysAgo("a", 1, 0).State(now))
		assert.Equal(t, StateWarning, choreDoneDaysAgo("a", 1, 1).State(now))
		assert.Equal(t, StateOverdue, choreDoneDaysAgo("a", 1, 2).State(now))
	})
}

func TestChore_Urgency(t *testing.T) {
	assert.InDelta(t, 5.0/7.0, choreDoneDaysAgo("a", 7, 5).Urgency(now), 1e-9)
	// clamped at 1 however long a chore has been neglected
	assert.Equal(t, 1.0, choreDoneDaysAgo("a", 7, 40).Urgency(now))
	assert.Equal(t, 1.0, Chore{FrequencyDays: 7}.Urgency(now))
	assert.Equal(t, 0.0, choreDoneDaysAgo("a", 7, 0).Urgency(now))
}

func TestSort(t *testing.T) {
	t.Run("orders by state then urgency then uid", func(t *testing.T) {
		chores := []Chore{
			choreDoneDaysAgo("fresh", 7, 1),       // ok, low urgency
			choreDoneDaysAgo("pressing", 7, 6),    // warning
			choreDoneDaysAgo("neglected", 7, 20),  // overdue, clamped urgency
			{Uid: "never-done", FrequencyDays: 7}, // overdue, clamped urgency
			choreDoneDaysAgo("aging", 7, 5),       // ok, higher urgency
		}

		Sort(chores, now)

		uids := make([]string, len(chores))
		for i, c := range chores {
			uids[i] = c.Uid
		}
		// the two clamped overdue chores tie on urgency and fall back to uid order
		assert.Equal(t, []string{"neglected", "never-done", "pressing", "aging", "fresh"}, uids)
	})

	t.Run("is deterministic across repeated sorts", func(t *testing.T) {
		chores := []Chore{
			{Uid: "b", FrequencyDays: 7},
			{Uid: "a", FrequencyDays: 7},
			{Uid: "c", FrequencyDays: 7},
		}

		Sort(chores, now)
		first := append([]Chore{}, chores...)
		Sort(chores, now)

		assert.Equal(t, first, chores)
		assert.Equal(t, "a", chores[0].Uid)
	})
}
