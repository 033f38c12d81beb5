package goal

import (
	"testing"
	"time"

	"github.com/nidoapp/nido/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoal_ProgressPercent(t *testing.T) {
	t.Run("should round half up", func(t *testing.T) {
		g := Goal{Target: 30000, Current: 10000}
		assert.Equal(t, 33, g.ProgressPercent())

		g.Current = 10050
		assert.Equal(t, 34, g.ProgressPercent()) // 33.5 rounds up
	})

	t.Run("should cap at 100 when overshot", func(t *testing.T) {
		g := Goal{Target: 10000, Current: 15000}
		assert.Equal(t, 100, g.ProgressPercent())
	})

	t.Run("should yield 0 for a zero target", func(t *testing.T) {
		g := Goal{Target: 0, Current: 5000}
		assert.Equal(t, 0, g.ProgressPercent())
	})

	t.Run("should never decrease over successive contributions", func(t *testing.T) {
		g := Goal{Target: 123457}
		previous := g.ProgressPercent()
		for _, amount := range []money.Money{1, 999, 50000, 1, 100000, 3} {
			g.Current += amount
			current := g.ProgressPercent()
			assert.GreaterOrEqual(t, current, previous)
			previous = current
		}
	})
}

func TestGoal_IsCompleted(t *testing.T) {
	assert.False(t, Goal{Target: 10000, Current: 9999}.IsCompleted())
	assert.True(t, Goal{Target: 10000, Current: 10000}.IsCompleted())
	assert.True(t, Goal{Target: 10000, Current: 10001}.IsCompleted())
	// a zero-target goal is never considered done
	assert.False(t, Goal{Target: 0, Current: 0}.IsCompleted())
}

func TestGoal_DaysRemaining(t *testing.T) {
	today := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("should count days until the deadline", func(t *testing.T) {
		deadline := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
		g := Goal{Deadline: &deadline}

		days, ok := g.DaysRemaining(today)

		require.True(t, ok)
		assert.Equal(t, 5, days)
	})

	t.Run("should be zero on the deadline itself", func(t *testing.T) {
		deadline := today
		g := Goal{Deadline: &deadline}

		days, ok := g.DaysRemaining(today)

		require.True(t, ok)
		assert.Equal(t, 0, days)
	})

	t.Run("should go negative once overdue", func(t *testing.T) {
		deadline := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)
		g := Goal{Deadline: &deadline}

		days, ok := g.DaysRemaining(today)

		require.True(t, ok)
		assert.Equal(t, -3, days)
	})

	t.Run("should report no deadline", func(t *testing.T) {
		_, ok := Goal{}.DaysRemaining(today)
		assert.False(t, ok)
	})
}
