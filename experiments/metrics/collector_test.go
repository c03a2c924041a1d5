package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting search events", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		for i := 0; i < 5; i++ {
			c.AddRound()
		}
		c.AddExpansion()
		c.AddExpansion()
		c.AddTerminalVisit()

		metric := c.Complete(5)

		require.Equal(t, 5, metric.Rounds)
		require.Equal(t, 2, metric.Expansions)
		require.Equal(t, 1, metric.TerminalVisits)
		require.Equal(t, 5, metric.RootPlayouts)
		require.GreaterOrEqual(t, metric.Duration.Nanoseconds(), int64(0))
	})

	t.Run("restarting clears the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddRound()
		c.Start()

		require.Zero(t, c.Complete(0).Rounds)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddRound()

		require.Equal(t, SearchMetric{}, c.Complete(3))
	})
}
