package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(0.414, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(0.414, 100)
		got := policy.evaluate(0.5, 10)

		expected := 0.5 + 0.414*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute mean + c*sqrt(ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(0.414, 100)

		require.Panics(t, func() {
			policy.evaluate(0.5, 0)
		}, "Should panic when n is 0")
	})

	t.Run("single parent visit has no exploration bonus", func(t *testing.T) {
		policy := newUCT(0.414, 1)

		require.Equal(t, -0.25, policy.evaluate(-0.25, 1))
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := newUCT(0.414, 100).evaluate(0.5, 10)
		score2 := newUCT(0.414, 1000).evaluate(0.5, 10)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(0.414, 100)

		require.Greater(t, policy.evaluate(0.5, 10), policy.evaluate(0.5, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with the mean", func(t *testing.T) {
		policy := newUCT(0.414, 100)

		require.Greater(t, policy.evaluate(0.9, 10), policy.evaluate(0.1, 10),
			"Higher mean should increase exploitation term")
	})
}
