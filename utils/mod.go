package utils

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ChooseRandom picks an item uniformly at random. It panics on an empty slice.
func ChooseRandom[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// Maximize returns the item with the highest score, breaking ties uniformly at
// random. NaN scores never win unless every score is NaN.
func Maximize[T any](rng *rand.Rand, items []T, score func(T) float64) T {
	best := make([]T, 0, 1)
	bestScore := math.Inf(-1)
	for _, item := range items {
		s := score(item)
		switch {
		case s > bestScore:
			bestScore = s
			best = append(best[:0], item)
		case s == bestScore:
			best = append(best, item)
		}
	}
	if len(best) == 0 {
		return ChooseRandom(rng, items)
	}
	return ChooseRandom(rng, best)
}

// ChooseWeighted samples an item with probability proportional to its weight.
// Negative and NaN weights count as zero; when no item has a positive weight the
// choice is uniform. Infinite weights share the choice among themselves.
func ChooseWeighted[T any](rng *rand.Rand, items []T, weight func(T) float64) T {
	weights := make([]float64, len(items))
	var infinite []T
	largest := 0.0
	for i, item := range items {
		w := weight(item)
		if !(w > 0) {
			continue
		}
		if math.IsInf(w, 1) {
			infinite = append(infinite, item)
		}
		weights[i] = w
		largest = max(largest, w)
	}
	if len(infinite) > 0 {
		return ChooseRandom(rng, infinite)
	}
	if largest == 0 {
		return ChooseRandom(rng, items)
	}

	// scaled so the running total cannot overflow
	cumulative := make([]float64, len(items))
	total := 0.0
	for i, w := range weights {
		total += w / largest
		cumulative[i] = total
	}

	r := rng.Float64() * total
	i := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > r })
	if i == len(items) { // rounding
		i = len(items) - 1
	}
	return items[i]
}
