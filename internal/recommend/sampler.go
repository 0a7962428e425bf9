package recommend

import (
	"math"
	"math/rand/v2"
)

// popularityFloor keeps zero-popularity items selectable
const popularityFloor = 0.1

// PopularityWeight maps a popularity signal to a sampling weight
func PopularityWeight(popularity float64) float64 {
	return math.Log1p(math.Max(popularity, 0)) + popularityFloor
}

// Sample draws up to k distinct items, each with probability proportional to
// its remaining weight at draw time. The returned slice has exactly
// min(k, len(items)) elements. When k covers every item the items are
// returned in their original order. Negative weights count as zero and
// missing weights (weights shorter than items) are zero.
//
// Sample works on private copies of items and weights and never mutates them.
func Sample[T any](rng *rand.Rand, items []T, weights []float64, k int) []T {
	if len(items) == 0 || k <= 0 {
		return []T{}
	}
	if k >= len(items) {
		return append([]T(nil), items...)
	}
	if rng == nil {
		rng = NewRand()
	}

	pool := append([]T(nil), items...)
	w := make([]float64, len(items))
	for i := range w {
		if i < len(weights) && weights[i] > 0 {
			w[i] = weights[i]
		}
	}

	selected := make([]T, 0, k)
	for len(selected) < k {
		total := 0.0
		for _, v := range w {
			total += v
		}

		if total <= 0 {
			// Every remaining weight is zero: fill the rest uniformly.
			rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
			selected = append(selected, pool[:k-len(selected)]...)
			break
		}

		idx := pick(rng, w, total)
		selected = append(selected, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
		w = append(w[:idx], w[idx+1:]...)
	}

	return selected
}

// pick returns the first index whose cumulative weight exceeds a uniform
// draw in [0, total)
func pick(rng *rand.Rand, w []float64, total float64) int {
	r := rng.Float64() * total
	cum := 0.0
	last := -1
	for i, v := range w {
		if v <= 0 {
			continue
		}
		last = i
		cum += v
		if cum > r {
			return i
		}
	}
	// Float rounding can leave r just above the final sum.
	return last
}
