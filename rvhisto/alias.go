package rvhisto

import "math/rand"

// aliasTable is a Vose alias-method index sampler: O(n) to build, O(1)
// to draw from, over a fixed weight vector.
type aliasTable struct {
	prob  []float64
	alias []int
}

func newAliasTable(weights []float64) *aliasTable {
	n := len(weights)
	total := 0.0
	for _, w := range weights {
		total += w
	}

	scaled := make([]float64, n)
	for i, w := range weights {
		scaled[i] = w * float64(n) / total
	}

	prob := make([]float64, n)
	alias := make([]int, n)

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, p := range scaled {
		if p < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		prob[l] = scaled[l]
		alias[l] = g

		scaled[g] = scaled[g] + scaled[l] - 1.0
		if scaled[g] < 1.0 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}
	// Leftover entries accumulated floating-point slack above 1.0 (or
	// exactly 1.0); they are drawn unconditionally.
	for len(large) > 0 {
		g := large[len(large)-1]
		large = large[:len(large)-1]
		prob[g] = 1.0
	}
	for len(small) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		prob[l] = 1.0
	}

	return &aliasTable{prob: prob, alias: alias}
}

func (a *aliasTable) sample(rng *rand.Rand) int {
	i := rng.Intn(len(a.prob))
	if rng.Float64() < a.prob[i] {
		return i
	}
	return a.alias[i]
}
