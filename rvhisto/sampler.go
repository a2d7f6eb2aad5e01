package rvhisto

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sampler draws real-valued samples from a (value, weight) empirical
// histogram. Each Sampler owns its own RNG instance, seeded once at
// construction; the parsed file contents it draws from may be shared
// with other samplers via the process-wide cache (cache.go).
type Sampler struct {
	rng    *rand.Rand
	values []float64
	alias  *aliasTable

	min, mean, max float64
}

// NewSamplerFromFile loads the weighted histogram at path (sharing the
// process-wide parse cache) and returns a Sampler seeded with seed.
func NewSamplerFromFile(seed int64, path string) (*Sampler, error) {
	weights, values, err := loadCached(path)
	if err != nil {
		return nil, err
	}
	return newSampler(seed, weights, values)
}

// NewSamplerFromVector builds a Sampler directly from in-memory weights
// and values, bypassing the file cache. Used by tests and by callers that
// already hold histogram data in memory.
func NewSamplerFromVector(seed int64, values []float64, weights []float64) (*Sampler, error) {
	return newSampler(seed, weights, values)
}

func newSampler(seed int64, weights, values []float64) (*Sampler, error) {
	if len(weights) != len(values) {
		return nil, fmt.Errorf("rvhisto: %d weights but %d values", len(weights), len(values))
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("rvhisto: empty histogram")
	}
	total := floats.Sum(weights)
	if total <= 0 {
		return nil, fmt.Errorf("rvhisto: total weight must be positive, got %v", total)
	}

	s := &Sampler{
		rng:    rand.New(rand.NewSource(seed)),
		values: values,
		alias:  newAliasTable(weights),
		min:    floats.Min(values),
		max:    floats.Max(values),
		mean:   stat.Mean(values, weights),
	}
	return s, nil
}

// Sample draws one value from the histogram in O(1).
func (s *Sampler) Sample() float64 {
	idx := s.alias.sample(s.rng)
	return s.values[idx]
}

// Min returns the minimum raw value in the histogram.
func (s *Sampler) Min() float64 { return s.min }

// Mean returns the weight-normalized mean of the histogram.
func (s *Sampler) Mean() float64 { return s.mean }

// Max returns the maximum raw value in the histogram.
func (s *Sampler) Max() float64 { return s.max }
