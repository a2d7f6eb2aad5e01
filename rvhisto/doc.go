// Package rvhisto implements a weighted empirical-histogram sampler: a
// (weight, value) table loaded from a flat text file, sampled in O(1) per
// draw via an alias table.
//
// File contents are parsed once per process and cached by path in a
// package-level, read/write-locked table (see cache.go) so that many
// samplers constructed against the same file share the parse. Each
// Sampler still owns its own *rand.Rand, seeded independently at
// construction, per the single-RNG-ownership rule used throughout this
// module.
package rvhisto
