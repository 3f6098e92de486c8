// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sort"
)

// Rand is the random numbers generator used by one optimisation run. Every stochastic
// decision (sampling, crossover, mutation, selection, niching) draws from the same
// generator so that a run with a fixed seed is reproducible.
type Rand struct {
	seed uint64
	src  *rand.Rand
}

// NewRand creates a new generator with the given seed
func NewRand(seed uint64) (o *Rand) {
	o = new(Rand)
	o.Reseed(seed)
	return
}

// NewRandEntropy creates a new generator seeded from OS entropy
func NewRandEntropy() (o *Rand) {
	var b [8]byte
	crand.Read(b[:])
	return NewRand(binary.LittleEndian.Uint64(b[:]))
}

// Seed returns the seed this generator was created with
func (o *Rand) Seed() uint64 {
	return o.seed
}

// Reseed re-initialises the generator with a new seed
func (o *Rand) Reseed(seed uint64) {
	o.seed = seed
	o.src = rand.New(rand.NewSource(int64(seed)))
}

// Float64 returns a uniform number in [0, 1)
func (o *Rand) Float64() float64 {
	return o.src.Float64()
}

// Range returns a uniform number in [lo, hi)
func (o *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*o.src.Float64()
}

// Intn returns a uniform integer in [0, n)
func (o *Rand) Intn(n int) int {
	return o.src.Intn(n)
}

// Int returns a uniform integer in [lo, hi] (both ends inclusive)
func (o *Rand) Int(lo, hi int) int {
	return lo + o.src.Intn(hi-lo+1)
}

// FlipCoin returns true with probability p
func (o *Rand) FlipCoin(p float64) bool {
	if p >= 1.0 {
		return true
	}
	if p <= 0.0 {
		return false
	}
	return o.src.Float64() <= p
}

// IntPair returns two distinct uniform integers in [0, n)
func (o *Rand) IntPair(n int) (i, j int) {
	i = o.src.Intn(n)
	j = o.src.Intn(n - 1)
	if j >= i {
		j++
	}
	return
}

// SimplexSample returns a uniform sample from the unit simplex in ℝ^k;
// i.e. k non-negative numbers adding to 1
func (o *Rand) SimplexSample(k int) (x []float64) {
	x = make([]float64, k)
	if k == 1 {
		x[0] = 1
		return
	}
	cuts := make([]float64, k-1)
	for i := range cuts {
		cuts[i] = o.src.Float64()
	}
	sort.Float64s(cuts)
	prev := 0.0
	for i := 0; i < k-1; i++ {
		x[i] = cuts[i] - prev
		prev = cuts[i]
	}
	x[k-1] = 1.0 - prev
	return
}

// resumeSeed derives the deterministic seed used when resuming a run at a given
// generation without a serialised generator state
func resumeSeed(seed uint64, generation int) uint64 {
	z := seed + 0x9e3779b97f4a7c15*uint64(generation+1)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
