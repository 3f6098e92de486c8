// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"
	"sort"
)

// nsga2 implements the NSGA-II selection engine (Deb et al. 2002): elitist merge of
// parents and offspring, fast non-dominated sorting, and crowding-distance truncation
// of the last included front
type nsga2 struct{}

// Name returns the algorithm name
func (e *nsga2) Name() string { return "NSGA2" }

// AdditionalData returns algorithm-specific snapshot data
func (e *nsga2) AdditionalData(o *Optimiser) map[string]interface{} { return nil }

// Prepare ranks the seeded population and assigns crowding distances, so that the
// first tournament already has both
func (e *nsga2) Prepare(o *Optimiser) error {
	fronts := SortByFronts(o.Pop)
	for _, front := range fronts {
		members := make([]*Individual, len(front))
		for i, idx := range front {
			members[i] = o.Pop[idx]
		}
		crowdingDistance(members)
	}
	return nil
}

// Evolve runs one NSGA-II generation
func (e *nsga2) Evolve(o *Optimiser) error {

	// offspring via binary tournaments, crossover and mutation
	n := o.Opts.Ninds
	win := nsga2win(o.Rng)
	off := make([]*Individual, 0, n+1)
	for len(off) < n {
		A := Tournament(o.Pop, win, o.Rng)
		B := Tournament(o.Pop, win, o.Rng)
		a, b := NewIndividual(o.Prob), NewIndividual(o.Prob)
		Crossover(a, b, A, B, o.ops, o.Rng)
		Mutation(a, o.ops, o.Rng)
		Mutation(b, o.ops, o.Rng)
		off = append(off, a)
		if len(off) < n {
			off = append(off, b)
		}
	}
	if err := o.evaluateAll(off); err != nil {
		return err
	}

	// combined pool: parents then offspring
	pool := make([]*Individual, 0, 2*n)
	pool = append(pool, o.Pop...)
	pool = append(pool, off...)
	fronts := SortByFronts(pool)

	// crowding distances per front
	for _, front := range fronts {
		members := make([]*Individual, len(front))
		for i, idx := range front {
			members[i] = pool[idx]
		}
		crowdingDistance(members)
	}

	// fill front by front; truncate the splitting front by descending crowding
	// distance with ties broken by original index
	next, last := fill(pool, fronts, n)
	if len(last) > 0 {
		members := make([]*Individual, len(last))
		for i, idx := range last {
			members[i] = pool[idx]
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].DistCrowd > members[j].DistCrowd
		})
		next = append(next, members[:n-len(next)]...)
	}
	o.Pop = next
	return nil
}

// nsga2win returns the NSGA-II tournament comparison: lower rank wins, then higher
// crowding distance, then a coin flip
func nsga2win(rng *Rand) func(A, B *Individual) bool {
	return func(A, B *Individual) bool {
		if A.FrontId != B.FrontId {
			return A.FrontId < B.FrontId
		}
		if A.DistCrowd != B.DistCrowd {
			return A.DistCrowd > B.DistCrowd
		}
		return rng.FlipCoin(0.5)
	}
}

// crowdingDistance assigns the crowding distance of all members of one front: for each
// objective the two boundary members get the largest finite float (a sentinel that
// survives JSON round-trips) and interior members accumulate the normalised gap of
// their neighbours
func crowdingDistance(front []*Individual) {
	n := len(front)
	if n == 0 {
		return
	}
	for _, ind := range front {
		ind.DistCrowd = 0
	}
	nova := len(front[0].Ovas)
	s := make([]*Individual, n)
	copy(s, front)
	for j := 0; j < nova; j++ {
		sortByOva(s, j)
		s[0].DistCrowd = math.MaxFloat64
		s[n-1].DistCrowd = math.MaxFloat64
		den := s[n-1].Ovas[j] - s[0].Ovas[j]
		if den <= 0 {
			continue
		}
		for i := 1; i < n-1; i++ {
			if s[i].DistCrowd < math.MaxFloat64 {
				s[i].DistCrowd += (s[i+1].Ovas[j] - s[i-1].Ovas[j]) / den
			}
		}
	}
}
