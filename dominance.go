// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import "sort"

// paretoMin compares two minimised objective vectors
//  Output:
//   aDom -- a is no worse on all and strictly better on at least one
//   bDom -- the converse
func paretoMin(a, b []float64) (aDom, bDom bool) {
	aBetter, bBetter := false, false
	for i := 0; i < len(a); i++ {
		if a[i] < b[i] {
			aBetter = true
		}
		if b[i] < a[i] {
			bBetter = true
		}
	}
	aDom = aBetter && !bBetter
	bDom = bBetter && !aBetter
	return
}

// Compare compares two (evaluated) individuals using constraint-domination: a feasible
// individual dominates an infeasible one; between two infeasible ones the smaller
// aggregate violation dominates; between two feasible ones the usual Pareto rule on
// the minimised objectives applies.
func Compare(A, B *Individual) (A_dominates, B_dominates bool) {
	if A.Violation > 0 {
		if B.Violation > 0 {
			if A.Violation < B.Violation {
				A_dominates = true
			}
			if B.Violation < A.Violation {
				B_dominates = true
			}
			return
		}
		B_dominates = true
		return
	}
	if B.Violation > 0 {
		A_dominates = true
		return
	}
	return paretoMin(A.Ovas, B.Ovas)
}

// Dominates tells whether A constraint-dominates B
func Dominates(A, B *Individual) bool {
	aDom, _ := Compare(A, B)
	return aDom
}

// SortByFronts partitions a pool of individuals into ranked non-dominated fronts using
// the fast non-dominated sort (Deb 2002). FrontId is set on every individual (1 = best
// front) and the returned fronts hold indices into the input slice, each front keeping
// the input order. The result is deterministic given the input order.
//  Output:
//   fronts -- [nfronts][size-of-front] indices of individuals
func SortByFronts(pool []*Individual) (fronts [][]int) {

	// domination bookkeeping
	n := len(pool)
	idom := make([][]int, n) // indices dominated by i
	ndby := make([]int, n)   // number of individuals dominating i
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			iDom, jDom := Compare(pool[i], pool[j])
			if iDom {
				idom[i] = append(idom[i], j)
				ndby[j]++
			}
			if jDom {
				idom[j] = append(idom[j], i)
				ndby[i]++
			}
		}
	}

	// first front
	var front []int
	for i := 0; i < n; i++ {
		if ndby[i] == 0 {
			pool[i].FrontId = 1
			front = append(front, i)
		}
	}

	// strip and iterate
	rank := 1
	for len(front) > 0 {
		fronts = append(fronts, front)
		var next []int
		for _, i := range front {
			for _, j := range idom[i] {
				ndby[j]--
				if ndby[j] == 0 {
					pool[j].FrontId = rank + 1
					next = append(next, j)
				}
			}
		}
		sort.Ints(next) // keep input order within each front
		front = next
		rank++
	}
	return
}
