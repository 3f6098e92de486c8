// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import "sort"

// hvWFG computes the hypervolume for k ≥ 4 with the WFG recursive exclusive
// hypervolume (While et al. 2012): points are processed in descending last objective
// and each contributes its inclusive volume minus the volume of its limit set.
func hvWFG(points [][]float64, ref []float64) float64 {
	ps := make([][]float64, len(points))
	copy(ps, points)
	sortByLastDesc(ps)
	return wfg(ps, ref)
}

// sortByLastDesc orders points by their last objective descending (worst first), which
// keeps the limit sets small down the recursion
func sortByLastDesc(ps [][]float64) {
	d := len(ps[0]) - 1
	sort.SliceStable(ps, func(i, j int) bool { return ps[i][d] > ps[j][d] })
}

// wfg sums the exclusive contributions of all points
func wfg(ps [][]float64, ref []float64) (hv float64) {
	for i := range ps {
		hv += exclhv(ps, i, ref)
	}
	return
}

// exclhv is the volume dominated by ps[i] and by no point after it
func exclhv(ps [][]float64, i int, ref []float64) float64 {
	hv := inclhv(ps[i], ref)
	limit := nds(limitSet(ps, i))
	if len(limit) > 0 {
		if len(ref) == 2 {
			hv -= hv2d(limit, ref)
		} else {
			// sorted by descending last objective, every limit point shares the last
			// objective of ps[i]: slice that dimension off and recurse one lower,
			// down to the 2D sweep
			d := len(ref) - 1
			sliced := make([][]float64, len(limit))
			for m, q := range limit {
				sliced[m] = q[:d]
			}
			depth := ref[d] - ps[i][d]
			if d == 2 {
				hv -= depth * hv2d(sliced, ref[:d])
			} else {
				sortByLastDesc(sliced)
				hv -= depth * wfg(sliced, ref[:d])
			}
		}
	}
	return hv
}

// inclhv is the volume of the box [p, ref]
func inclhv(p, ref []float64) float64 {
	v := 1.0
	for j, x := range p {
		v *= ref[j] - x
	}
	return v
}

// limitSet replaces every point after i by its componentwise worsening against ps[i]
func limitSet(ps [][]float64, i int) (ls [][]float64) {
	k := len(ps[i])
	for j := i + 1; j < len(ps); j++ {
		q := make([]float64, k)
		for m := 0; m < k; m++ {
			if ps[j][m] > ps[i][m] {
				q[m] = ps[j][m]
			} else {
				q[m] = ps[i][m]
			}
		}
		ls = append(ls, q)
	}
	return
}

// nds filters a set down to its non-dominated members, preserving order
func nds(ps [][]float64) (out [][]float64) {
	for i, p := range ps {
		dominated := false
		for j, q := range ps {
			if i == j {
				continue
			}
			_, qDom := paretoMin(p, q)
			if qDom {
				dominated = true
				break
			}
			// duplicates: keep the first occurrence only
			if j < i && equalVec(p, q) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, p)
		}
	}
	return
}

// equalVec compares two vectors for exact equality
func equalVec(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
