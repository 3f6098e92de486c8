// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Hypervolume returns the Lebesgue measure of the region dominated by the given
// objective vectors and bounded above by the reference point. Points and reference are
// in the minimised orientation (maximised objectives already negated). Dispatch is by
// dimension: 2D sweep, the Fonseca et al. (2006) dimension-sweep for 3D, and the WFG
// recursive exclusive hypervolume (While et al. 2012) for k ≥ 4.
//  Input:
//   points -- [n][k] non-dominated objective vectors, n ≥ 1
//   ref    -- [k] reference point, weakly dominated by every input vector
func Hypervolume(points [][]float64, ref []float64) (hv float64, err error) {
	if len(points) < 1 {
		return 0, chk.Err("hypervolume needs at least one point")
	}
	k := len(ref)
	if k < 2 {
		return 0, chk.Err("hypervolume needs at least 2 objectives. k = %d is invalid", k)
	}
	for i, p := range points {
		if len(p) != k {
			return 0, chk.Err("point %d has dimension %d but the reference point has dimension %d", i, len(p), k)
		}
		for j, x := range p {
			if x > ref[j] {
				return 0, chk.Err("reference point must be weakly dominated by every point: point %d has component %d = %g beyond reference %g", i, j, x, ref[j])
			}
		}
	}
	switch k {
	case 2:
		hv = hv2d(points, ref)
	case 3:
		hv = hv3d(points, ref)
	default:
		hv = hvWFG(points, ref)
	}
	return
}

// hv2d sweeps rectangles over the points sorted by the first coordinate
func hv2d(points [][]float64, ref []float64) (hv float64) {
	ps := make([][]float64, len(points))
	copy(ps, points)
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i][0] == ps[j][0] {
			return ps[i][1] < ps[j][1]
		}
		return ps[i][0] < ps[j][0]
	})
	lastY := ref[1]
	for _, p := range ps {
		if p[1] < lastY {
			hv += (ref[0] - p[0]) * (lastY - p[1])
			lastY = p[1]
		}
	}
	return
}

// EstimateReferencePoint returns a reference point for hypervolume computations: the
// per-objective maximum over the evaluated members of the population, in the minimised
// orientation, optionally pushed away by a per-objective offset
//  Input:
//   pop    -- population with at least one evaluated member
//   offset -- [nova] per-objective offsets; may be nil
func EstimateReferencePoint(pop Population, offset []float64) (ref []float64, err error) {
	var nova int
	first := true
	for _, ind := range pop {
		if !ind.Evaluated {
			continue
		}
		if first {
			nova = len(ind.Ovas)
			ref = make([]float64, nova)
			copy(ref, ind.Ovas)
			first = false
			continue
		}
		for j, x := range ind.Ovas {
			if x > ref[j] {
				ref[j] = x
			}
		}
	}
	if first {
		return nil, chk.Err("population has no evaluated individuals")
	}
	if offset != nil {
		if len(offset) != nova {
			return nil, chk.Err("offset has %d components but the problem has %d objectives", len(offset), nova)
		}
		for j := range ref {
			ref[j] += offset[j]
		}
	}
	return
}
