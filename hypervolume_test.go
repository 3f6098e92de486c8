// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_hv01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hv01. two objectives")

	P := [][]float64{{1, 3}, {2, 2}, {3, 1}}
	hv, err := Hypervolume(P, []float64{4, 4})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "hv", 1e-14, hv, 6)

	// invariant under reordering
	hv2, err := Hypervolume([][]float64{{3, 1}, {1, 3}, {2, 2}}, []float64{4, 4})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "hv reordered", 1e-14, hv2, hv)

	// monotone under set inclusion
	hv3, err := Hypervolume([][]float64{{1, 3}, {3, 1}}, []float64{4, 4})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	if hv3 > hv {
		tst.Errorf("hypervolume must be monotone: %g > %g\n", hv3, hv)
	}
}

func Test_hv02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hv02. three objectives (dimension sweep)")

	P := [][]float64{{1, 2, 3}, {2, 1, 3}, {3, 2, 1}}
	r := []float64{4, 4, 4}
	hv, err := Hypervolume(P, r)
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "hv", 1e-14, hv, 12)

	// the recursive algorithm agrees with the sweep
	chk.Float64(tst, "wfg agrees", 1e-12, hvWFG(P, r), hv)

	// reordering
	hv2, err := Hypervolume([][]float64{{3, 2, 1}, {1, 2, 3}, {2, 1, 3}}, r)
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "hv reordered", 1e-14, hv2, hv)

	// a single point is a box
	hv3, err := Hypervolume([][]float64{{1, 1, 1}}, []float64{2, 3, 4})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "single box", 1e-14, hv3, 6)
}

func Test_hv03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hv03. four objectives (WFG)")

	hv, err := Hypervolume([][]float64{{1, 1, 1, 1}}, []float64{2, 2, 2, 2})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "single box", 1e-14, hv, 1)

	// two overlapping boxes: 2 + 2 - 1
	P := [][]float64{{1, 2, 2, 2}, {2, 1, 2, 2}}
	hv, err = Hypervolume(P, []float64{3, 3, 3, 3})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "two boxes", 1e-14, hv, 3)

	// duplicated points must not count twice
	hv2, err := Hypervolume([][]float64{{1, 2, 2, 2}, {2, 1, 2, 2}, {1, 2, 2, 2}}, []float64{3, 3, 3, 3})
	if err != nil {
		tst.Errorf("hypervolume failed: %v\n", err)
		return
	}
	chk.Float64(tst, "duplicates", 1e-14, hv2, hv)
}

func Test_hv04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hv04. precondition checks")

	if _, err := Hypervolume(nil, []float64{1, 1}); err == nil {
		tst.Errorf("empty set must be rejected\n")
	}
	if _, err := Hypervolume([][]float64{{1, 1, 1}}, []float64{2, 2}); err == nil {
		tst.Errorf("dimension mismatch must be rejected\n")
	}
	if _, err := Hypervolume([][]float64{{5, 1}}, []float64{4, 4}); err == nil {
		tst.Errorf("reference not weakly dominated must be rejected\n")
	}
	if _, err := Hypervolume([][]float64{{1}}, []float64{2}); err == nil {
		tst.Errorf("one objective must be rejected\n")
	}

	// a point on the reference boundary is weakly dominated: allowed
	hv, err := Hypervolume([][]float64{{1, 4}, {2, 2}}, []float64{4, 4})
	if err != nil {
		tst.Errorf("boundary point must be accepted: %v\n", err)
		return
	}
	chk.Float64(tst, "boundary point", 1e-14, hv, 4)
}

func Test_hv05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hv05. reference point estimation")

	prob := schProblem()
	pop := Population{
		testIndividual(prob, []float64{1, 5}, 0),
		testIndividual(prob, []float64{3, 2}, 0),
	}
	ref, err := EstimateReferencePoint(pop, nil)
	if err != nil {
		tst.Errorf("estimation failed: %v\n", err)
		return
	}
	chk.Array(tst, "ref", 1e-14, ref, []float64{3, 5})

	ref, err = EstimateReferencePoint(pop, []float64{0.5, 1})
	if err != nil {
		tst.Errorf("estimation failed: %v\n", err)
		return
	}
	chk.Array(tst, "ref with offset", 1e-14, ref, []float64{3.5, 6})

	if _, err = EstimateReferencePoint(Population{NewIndividual(prob)}, nil); err == nil {
		tst.Errorf("population without evaluated members must be rejected\n")
	}
	if _, err = EstimateReferencePoint(pop, []float64{1}); err == nil {
		tst.Errorf("offset dimension mismatch must be rejected\n")
	}
}
