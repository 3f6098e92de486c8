// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/stat/combin"
)

// RefPoint is one reference direction on the unit simplex. Points carry a stable id so
// that association records survive insertions and removals by the adaptive variant.
type RefPoint struct {
	Id     int       // stable identifier within the owning set
	Coords []float64 // non-negative coordinates adding to 1
	Added  bool      // created by the adaptive variant (not part of the baseline)
}

// RefPointCount returns the cardinality of the one-layer Das-Dennis lattice;
// i.e. C(npart+nova-1, nova-1)
func RefPointCount(nova, npart int) int {
	return combin.Binomial(npart+nova-1, nova-1)
}

// DasDennis generates the uniform simplex lattice of Das and Dennis (1998): all
// tuples (h1, ..., hk) with hi ≥ 0 and Σhi = npart, divided by npart
//  Input:
//   nova  -- number of objectives (k)
//   npart -- number of partitions (H)
//  Output:
//   pts -- [C(H+k-1, k-1)][k] lattice points
func DasDennis(nova, npart int) (pts [][]float64, err error) {
	if nova < 2 {
		return nil, chk.Err("reference points need at least 2 objectives. nova = %d is invalid", nova)
	}
	if npart < 1 {
		return nil, chk.Err("number of partitions must be positive. npart = %d is invalid", npart)
	}
	pts = make([][]float64, 0, RefPointCount(nova, npart))
	point := make([]int, nova)
	var rec func(pos, left int)
	rec = func(pos, left int) {
		if pos == nova-1 {
			point[pos] = left
			p := make([]float64, nova)
			for i, h := range point {
				p[i] = float64(h) / float64(npart)
			}
			pts = append(pts, p)
			return
		}
		for h := 0; h <= left; h++ {
			point[pos] = h
			rec(pos+1, left-h)
		}
	}
	rec(0, npart)
	return
}

// TwoLayer generates the two-layer lattice: the boundary layer is the plain Das-Dennis
// set and the inner layer is scaled by s and shifted so that its centroid coincides
// with the simplex centroid
//  Input:
//   nova     -- number of objectives (k)
//   boundary -- partitions of the boundary layer
//   inner    -- partitions of the inner layer
//   scaling  -- s in (0, 1]
//  Output:
//   pts -- union of the two layers, boundary first
func TwoLayer(nova, boundary, inner int, scaling float64) (pts [][]float64, err error) {
	if scaling <= 0 || scaling > 1 {
		return nil, chk.Err("two-layer scaling must be within (0, 1]. scaling = %g is invalid", scaling)
	}
	pts, err = DasDennis(nova, boundary)
	if err != nil {
		return nil, err
	}
	innerPts, err := DasDennis(nova, inner)
	if err != nil {
		return nil, err
	}
	shift := (1.0 - scaling) / float64(nova)
	for _, p := range innerPts {
		q := make([]float64, nova)
		for i, x := range p {
			q[i] = scaling*x + shift
		}
		pts = append(pts, q)
	}
	return
}

// RefSet is the owning container of the reference points used by NSGA-III. Ids are
// stable: removals never renumber the surviving points.
type RefSet struct {
	Points   []*RefPoint
	nextId   int
	spacing  float64 // lattice spacing 1/H of the baseline boundary layer
	minAngle float64 // minimum angular distance accepted for adaptively added points
}

// NewRefSet creates a reference point set from lattice coordinates
//  Input:
//   coords -- lattice points (the baseline; Added=false)
//   npart  -- partitions of the (boundary) layer that generated them
func NewRefSet(coords [][]float64, npart int) (o *RefSet) {
	o = new(RefSet)
	o.Points = make([]*RefPoint, len(coords))
	for i, c := range coords {
		o.Points[i] = &RefPoint{Id: i, Coords: c}
	}
	o.nextId = len(coords)
	o.spacing = 1.0 / float64(npart)
	o.minAngle = o.spacing / 10.0 // filters near-duplicate directions only
	return
}

// Len returns the number of reference points
func (o *RefSet) Len() int { return len(o.Points) }

// ById returns the point with the given id, or nil
func (o *RefSet) ById(id int) *RefPoint {
	for _, p := range o.Points {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// Add appends an adaptively created point and returns it
func (o *RefSet) Add(coords []float64) (p *RefPoint) {
	p = &RefPoint{Id: o.nextId, Coords: coords, Added: true}
	o.nextId++
	o.Points = append(o.Points, p)
	return
}

// Remove deletes the point with the given id, keeping the order of the survivors
func (o *RefSet) Remove(id int) {
	for i, p := range o.Points {
		if p.Id == id {
			o.Points = append(o.Points[:i], o.Points[i+1:]...)
			return
		}
	}
}

// angleBetween returns the angle between two directions
func angleBetween(a, b []float64) float64 {
	dot, na, nb := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0
	}
	cos := dot / den
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// TooClose tells whether a candidate direction is within the minimum angular distance
// of any existing point
func (o *RefSet) TooClose(coords []float64) bool {
	for _, p := range o.Points {
		if angleBetween(coords, p.Coords) < o.minAngle {
			return true
		}
	}
	return false
}
