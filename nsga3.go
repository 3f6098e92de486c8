// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// small weight used by the achievement scalarising function off the probed axis
const asfEps = 1e-6

// nsga3 implements the NSGA-III selection engine (Deb and Jain 2014): objective
// translation by the accumulated ideal point, hyperplane normalisation, association
// with Das-Dennis reference directions and niche-preserving truncation. With the
// adaptive flag on, the reference set is adjusted as the run progresses (Jain and
// Deb 2014).
type nsga3 struct {
	adaptive bool
	refs     *RefSet
	zmin     []float64 // ideal point accumulated over every individual ever seen
	warned   bool      // singular-intercept warning already printed
}

// Name returns the algorithm name
func (e *nsga3) Name() string {
	if e.adaptive {
		return "AdaptiveNSGA3"
	}
	return "NSGA3"
}

// AdditionalData returns the reference-point set for snapshots
func (e *nsga3) AdditionalData(o *Optimiser) map[string]interface{} {
	pts := make([]map[string]interface{}, len(e.refs.Points))
	for i, p := range e.refs.Points {
		pts[i] = map[string]interface{}{
			"id":     p.Id,
			"coords": p.Coords,
			"added":  p.Added,
		}
	}
	return map[string]interface{}{
		"reference_points":  pts,
		"reference_spacing": e.refs.spacing,
	}
}

// Prepare builds the reference set, checks the population size against it, and ranks
// and associates the seeded population
func (e *nsga3) Prepare(o *Optimiser) error {
	if e.refs == nil { // a resumed run restores the set from the snapshot instead
		var pts [][]float64
		var npart int
		var err error
		switch {
		case o.Opts.BoundaryLayer > 0 && o.Opts.InnerLayer > 0:
			npart = o.Opts.BoundaryLayer
			pts, err = TwoLayer(o.Prob.Nova(), o.Opts.BoundaryLayer, o.Opts.InnerLayer, o.Opts.LayerScaling)
		case o.Opts.Npart > 0:
			npart = o.Opts.Npart
			pts, err = DasDennis(o.Prob.Nova(), o.Opts.Npart)
		default:
			return chk.Err("NSGA-III needs number_of_partitions or a two-layer {boundary_layer, inner_layer, layer_scaling} setting")
		}
		if err != nil {
			return err
		}
		e.refs = NewRefSet(pts, npart)
	}
	nbase := 0
	for _, p := range e.refs.Points {
		if !p.Added {
			nbase++
		}
	}
	if o.Opts.Ninds < nbase {
		return chk.Err("population size must be at least the number of baseline reference points. Ninds = %d < %d", o.Opts.Ninds, nbase)
	}
	if e.zmin == nil {
		e.zmin = make([]float64, o.Prob.Nova())
		for j := range e.zmin {
			e.zmin[j] = math.Inf(1)
		}
	}
	e.updateIdeal(o.Pop)
	SortByFronts(o.Pop)
	e.associate(o.Pop, e.normalise(o.Pop))
	return nil
}

// Evolve runs one NSGA-III generation
func (e *nsga3) Evolve(o *Optimiser) error {

	// offspring via binary tournaments, crossover and mutation
	n := o.Opts.Ninds
	win := nsga3win(o.Rng)
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

	// combined pool, ranking and ideal-point update
	pool := make([]*Individual, 0, 2*n)
	pool = append(pool, o.Pop...)
	pool = append(pool, off...)
	fronts := SortByFronts(pool)
	e.updateIdeal(pool)

	// surviving fronts; last holds the splitting front
	next, last := fill(pool, fronts, n)
	st := make([]*Individual, 0, len(next)+len(last))
	st = append(st, next...)
	for _, idx := range last {
		st = append(st, pool[idx])
	}

	// normalisation and association over the surviving fronts
	e.associate(st, e.normalise(st))

	// adaptive adjustment of the reference set
	if e.adaptive && o.Opts.AdaptInterval > 0 && o.Gen%o.Opts.AdaptInterval == 0 {
		if e.adapt(next, o.Rng) {
			e.associate(st, e.normalise(st)) // the set changed: associate again
		}
	}

	// niche-preserving truncation of the splitting front
	if len(last) > 0 {
		members := make([]*Individual, len(last))
		for i, idx := range last {
			members[i] = pool[idx]
		}
		next = e.niche(next, members, n, o.Rng)
	}
	o.Pop = next
	return nil
}

// nsga3win returns the NSGA-III tournament comparison: feasibility first, then
// dominance, else a coin flip
func nsga3win(rng *Rand) func(A, B *Individual) bool {
	return func(A, B *Individual) bool {
		if A.Feasible() != B.Feasible() {
			return A.Feasible()
		}
		if !A.Feasible() {
			if A.Violation != B.Violation {
				return A.Violation < B.Violation
			}
			return rng.FlipCoin(0.5)
		}
		aDom, bDom := Compare(A, B)
		if aDom {
			return true
		}
		if bDom {
			return false
		}
		return rng.FlipCoin(0.5)
	}
}

// updateIdeal accumulates the componentwise minimum over the given individuals
func (e *nsga3) updateIdeal(inds []*Individual) {
	for _, ind := range inds {
		if !ind.Evaluated {
			continue
		}
		for j, x := range ind.Ovas {
			if x < e.zmin[j] {
				e.zmin[j] = x
			}
		}
	}
}

// normalise translates the objective vectors of the surviving fronts by the ideal
// point and divides them by the hyperplane intercepts
//  Output:
//   norm -- [len(st)][nova] normalised objective vectors aligned with st
func (e *nsga3) normalise(st []*Individual) (norm [][]float64) {
	k := len(e.zmin)
	norm = utl.Alloc(len(st), k)
	for i, ind := range st {
		for j := 0; j < k; j++ {
			norm[i][j] = ind.Ovas[j] - e.zmin[j]
		}
	}

	// extreme points: per axis, the vector minimising the achievement scalarising
	// function with the axis weight
	extremes := make([]int, k)
	for j := 0; j < k; j++ {
		best, bestVal := 0, math.Inf(1)
		for i := range norm {
			v := asf(norm[i], j)
			if v < bestVal {
				best, bestVal = i, v
			}
		}
		extremes[j] = best
	}

	// intercepts
	a := e.intercepts(norm, extremes)
	for i := range norm {
		for j := 0; j < k; j++ {
			norm[i][j] /= a[j]
		}
	}
	return
}

// asf is the achievement scalarising function with unit weight on the given axis and a
// small weight elsewhere
func asf(x []float64, axis int) (v float64) {
	for i, xi := range x {
		w := asfEps
		if i == axis {
			w = 1.0
		}
		if xi/w > v {
			v = xi / w
		}
	}
	return
}

// intercepts solves the k×k system through the extreme points for the axis intercepts
// of the normalisation hyperplane. A singular system or a non-positive intercept falls
// back to the per-axis maxima of the translated vectors; the run never fails here.
func (e *nsga3) intercepts(norm [][]float64, extremes []int) (a []float64) {
	k := len(extremes)
	a = make([]float64, k)

	A := mat.NewDense(k, k, nil)
	b := mat.NewVecDense(k, nil)
	for j := 0; j < k; j++ {
		for m := 0; m < k; m++ {
			A.Set(j, m, norm[extremes[j]][m])
		}
		b.SetVec(j, 1.0)
	}
	var x mat.VecDense
	ok := true
	if err := x.SolveVec(A, b); err != nil {
		if !e.warned {
			io.Pf("intercept system is singular; falling back to per-axis maxima\n")
			e.warned = true
		}
		ok = false
	}
	if ok {
		for j := 0; j < k; j++ {
			if x.AtVec(j) <= 0 {
				ok = false
				break
			}
			a[j] = 1.0 / x.AtVec(j)
			if math.IsNaN(a[j]) || math.IsInf(a[j], 0) || a[j] <= 0 {
				ok = false
				break
			}
		}
	}
	if !ok {
		for j := 0; j < k; j++ {
			a[j] = 0
			for i := range norm {
				if norm[i][j] > a[j] {
					a[j] = norm[i][j]
				}
			}
		}
	}
	for j := 0; j < k; j++ {
		if a[j] < 1e-12 {
			a[j] = 1e-12
		}
	}
	return
}

// associate links every individual to the nearest reference direction, recording the
// reference id and the perpendicular distance
func (e *nsga3) associate(st []*Individual, norm [][]float64) {
	for i, ind := range st {
		bestId, bestDist := -1, math.Inf(1)
		for _, p := range e.refs.Points {
			d := perpDistance(norm[i], p.Coords)
			if d < bestDist {
				bestId, bestDist = p.Id, d
			}
		}
		ind.RefId = bestId
		ind.DistRef = bestDist
	}
}

// perpDistance is the distance from point s to the line through the origin with
// direction w
func perpDistance(s, w []float64) float64 {
	dot, ww := 0.0, 0.0
	for i := range s {
		dot += s[i] * w[i]
		ww += w[i] * w[i]
	}
	t := dot / ww
	d := 0.0
	for i := range s {
		diff := s[i] - t*w[i]
		d += diff * diff
	}
	return math.Sqrt(d)
}

// niche fills the remaining slots from the splitting front, repeatedly picking the
// least-crowded reference direction (ties random) and taking the nearest member when
// the niche is empty or a random member otherwise
func (e *nsga3) niche(next []*Individual, last []*Individual, need int, rng *Rand) []*Individual {

	// niche counts from the already-selected fronts
	rho := make(map[int]int, e.refs.Len())
	for _, p := range e.refs.Points {
		rho[p.Id] = 0
	}
	for _, ind := range next {
		rho[ind.RefId]++
	}

	// splitting-front members per reference
	members := make(map[int][]*Individual)
	for _, ind := range last {
		members[ind.RefId] = append(members[ind.RefId], ind)
	}

	active := make(map[int]bool, e.refs.Len())
	for _, p := range e.refs.Points {
		active[p.Id] = true
	}
	for len(next) < need {
		if len(active) == 0 {
			chk.Panic("niching ran out of reference points with %d slots left", need-len(next))
		}

		// least-crowded active reference; ties broken at random
		minRho := math.MaxInt
		for _, p := range e.refs.Points {
			if active[p.Id] && rho[p.Id] < minRho {
				minRho = rho[p.Id]
			}
		}
		var mins []int
		for _, p := range e.refs.Points {
			if active[p.Id] && rho[p.Id] == minRho {
				mins = append(mins, p.Id)
			}
		}
		j := mins[rng.Intn(len(mins))]

		mems := members[j]
		if len(mems) == 0 {
			delete(active, j)
			continue
		}
		pick := 0
		if rho[j] == 0 {
			for i := 1; i < len(mems); i++ {
				if mems[i].DistRef < mems[pick].DistRef {
					pick = i
				}
			}
		} else {
			pick = rng.Intn(len(mems))
		}
		next = append(next, mems[pick])
		members[j] = append(mems[:pick], mems[pick+1:]...)
		rho[j]++
	}
	return next
}
