// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

// adapt adjusts the reference set between association and niching: crowded references
// (two or more already-selected members) spawn new directions sampled on the incident
// simplex patch, and dynamically added references nobody associates with any more are
// removed. The baseline lattice is never removed, so a run can always fall back to its
// original spread.
//  Input:
//   selected -- members of the fronts that are certainly carried over
//  Output:
//   changed -- the set was modified and associations must be rebuilt
func (e *nsga3) adapt(selected []*Individual, rng *Rand) (changed bool) {

	// niche counts after selection
	rho := make(map[int]int, e.refs.Len())
	for _, p := range e.refs.Points {
		rho[p.Id] = 0
	}
	for _, ind := range selected {
		rho[ind.RefId]++
	}

	// snapshot: newly spawned points are not re-examined this round
	snapshot := make([]*RefPoint, len(e.refs.Points))
	copy(snapshot, e.refs.Points)

	// spawn around crowded references
	k := len(e.zmin)
	centroid := 1.0 / float64(k)
	for _, p := range snapshot {
		if rho[p.Id] < 2 {
			continue
		}
		for t := 0; t < k; t++ {
			u := rng.SimplexSample(k)
			c := make([]float64, k)
			sum := 0.0
			for j := 0; j < k; j++ {
				c[j] = p.Coords[j] + (u[j]-centroid)*e.refs.spacing
				if c[j] < 0 {
					c[j] = 0
				}
				sum += c[j]
			}
			if sum <= 0 {
				continue
			}
			for j := 0; j < k; j++ {
				c[j] /= sum
			}
			if e.refs.TooClose(c) {
				continue
			}
			e.refs.Add(c)
			changed = true
		}
	}

	// drop added references that attract nobody
	for _, p := range snapshot {
		if p.Added && rho[p.Id] == 0 {
			e.refs.Remove(p.Id)
			changed = true
		}
	}
	return
}
