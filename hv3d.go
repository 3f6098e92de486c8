// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import "sort"

// xyPoint is one member of the 2D staircase maintained by the 3D sweep.
// The staircase is sorted by x ascending with strictly descending y.
type xyPoint struct {
	x, y float64
}

// hv3d computes the 3D hypervolume with the dimension-sweep of Fonseca et al. (2006):
// points are processed in ascending third coordinate while a 2D non-dominated
// staircase accumulates the swept area; the volume is the integral of that area along
// the third axis.
func hv3d(points [][]float64, ref []float64) (vol float64) {
	ps := make([][]float64, len(points))
	copy(ps, points)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i][2] < ps[j][2] })

	var front []xyPoint
	area, zprev := 0.0, ps[0][2]
	for _, p := range ps {
		vol += area * (p[2] - zprev)
		zprev = p[2]
		area += staircaseInsert(&front, p[0], p[1], ref)
	}
	vol += area * (ref[2] - zprev)
	return
}

// staircaseInsert adds point (x, y) to the staircase and returns the gained area
// against the reference rectangle. Dominated insertions gain nothing; points newly
// dominated by (x, y) are removed.
func staircaseInsert(front *[]xyPoint, x, y float64, ref []float64) (gained float64) {
	f := *front
	idx := sort.Search(len(f), func(i int) bool { return f[i].x >= x })

	// upper bound of the gained strip: the predecessor's y or the reference
	ybound := ref[1]
	if idx > 0 {
		if f[idx-1].y <= y {
			return 0 // dominated by the predecessor
		}
		ybound = f[idx-1].y
	}
	if idx < len(f) && f[idx].x == x && f[idx].y <= y {
		return 0 // dominated by an equal-x member
	}

	// sweep over the members dominated by (x, y)
	xcur, yprev := x, ybound
	j := idx
	for j < len(f) && f[j].y >= y {
		gained += (f[j].x - xcur) * (yprev - y)
		xcur, yprev = f[j].x, f[j].y
		j++
	}
	xend := ref[0]
	if j < len(f) {
		xend = f[j].x
	}
	gained += (xend - xcur) * (yprev - y)

	// replace the dominated run [idx, j) by the new point
	tail := append([]xyPoint{{x, y}}, f[j:]...)
	*front = append(f[:idx], tail...)
	return
}
