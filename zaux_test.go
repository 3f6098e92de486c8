// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// verbose turns message printing on during tests
func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// schProblem returns the Schaffer SCH problem: one variable, two convex objectives
func schProblem() *Problem {
	x, _ := NewRealVariable("x", -1000, 1000)
	prob, _ := NewProblem(
		[]Objective{{Name: "f1"}, {Name: "f2"}},
		[]*Variable{x},
		nil,
		EvalFunc(func(ind *Individual) (map[string]float64, map[string]float64, error) {
			v, err := ind.Real("x")
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"f1": v * v,
				"f2": (v - 2) * (v - 2),
			}, nil, nil
		}),
	)
	return prob
}

// zdt1Problem returns the ZDT1 problem with 30 variables in [0, 1]
func zdt1Problem() *Problem {
	n := 30
	vars := make([]*Variable, n)
	for i := range vars {
		vars[i], _ = NewRealVariable(io.Sf("x%d", i+1), 0, 1)
	}
	prob, _ := NewProblem(
		[]Objective{{Name: "f1"}, {Name: "f2"}},
		vars,
		nil,
		EvalFunc(func(ind *Individual) (map[string]float64, map[string]float64, error) {
			s := 0.0
			for i := 1; i < n; i++ {
				v, err := ind.Real(io.Sf("x%d", i+1))
				if err != nil {
					return nil, nil, err
				}
				s += v
			}
			f1, err := ind.Real("x1")
			if err != nil {
				return nil, nil, err
			}
			g := 1.0 + 9.0*s/float64(n-1)
			return map[string]float64{
				"f1": f1,
				"f2": g * (1.0 - math.Sqrt(f1/g)),
			}, nil, nil
		}),
	)
	return prob
}

// zdt1G recomputes the g function of ZDT1 from the variables of one individual
func zdt1G(ind *Individual) float64 {
	s := 0.0
	for i := 1; i < 30; i++ {
		v, _ := ind.Real(io.Sf("x%d", i+1))
		s += v
	}
	return 1.0 + 9.0*s/29.0
}

// dtlz1Problem returns the DTLZ1 problem with 3 objectives and 7 variables
func dtlz1Problem() *Problem {
	n := 7
	vars := make([]*Variable, n)
	for i := range vars {
		vars[i], _ = NewRealVariable(io.Sf("x%d", i+1), 0, 1)
	}
	prob, _ := NewProblem(
		[]Objective{{Name: "f1"}, {Name: "f2"}, {Name: "f3"}},
		vars,
		nil,
		EvalFunc(func(ind *Individual) (map[string]float64, map[string]float64, error) {
			xs := make([]float64, n)
			for i := range xs {
				v, err := ind.Real(io.Sf("x%d", i+1))
				if err != nil {
					return nil, nil, err
				}
				xs[i] = v
			}
			g := 0.0
			for _, v := range xs[2:] {
				g += (v-0.5)*(v-0.5) - math.Cos(20.0*math.Pi*(v-0.5))
			}
			g = 100.0 * (float64(n-2) + g)
			return map[string]float64{
				"f1": 0.5 * xs[0] * xs[1] * (1.0 + g),
				"f2": 0.5 * xs[0] * (1.0 - xs[1]) * (1.0 + g),
				"f3": 0.5 * (1.0 - xs[0]) * (1.0 + g),
			}, nil, nil
		}),
	)
	return prob
}

// mixedProblem returns a problem touching every variable kind, a maximised objective
// and a constraint
func mixedProblem() *Problem {
	x, _ := NewRealVariable("x", 0, 10)
	n, _ := NewIntVariable("n", 0, 5)
	b, _ := NewBoolVariable("b")
	c, _ := NewChoiceVariable("c", "low", "mid", "high")
	prob, _ := NewProblem(
		[]Objective{
			{Name: "cost"},
			{Name: "gain", Direction: Maximise},
		},
		[]*Variable{x, n, b, c},
		[]Constraint{{Name: "cap", Op: OpLessOrEqual, Target: 8}},
		EvalFunc(func(ind *Individual) (map[string]float64, map[string]float64, error) {
			xv, err := ind.Real("x")
			if err != nil {
				return nil, nil, err
			}
			nv, err := ind.Int("n")
			if err != nil {
				return nil, nil, err
			}
			bv, err := ind.Bool("b")
			if err != nil {
				return nil, nil, err
			}
			cv, err := ind.Choice("c")
			if err != nil {
				return nil, nil, err
			}
			bonus := 0.0
			if bv {
				bonus = 1
			}
			weight := map[string]float64{"low": 0.5, "mid": 1.0, "high": 2.0}[cv]
			return map[string]float64{
					"cost": xv + float64(nv),
					"gain": weight*xv + bonus,
				}, map[string]float64{
					"cap": xv,
				}, nil
		}),
	)
	return prob
}

// testIndividual builds an evaluated individual with prescribed minimised objective
// values and violation, for sorting and dominance tests
func testIndividual(prob *Problem, ovas []float64, violation float64) (ind *Individual) {
	ind = NewIndividual(prob)
	copy(ind.Ovas, ovas)
	ind.Violation = violation
	ind.Evaluated = true
	return
}
