// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// tolerance below which two parent values are treated as equal by the crossover
const opEps = 1e-14

// OpsData holds the crossover and mutation parameters
type OpsData struct {
	Pc   float64 // probability of crossover
	EtaC float64 // distribution index of the simulated binary crossover
	Pm   float64 // probability of mutation (per variable)
	EtaM float64 // distribution index of the polynomial mutation
}

// Default sets the default operator parameters
//  Input:
//   nvars -- number of variables; sets Pm = 1/nvars
func (o *OpsData) Default(nvars int) {
	o.Pc = 0.9
	o.EtaC = 15
	o.Pm = 1.0 / float64(nvars)
	o.EtaM = 20
}

// Validate checks the operator parameters
func (o *OpsData) Validate() error {
	if o.Pc < 0 || o.Pc > 1 {
		return chk.Err("crossover probability must be within [0, 1]. Pc = %g is invalid", o.Pc)
	}
	if o.Pm < 0 || o.Pm > 1 {
		return chk.Err("mutation probability must be within [0, 1]. Pm = %g is invalid", o.Pm)
	}
	if o.EtaC < 0 {
		return chk.Err("crossover distribution index must be non-negative. EtaC = %g is invalid", o.EtaC)
	}
	if o.EtaM < 0 {
		return chk.Err("mutation distribution index must be non-negative. EtaM = %g is invalid", o.EtaM)
	}
	return nil
}

// Crossover generates two offspring from two parents. Real and integer variables use
// the simulated binary crossover (Deb and Agrawal 1995) with a 0.5 variable-wise
// probability; boolean and choice variables are swapped with the same variable-wise
// probability. The whole pair passes through unchanged with probability 1 - Pc.
//  Input:
//   A and B -- parents
//   ops     -- operator parameters
//   rng     -- random numbers generator
//  Output:
//   a and b -- offspring (values only; not evaluated)
func Crossover(a, b, A, B *Individual, ops *OpsData, rng *Rand) {
	A.CopyInto(a)
	B.CopyInto(b)
	a.Evaluated, b.Evaluated = false, false
	if !rng.FlipCoin(ops.Pc) {
		return
	}
	for i, v := range A.prob.Variables {
		if !rng.FlipCoin(0.5) {
			continue
		}
		switch v.Kind {
		case KindReal:
			c1, c2 := sbxPair(A.Values[i].flt, B.Values[i].flt, v, ops.EtaC, rng)
			a.Values[i] = RealValue(c1)
			b.Values[i] = RealValue(c2)
		case KindInt:
			c1, c2 := sbxPair(float64(A.Values[i].num), float64(B.Values[i].num), v, ops.EtaC, rng)
			a.Values[i] = IntValue(int(v.Clip(math.Round(c1))))
			b.Values[i] = IntValue(int(v.Clip(math.Round(c2))))
		case KindBool, KindChoice:
			a.Values[i], b.Values[i] = B.Values[i], A.Values[i]
		}
	}
}

// sbxPair computes the two children of one variable with the simulated binary
// crossover. Children equal parents when the parent values coincide within a small
// tolerance or when either parent lies outside the variable bounds.
func sbxPair(x1, x2 float64, v *Variable, etac float64, rng *Rand) (c1, c2 float64) {
	c1, c2 = x1, x2
	if math.Abs(x1-x2) <= opEps {
		return
	}
	if x1 < v.Lower || x1 > v.Upper || x2 < v.Lower || x2 > v.Upper {
		return
	}
	y1, y2 := math.Min(x1, x2), math.Max(x1, x2)
	yl, yu := v.Lower, v.Upper
	u := rng.Float64()
	exp := 1.0 / (etac + 1.0)

	// first child
	beta := 1.0 + 2.0*(y1-yl)/(y2-y1)
	alpha := 2.0 - math.Pow(beta, -(etac+1.0))
	var betaq float64
	if u <= 1.0/alpha {
		betaq = math.Pow(u*alpha, exp)
	} else {
		betaq = math.Pow(1.0/(2.0-u*alpha), exp)
	}
	c1 = 0.5 * ((y1 + y2) - betaq*(y2-y1))

	// second child
	beta = 1.0 + 2.0*(yu-y2)/(y2-y1)
	alpha = 2.0 - math.Pow(beta, -(etac+1.0))
	if u <= 1.0/alpha {
		betaq = math.Pow(u*alpha, exp)
	} else {
		betaq = math.Pow(1.0/(2.0-u*alpha), exp)
	}
	c2 = 0.5 * ((y1 + y2) + betaq*(y2-y1))

	c1 = v.Clip(c1)
	c2 = v.Clip(c2)
	if rng.FlipCoin(0.5) {
		c1, c2 = c2, c1
	}
	return
}

// Mutation perturbs the variables of one individual in place. Real and integer
// variables use the polynomial mutation (Deb 1996); booleans flip and choices are
// resampled, each with probability Pm per variable.
func Mutation(a *Individual, ops *OpsData, rng *Rand) {
	mutated := false
	for i, v := range a.prob.Variables {
		if !rng.FlipCoin(ops.Pm) {
			continue
		}
		mutated = true
		switch v.Kind {
		case KindReal:
			a.Values[i] = RealValue(polyMutate(a.Values[i].flt, v, ops.EtaM, rng))
		case KindInt:
			x := polyMutate(float64(a.Values[i].num), v, ops.EtaM, rng)
			a.Values[i] = IntValue(int(v.Clip(math.Round(x))))
		case KindBool:
			a.Values[i] = BoolValue(!a.Values[i].bit)
		case KindChoice:
			a.Values[i] = ChoiceValue(rng.Intn(len(v.Labels)))
		}
	}
	if mutated {
		a.Evaluated = false
	}
}

// polyMutate perturbs one real value with the polynomial mutation
func polyMutate(x float64, v *Variable, etam float64, rng *Rand) float64 {
	yl, yu := v.Lower, v.Upper
	if yu-yl <= opEps {
		return x
	}
	d1 := (x - yl) / (yu - yl)
	d2 := (yu - x) / (yu - yl)
	u := rng.Float64()
	exp := 1.0 / (etam + 1.0)
	var dq float64
	if u <= 0.5 {
		xy := 1.0 - d1
		val := 2.0*u + (1.0-2.0*u)*math.Pow(xy, etam+1.0)
		dq = math.Pow(val, exp) - 1.0
	} else {
		xy := 1.0 - d2
		val := 2.0*(1.0-u) + 2.0*(u-0.5)*math.Pow(xy, etam+1.0)
		dq = 1.0 - math.Pow(val, exp)
	}
	return v.Clip(x + dq*(yu-yl))
}

// Tournament selects one individual by a binary tournament: two distinct indices are
// drawn uniformly and the winner of the given comparison is returned
//  Input:
//   pool -- candidates
//   win  -- engine-specific comparison; returns true when A beats B
//   rng  -- random numbers generator
func Tournament(pool []*Individual, win func(A, B *Individual) bool, rng *Rand) *Individual {
	i, j := rng.IntPair(len(pool))
	if win(pool[i], pool[j]) {
		return pool[i]
	}
	return pool[j]
}
