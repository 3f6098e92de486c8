// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"github.com/cpmech/gosl/chk"
)

// Individual holds the variable assignment of one candidate solution together with its
// computed objective/constraint values and the per-algorithm scratch data set by the
// last selection pass
type Individual struct {

	// essential
	prob      *Problem  // pointer to problem definition
	Values    []Value   // variable values (problem order)
	Ovas      []float64 // objective values, minimised orientation (problem order)
	Cons      []float64 // constraint values (problem order)
	Violation float64   // aggregate constraint violation ≥ 0
	Evaluated bool      // objective values are present

	// scratch from the last selection
	FrontId   int     // non-dominated front rank (1 = best)
	DistCrowd float64 // crowding distance; MaxFloat64 marks boundary members
	RefId     int     // id of the associated reference point (NSGA-III); -1 when unset
	DistRef   float64 // perpendicular distance to the associated reference line
}

// NewIndividual allocates an unevaluated individual for the given problem
func NewIndividual(prob *Problem) (o *Individual) {
	o = new(Individual)
	o.prob = prob
	o.Values = make([]Value, prob.Nvars())
	o.Ovas = make([]float64, prob.Nova())
	o.Cons = make([]float64, prob.Ncons())
	o.RefId = -1
	return o
}

// Sample draws all variable values uniformly from their domains and clears the
// evaluation state
func (o *Individual) Sample(rng *Rand) {
	for i, v := range o.prob.Variables {
		o.Values[i] = v.Sample(rng)
	}
	o.Evaluated = false
	o.Violation = 0
}

// GetCopy returns a deep copy
func (o *Individual) GetCopy() (x *Individual) {
	x = NewIndividual(o.prob)
	o.CopyInto(x)
	return
}

// CopyInto copies all data into B
func (o *Individual) CopyInto(B *Individual) {
	B.prob = o.prob
	copy(B.Values, o.Values)
	copy(B.Ovas, o.Ovas)
	copy(B.Cons, o.Cons)
	B.Violation = o.Violation
	B.Evaluated = o.Evaluated
	B.FrontId = o.FrontId
	B.DistCrowd = o.DistCrowd
	B.RefId = o.RefId
	B.DistRef = o.DistRef
}

// Feasible tells whether the aggregate violation is zero
func (o *Individual) Feasible() bool {
	return o.Violation == 0
}

// Value returns the value of the named variable
func (o *Individual) Value(name string) (Value, error) {
	i, ok := o.prob.varIdx[name]
	if !ok {
		return Value{}, chk.Err("unknown variable %q", name)
	}
	return o.Values[i], nil
}

// Real returns the value of the named real variable
func (o *Individual) Real(name string) (float64, error) {
	v, err := o.Value(name)
	if err != nil {
		return 0, err
	}
	return v.Real()
}

// Int returns the value of the named integer variable
func (o *Individual) Int(name string) (int, error) {
	v, err := o.Value(name)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// Bool returns the value of the named boolean variable
func (o *Individual) Bool(name string) (bool, error) {
	v, err := o.Value(name)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// Choice returns the selected label of the named choice variable
func (o *Individual) Choice(name string) (string, error) {
	i, ok := o.prob.varIdx[name]
	if !ok {
		return "", chk.Err("unknown variable %q", name)
	}
	return o.prob.Variables[i].Label(o.Values[i])
}

// ObjectiveValue returns the value of the named objective in the user's orientation.
// The individual must have been evaluated.
func (o *Individual) ObjectiveValue(name string) (float64, error) {
	i, ok := o.prob.objIdx[name]
	if !ok {
		return 0, chk.Err("unknown objective %q", name)
	}
	if !o.Evaluated {
		return 0, chk.Err("individual has not been evaluated")
	}
	return o.prob.userOva(o, i), nil
}

// ConstraintValue returns the value of the named constraint
func (o *Individual) ConstraintValue(name string) (float64, error) {
	i, ok := o.prob.conIdx[name]
	if !ok {
		return 0, chk.Err("unknown constraint %q", name)
	}
	if !o.Evaluated {
		return 0, chk.Err("individual has not been evaluated")
	}
	return o.Cons[i], nil
}
