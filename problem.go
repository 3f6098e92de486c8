// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Direction tells whether an objective is to be minimised or maximised
type Direction int

// objective directions
const (
	Minimise Direction = iota
	Maximise
)

// String returns the name of the direction
func (d Direction) String() string {
	if d == Maximise {
		return "maximise"
	}
	return "minimise"
}

// Objective is the declaration of one objective. Internally every objective is
// minimised: a Maximise objective is stored with its sign flipped and the flip is
// undone at the export/import boundary only.
type Objective struct {
	Name      string
	Direction Direction
}

// RelOp is a relational operator of a constraint
type RelOp int

// relational operators
const (
	OpEqual RelOp = iota
	OpNotEqual
	OpLessOrEqual
	OpLess
	OpGreaterOrEqual
	OpGreater
)

// String returns the symbol of the operator
func (op RelOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLessOrEqual:
		return "<="
	case OpLess:
		return "<"
	case OpGreaterOrEqual:
		return ">="
	case OpGreater:
		return ">"
	}
	return "?"
}

// Constraint is the declaration of one constraint: value op target
type Constraint struct {
	Name   string
	Op     RelOp
	Target float64
}

// ViolationOf returns the violation magnitude of value v: zero when the predicate
// holds, otherwise the absolute gap to the feasible boundary
func (o Constraint) ViolationOf(v float64) float64 {
	gap := v - o.Target
	switch o.Op {
	case OpEqual:
		return math.Abs(gap)
	case OpNotEqual:
		// the feasible boundary is the point itself, so the gap |v - target| is zero
		// on both sides of the predicate
		return 0
	case OpLessOrEqual:
		if gap <= 0 {
			return 0
		}
		return gap
	case OpLess:
		if gap < 0 {
			return 0
		}
		return gap
	case OpGreaterOrEqual:
		if gap >= 0 {
			return 0
		}
		return -gap
	case OpGreater:
		if gap > 0 {
			return 0
		}
		return -gap
	}
	chk.Panic("cannot compute violation for unknown operator %d", o.Op)
	return 0
}

// Holds tells whether the predicate is satisfied by value v
func (o Constraint) Holds(v float64) bool {
	switch o.Op {
	case OpEqual:
		return v == o.Target
	case OpNotEqual:
		return v != o.Target
	case OpLessOrEqual:
		return v <= o.Target
	case OpLess:
		return v < o.Target
	case OpGreaterOrEqual:
		return v >= o.Target
	case OpGreater:
		return v > o.Target
	}
	return false
}

// Evaluator is the capability supplied by the user to compute objective and constraint
// values of one individual. Evaluate receives an immutable view of the variables and
// must return one value for every declared objective and constraint name, keyed by
// name, in the user's orientation (no sign flips). When the parallel option is on,
// Evaluate is invoked concurrently and must be safe for that.
type Evaluator interface {
	Evaluate(ind *Individual) (objs map[string]float64, cons map[string]float64, err error)
}

// EvalFunc adapts a plain function to the Evaluator capability
type EvalFunc func(ind *Individual) (map[string]float64, map[string]float64, error)

// Evaluate implements Evaluator
func (f EvalFunc) Evaluate(ind *Individual) (map[string]float64, map[string]float64, error) {
	return f(ind)
}

// Problem holds the immutable definition of an optimisation problem: ordered
// objectives, ordered variables, optional ordered constraints, and the user evaluator
type Problem struct {
	Objectives  []Objective
	Variables   []*Variable
	Constraints []Constraint

	eval   Evaluator
	objIdx map[string]int
	varIdx map[string]int
	conIdx map[string]int
}

// NewProblem creates a new problem definition. It rejects duplicate names within each
// kind, an empty objective list, and a nil evaluator.
func NewProblem(objectives []Objective, variables []*Variable, constraints []Constraint, eval Evaluator) (*Problem, error) {
	if len(objectives) < 1 {
		return nil, chk.Err("at least one objective must be defined")
	}
	if len(variables) < 1 {
		return nil, chk.Err("at least one variable must be defined")
	}
	if eval == nil {
		return nil, chk.Err("evaluator must be non nil")
	}
	o := &Problem{
		Objectives:  objectives,
		Variables:   variables,
		Constraints: constraints,
		eval:        eval,
		objIdx:      make(map[string]int),
		varIdx:      make(map[string]int),
		conIdx:      make(map[string]int),
	}
	for i, obj := range objectives {
		if obj.Name == "" {
			return nil, chk.Err("objective name cannot be empty")
		}
		if _, ok := o.objIdx[obj.Name]; ok {
			return nil, chk.Err("duplicate objective name %q", obj.Name)
		}
		o.objIdx[obj.Name] = i
	}
	for i, v := range variables {
		if _, ok := o.varIdx[v.Name]; ok {
			return nil, chk.Err("duplicate variable name %q", v.Name)
		}
		o.varIdx[v.Name] = i
	}
	for i, c := range constraints {
		if c.Name == "" {
			return nil, chk.Err("constraint name cannot be empty")
		}
		if _, ok := o.conIdx[c.Name]; ok {
			return nil, chk.Err("duplicate constraint name %q", c.Name)
		}
		o.conIdx[c.Name] = i
	}
	return o, nil
}

// Nova returns the number of objectives
func (o *Problem) Nova() int { return len(o.Objectives) }

// Nvars returns the number of variables
func (o *Problem) Nvars() int { return len(o.Variables) }

// Ncons returns the number of constraints
func (o *Problem) Ncons() int { return len(o.Constraints) }

// Evaluate runs the user evaluator on one individual, storing objective values in the
// internal minimised orientation, constraint values, the aggregate violation and the
// feasibility flag. Missing names and non-finite outputs are errors.
func (o *Problem) Evaluate(ind *Individual) error {
	objs, cons, err := o.eval.Evaluate(ind)
	if err != nil {
		return chk.Err("evaluator failed: %v", err)
	}
	for i, obj := range o.Objectives {
		v, ok := objs[obj.Name]
		if !ok {
			return chk.Err("evaluator did not return objective %q", obj.Name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return chk.Err("evaluator returned non-finite value %g for objective %q", v, obj.Name)
		}
		if obj.Direction == Maximise {
			v = -v
		}
		ind.Ovas[i] = v
	}
	ind.Violation = 0
	for i, con := range o.Constraints {
		v, ok := cons[con.Name]
		if !ok {
			return chk.Err("evaluator did not return constraint %q", con.Name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return chk.Err("evaluator returned non-finite value %g for constraint %q", v, con.Name)
		}
		ind.Cons[i] = v
		ind.Violation += con.ViolationOf(v)
	}
	ind.Evaluated = true
	return nil
}

// userOva returns the objective value at index idx in the user's orientation
func (o *Problem) userOva(ind *Individual, idx int) float64 {
	if o.Objectives[idx].Direction == Maximise {
		return -ind.Ovas[idx]
	}
	return ind.Ovas[idx]
}
