// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// VarKind distinguishes the supported kinds of decision variables
type VarKind int

// variable kinds
const (
	KindReal VarKind = iota // bounded floating point
	KindInt                 // bounded integer
	KindBool                // boolean
	KindChoice              // one label out of a finite ordered list
)

// String returns the name of the kind
func (k VarKind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindChoice:
		return "choice"
	}
	return "unknown"
}

// Value holds one sampled value of a decision variable. The kind of the payload
// always matches the declaration of the variable the value was sampled for.
type Value struct {
	kind VarKind
	flt  float64 // real payload
	num  int     // integer payload or choice index
	bit  bool    // boolean payload
}

// RealValue wraps a float
func RealValue(x float64) Value { return Value{kind: KindReal, flt: x} }

// IntValue wraps an integer
func IntValue(n int) Value { return Value{kind: KindInt, num: n} }

// BoolValue wraps a boolean
func BoolValue(b bool) Value { return Value{kind: KindBool, bit: b} }

// ChoiceValue wraps the index of a label in the declared list
func ChoiceValue(index int) Value { return Value{kind: KindChoice, num: index} }

// Kind returns the kind of this value
func (v Value) Kind() VarKind { return v.kind }

// Real returns the float payload
func (v Value) Real() (float64, error) {
	if v.kind != KindReal {
		return 0, chk.Err("value is %s, not real", v.kind)
	}
	return v.flt, nil
}

// Int returns the integer payload
func (v Value) Int() (int, error) {
	if v.kind != KindInt {
		return 0, chk.Err("value is %s, not integer", v.kind)
	}
	return v.num, nil
}

// Bool returns the boolean payload
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, chk.Err("value is %s, not boolean", v.kind)
	}
	return v.bit, nil
}

// ChoiceIndex returns the label index payload
func (v Value) ChoiceIndex() (int, error) {
	if v.kind != KindChoice {
		return 0, chk.Err("value is %s, not choice", v.kind)
	}
	return v.num, nil
}

// Variable is the declaration of one decision variable
type Variable struct {
	Name   string   // unique name within the problem
	Kind   VarKind  // kind of variable
	Lower  float64  // lower bound (real and integer kinds)
	Upper  float64  // upper bound (real and integer kinds)
	Labels []string // ordered labels (choice kind)
}

// NewRealVariable creates a real variable bounded to [lower, upper]
func NewRealVariable(name string, lower, upper float64) (*Variable, error) {
	if name == "" {
		return nil, chk.Err("variable name cannot be empty")
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return nil, chk.Err("bounds of real variable %q must be finite", name)
	}
	if lower > upper {
		return nil, chk.Err("degenerate bounds for real variable %q: lower=%g > upper=%g", name, lower, upper)
	}
	return &Variable{Name: name, Kind: KindReal, Lower: lower, Upper: upper}, nil
}

// NewIntVariable creates an integer variable bounded to {lower, ..., upper}
func NewIntVariable(name string, lower, upper int) (*Variable, error) {
	if name == "" {
		return nil, chk.Err("variable name cannot be empty")
	}
	if lower > upper {
		return nil, chk.Err("degenerate bounds for integer variable %q: lower=%d > upper=%d", name, lower, upper)
	}
	return &Variable{Name: name, Kind: KindInt, Lower: float64(lower), Upper: float64(upper)}, nil
}

// NewBoolVariable creates a boolean variable
func NewBoolVariable(name string) (*Variable, error) {
	if name == "" {
		return nil, chk.Err("variable name cannot be empty")
	}
	return &Variable{Name: name, Kind: KindBool}, nil
}

// NewChoiceVariable creates a variable taking one label out of a finite ordered list
func NewChoiceVariable(name string, labels ...string) (*Variable, error) {
	if name == "" {
		return nil, chk.Err("variable name cannot be empty")
	}
	if len(labels) < 1 {
		return nil, chk.Err("choice variable %q needs at least one label", name)
	}
	seen := make(map[string]bool)
	for _, l := range labels {
		if seen[l] {
			return nil, chk.Err("choice variable %q has duplicate label %q", name, l)
		}
		seen[l] = true
	}
	return &Variable{Name: name, Kind: KindChoice, Labels: labels}, nil
}

// Sample draws a uniform value from the domain of this variable
func (o *Variable) Sample(rng *Rand) Value {
	switch o.Kind {
	case KindReal:
		return RealValue(rng.Range(o.Lower, o.Upper))
	case KindInt:
		return IntValue(rng.Int(int(o.Lower), int(o.Upper)))
	case KindBool:
		return BoolValue(rng.FlipCoin(0.5))
	case KindChoice:
		return ChoiceValue(rng.Intn(len(o.Labels)))
	}
	chk.Panic("cannot sample variable of unknown kind %d", o.Kind)
	return Value{}
}

// Check returns an error if the value does not match the declaration;
// i.e. wrong kind or out-of-bounds payload
func (o *Variable) Check(v Value) error {
	if v.kind != o.Kind {
		return chk.Err("variable %q is %s but value is %s", o.Name, o.Kind, v.kind)
	}
	switch o.Kind {
	case KindReal:
		if v.flt < o.Lower || v.flt > o.Upper {
			return chk.Err("value %g of variable %q is outside [%g, %g]", v.flt, o.Name, o.Lower, o.Upper)
		}
	case KindInt:
		if float64(v.num) < o.Lower || float64(v.num) > o.Upper {
			return chk.Err("value %d of variable %q is outside [%g, %g]", v.num, o.Name, o.Lower, o.Upper)
		}
	case KindChoice:
		if v.num < 0 || v.num >= len(o.Labels) {
			return chk.Err("choice index %d of variable %q is outside the %d labels", v.num, o.Name, len(o.Labels))
		}
	}
	return nil
}

// Clip returns x forced into the bounds of this (real or integer) variable
func (o *Variable) Clip(x float64) float64 {
	if x < o.Lower {
		return o.Lower
	}
	if x > o.Upper {
		return o.Upper
	}
	return x
}

// Label returns the label selected by a choice value
func (o *Variable) Label(v Value) (string, error) {
	idx, err := v.ChoiceIndex()
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(o.Labels) {
		return "", chk.Err("choice index %d of variable %q is outside the %d labels", idx, o.Name, len(o.Labels))
	}
	return o.Labels[idx], nil
}
