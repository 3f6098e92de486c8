// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"bytes"
	"sort"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Population holds all individuals of one generation
type Population []*Individual

// NewPopulation allocates a population with variable values sampled uniformly from
// their domains
//  Input:
//   prob  -- problem definition
//   ninds -- number of individuals to be generated
//   rng   -- random numbers generator
//  Output:
//   new population (not evaluated yet)
func NewPopulation(prob *Problem, ninds int, rng *Rand) (pop Population) {
	pop = make([]*Individual, ninds)
	for i := 0; i < ninds; i++ {
		pop[i] = NewIndividual(prob)
		pop[i].Sample(rng)
	}
	return
}

// GetCopy returns a deep copy of the population
func (o Population) GetCopy() (pop Population) {
	pop = make([]*Individual, len(o))
	for i, ind := range o {
		pop[i] = ind.GetCopy()
	}
	return
}

// Fronts groups the population by front rank; fronts[0] holds the rank-1 members.
// The ranks must have been set by a previous non-dominated sort.
func (o Population) Fronts() (fronts [][]*Individual) {
	nf := 0
	for _, ind := range o {
		nf = utl.Imax(nf, ind.FrontId)
	}
	fronts = make([][]*Individual, nf)
	for _, ind := range o {
		if ind.FrontId > 0 {
			fronts[ind.FrontId-1] = append(fronts[ind.FrontId-1], ind)
		}
	}
	return
}

// sortByOva sorts individuals in ascending order of the objective with index idx,
// keeping the original order on ties
func sortByOva(s []*Individual, idx int) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Ovas[idx] < s[j].Ovas[idx]
	})
}

// Output generates a table with population data
//  Input:
//   prob -- problem definition (for names and directions)
//  Output:
//   buf -- buffer with formatted table
func (o Population) Output(prob *Problem) (buf *bytes.Buffer) {
	buf = new(bytes.Buffer)
	if len(o) < 1 {
		return
	}

	// header
	n := 14 + 12*prob.Nova() + 12*prob.Nvars()
	io.Ff(buf, printThickLine(n))
	io.Ff(buf, "%6s%8s", "front", "viol")
	for _, obj := range prob.Objectives {
		io.Ff(buf, "%12s", obj.Name)
	}
	for _, v := range prob.Variables {
		io.Ff(buf, "%12s", v.Name)
	}
	io.Ff(buf, "\n")
	io.Ff(buf, printThinLine(n))

	// individuals
	for _, ind := range o {
		io.Ff(buf, "%6d%8.2g", ind.FrontId, ind.Violation)
		for j := range prob.Objectives {
			io.Ff(buf, "%12.5g", prob.userOva(ind, j))
		}
		for j, v := range prob.Variables {
			switch v.Kind {
			case KindReal:
				io.Ff(buf, "%12.5g", ind.Values[j].flt)
			case KindInt:
				io.Ff(buf, "%12d", ind.Values[j].num)
			case KindBool:
				io.Ff(buf, "%12v", ind.Values[j].bit)
			case KindChoice:
				io.Ff(buf, "%12s", v.Labels[ind.Values[j].num])
			}
		}
		io.Ff(buf, "\n")
	}
	io.Ff(buf, printThickLine(n))
	return
}

// printThickLine returns a thick line with n characters
func printThickLine(n int) (l string) {
	for i := 0; i < n; i++ {
		l += "="
	}
	return l + "\n"
}

// printThinLine returns a thin line with n characters
func printThinLine(n int) (l string) {
	for i := 0; i < n; i++ {
		l += "-"
	}
	return l + "\n"
}
