// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// runState is the internal state of the driver. Only the transition to stateStopped is
// observable externally, through Results.
type runState int

const (
	stateCreated runState = iota
	stateInitialised
	stateRunning
	stateStopped
)

// engine is one selection strategy plugged into the driver
type engine interface {

	// Name returns the algorithm name used in snapshots
	Name() string

	// Prepare assigns the initial ranks and scratch data on the seeded (and already
	// evaluated) population, before the first tournament
	Prepare(o *Optimiser) error

	// Evolve runs one generation and replaces o.Pop with the next population
	Evolve(o *Optimiser) error

	// AdditionalData returns algorithm-specific data for snapshots
	AdditionalData(o *Optimiser) map[string]interface{}
}

// Optimiser drives the generation loop of one evolutionary run
type Optimiser struct {

	// input
	Prob *Problem // problem definition (immutable)
	Opts *Options // configuration

	// current state
	Pop    Population // current population; size is fixed per run
	Gen    int        // generation counter
	Nfeval int        // number of evaluator calls
	Rng    *Rand      // random numbers generator shared by all stochastic steps

	// internal
	eng   engine
	ops   *OpsData
	stops []stopCondition
	state runState
	start time.Time
	took  time.Duration
}

// Results holds the outcome of a finished run
type Results struct {
	Population  Population    // final population
	Generations int           // number of generations run
	Evaluations int           // number of evaluator calls
	Took        time.Duration // wall-clock time of the Run call
	StopReason  string        // which stopping condition fired
}

// ParetoFront returns the rank-1 members of the final population
func (o *Results) ParetoFront() (front []*Individual) {
	for _, ind := range o.Population {
		if ind.FrontId == 1 {
			front = append(front, ind)
		}
	}
	return
}

// NewNSGA2 creates an optimiser with the NSGA-II selection engine
func NewNSGA2(prob *Problem, opts *Options) (*Optimiser, error) {
	return newOptimiser(prob, opts, new(nsga2))
}

// NewNSGA3 creates an optimiser with the NSGA-III selection engine
func NewNSGA3(prob *Problem, opts *Options) (*Optimiser, error) {
	return newOptimiser(prob, opts, &nsga3{})
}

// NewAdaptiveNSGA3 creates an optimiser with the adaptive NSGA-III selection engine,
// which adds and removes reference points as the run progresses
func NewAdaptiveNSGA3(prob *Problem, opts *Options) (*Optimiser, error) {
	return newOptimiser(prob, opts, &nsga3{adaptive: true})
}

// newOptimiser validates the configuration, seeds or resumes the population and
// prepares the selection engine. On success the optimiser is Initialised and ready to
// Run exactly once.
func newOptimiser(prob *Problem, opts *Options, eng engine) (o *Optimiser, err error) {
	if prob == nil {
		return nil, chk.Err("problem must be non nil")
	}
	if opts == nil {
		return nil, chk.Err("options must be non nil")
	}
	if err = opts.Validate(prob); err != nil {
		return nil, err
	}
	o = &Optimiser{
		Prob:  prob,
		Opts:  opts,
		eng:   eng,
		ops:   opts.opsData(prob.Nvars()),
		stops: opts.stopList(),
		state: stateCreated,
	}

	// resume from a snapshot
	if opts.ResumeFrom != "" {
		if err = o.resume(opts.ResumeFrom); err != nil {
			return nil, err
		}
		if err = eng.Prepare(o); err != nil {
			return nil, err
		}
		o.state = stateInitialised
		return o, nil
	}

	// fresh start: sample and evaluate the initial population
	if opts.Seed != nil {
		o.Rng = NewRand(*opts.Seed)
	} else {
		o.Rng = NewRandEntropy()
	}
	o.Pop = NewPopulation(prob, opts.Ninds, o.Rng)
	if err = o.evaluateAll(o.Pop); err != nil {
		return nil, err
	}
	if err = eng.Prepare(o); err != nil {
		return nil, err
	}
	o.state = stateInitialised
	return o, nil
}

// Run executes the generation loop until a stopping condition fires
func (o *Optimiser) Run() (res *Results, err error) {
	if o.state != stateInitialised {
		return nil, chk.Err("optimiser must be freshly initialised to run")
	}
	o.state = stateRunning
	o.start = time.Now()
	reason := ""
	for {
		o.Gen++
		if err = o.eng.Evolve(o); err != nil {
			o.state = stateStopped
			return nil, err
		}
		if len(o.Pop) != o.Opts.Ninds {
			chk.Panic("population size changed from %d to %d", o.Opts.Ninds, len(o.Pop))
		}
		if o.Opts.Verbose {
			io.Pf("generation %4d: nfeval=%d\n", o.Gen, o.Nfeval)
		}
		if o.Opts.HistStep > 0 && o.Gen%o.Opts.HistStep == 0 {
			if err = o.exportHistory(); err != nil {
				o.state = stateStopped
				return nil, err
			}
		}
		stop := false
		for _, cond := range o.stops {
			stop, reason, err = cond.reached(o)
			if err != nil {
				o.state = stateStopped
				return nil, err
			}
			if stop {
				break
			}
		}
		if stop {
			break
		}
	}
	o.took = time.Since(o.start)
	o.state = stateStopped
	if o.Opts.Verbose {
		io.Pf("stopped after %d generations: %s\n", o.Gen, reason)
	}
	return &Results{
		Population:  o.Pop,
		Generations: o.Gen,
		Evaluations: o.Nfeval,
		Took:        o.took,
		StopReason:  reason,
	}, nil
}

// fill selects the next population of size need from ranked fronts: whole fronts are
// taken while they fit and the indices of the first overflowing front are returned for
// the engine-specific truncation
//  Input:
//   pool   -- combined parents and offspring
//   fronts -- index fronts from SortByFronts(pool)
//   need   -- target size
//  Output:
//   next -- members taken from wholly included fronts
//   last -- indices (into pool) of the splitting front; empty when fronts fit exactly
func fill(pool []*Individual, fronts [][]int, need int) (next []*Individual, last []int) {
	next = make([]*Individual, 0, need)
	for _, front := range fronts {
		if len(next)+len(front) <= need {
			for _, i := range front {
				next = append(next, pool[i])
			}
			if len(next) == need {
				return
			}
			continue
		}
		last = front
		return
	}
	return
}
