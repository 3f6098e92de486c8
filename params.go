// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Options hold all configuration parameters of one optimisation run
type Options struct {

	// sizes
	Ninds int `json:"number_of_individuals"` // population size; fixed per run

	// stopping conditions; at least one must be set. They are checked after each
	// generation in the order: generation, duration, evaluations, hypervolume.
	MaxGen      int       `json:"max_generation,omitempty"`            // maximum number of generations
	MaxDuration float64   `json:"max_duration_seconds,omitempty"`      // soft time bound [s]; the current generation finishes
	MaxEvals    int       `json:"max_function_evaluations,omitempty"`  // maximum number of evaluator calls
	TargetHV    float64   `json:"target_hypervolume,omitempty"`        // hypervolume level to reach
	TargetHVRef []float64 `json:"target_hypervolume_reference,omitempty"` // reference point for TargetHV (minimised orientation)

	// crossover and mutation
	Pc   float64 `json:"p_c"`   // probability of crossover
	EtaC float64 `json:"eta_c"` // SBX distribution index
	Pm   float64 `json:"p_m"`   // probability of mutation; 0 means 1/number_of_variables
	EtaM float64 `json:"eta_m"` // polynomial mutation distribution index

	// options
	Parallel bool    `json:"parallel"`       // evaluate offspring on a worker pool
	Seed     *uint64 `json:"seed,omitempty"` // seed for random numbers; nil means OS entropy
	Verbose  bool    `json:"verbose"`        // show progress messages

	// history
	HistStep   int    `json:"export_generation_step,omitempty"` // emit a snapshot every HistStep generations
	HistDir    string `json:"export_directory,omitempty"`       // destination directory of snapshots
	ResumeFrom string `json:"resume_from_file,omitempty"`       // snapshot to resume from

	// reference points (NSGA-III)
	Npart         int     `json:"number_of_partitions,omitempty"` // one-layer Das-Dennis partitions
	BoundaryLayer int     `json:"boundary_layer,omitempty"`       // two-layer: boundary partitions
	InnerLayer    int     `json:"inner_layer,omitempty"`          // two-layer: inner partitions
	LayerScaling  float64 `json:"layer_scaling,omitempty"`        // two-layer: inner scaling s in (0, 1]

	// adaptation (adaptive NSGA-III)
	AdaptInterval int `json:"adaptation_interval,omitempty"` // generations between reference-point adjustments
}

// Default sets default options. The mutation probability is left at zero, meaning
// 1/number_of_variables resolved when the problem is known.
func (o *Options) Default() {
	o.Ninds = 100
	o.Pc = 0.9
	o.EtaC = 15
	o.Pm = 0
	o.EtaM = 20
	o.LayerScaling = 0.5
	o.AdaptInterval = 1
}

// Read reads options from a JSON file, on top of the defaults
func (o *Options) Read(filenamepath string) error {
	o.Default()
	b, err := os.ReadFile(filenamepath)
	if err != nil {
		return chk.Err("cannot read options file %q", filenamepath)
	}
	if err := json.Unmarshal(b, o); err != nil {
		return chk.Err("cannot unmarshal options file %q: %v", filenamepath, err)
	}
	return nil
}

// Validate checks the options against a problem definition
func (o *Options) Validate(prob *Problem) error {
	if o.Ninds < 2 {
		return chk.Err("number of individuals must be at least 2. Ninds = %d is invalid", o.Ninds)
	}
	ops := OpsData{Pc: o.Pc, EtaC: o.EtaC, Pm: o.Pm, EtaM: o.EtaM}
	if ops.Pm == 0 {
		ops.Pm = 1.0 / float64(prob.Nvars())
	}
	if err := ops.Validate(); err != nil {
		return err
	}
	if o.MaxGen < 0 || o.MaxEvals < 0 || o.MaxDuration < 0 {
		return chk.Err("stopping condition bounds cannot be negative")
	}
	if o.MaxGen == 0 && o.MaxDuration == 0 && o.MaxEvals == 0 && o.TargetHV == 0 {
		return chk.Err("at least one stopping condition must be set")
	}
	if o.TargetHV != 0 && len(o.TargetHVRef) != prob.Nova() {
		return chk.Err("target hypervolume needs a reference point with %d components", prob.Nova())
	}
	if o.HistStep < 0 {
		return chk.Err("export generation step cannot be negative")
	}
	if o.HistStep > 0 && o.HistDir == "" {
		return chk.Err("history export needs a destination directory")
	}
	return nil
}

// opsData resolves the operator parameters for a problem
func (o *Options) opsData(nvars int) *OpsData {
	ops := &OpsData{Pc: o.Pc, EtaC: o.EtaC, Pm: o.Pm, EtaM: o.EtaM}
	if ops.Pm == 0 {
		ops.Pm = 1.0 / float64(nvars)
	}
	return ops
}

// stopping conditions /////////////////////////////////////////////////////////////////

// stopCondition is one stopping rule checked at generation boundaries
type stopCondition interface {
	reached(o *Optimiser) (stop bool, reason string, err error)
}

type maxGeneration int
type maxDuration time.Duration
type maxEvaluations int
type targetHypervolume struct {
	value float64
	ref   []float64
}

func (c maxGeneration) reached(o *Optimiser) (bool, string, error) {
	if o.Gen >= int(c) {
		return true, io.Sf("reached maximum generation %d", int(c)), nil
	}
	return false, "", nil
}

func (c maxDuration) reached(o *Optimiser) (bool, string, error) {
	if time.Since(o.start) >= time.Duration(c) {
		return true, io.Sf("reached maximum duration %v", time.Duration(c)), nil
	}
	return false, "", nil
}

func (c maxEvaluations) reached(o *Optimiser) (bool, string, error) {
	if o.Nfeval >= int(c) {
		return true, io.Sf("reached maximum number of function evaluations %d", int(c)), nil
	}
	return false, "", nil
}

func (c targetHypervolume) reached(o *Optimiser) (bool, string, error) {

	// only rank-1 points inside the reference box count; the rest would violate the
	// weak-domination precondition while contributing no volume anyway
	var points [][]float64
outer:
	for _, ind := range o.Pop {
		if ind.FrontId != 1 {
			continue
		}
		for j, x := range ind.Ovas {
			if x > c.ref[j] {
				continue outer
			}
		}
		points = append(points, ind.Ovas)
	}
	if len(points) == 0 {
		return false, "", nil
	}
	hv, err := Hypervolume(points, c.ref)
	if err != nil {
		return false, "", err
	}
	if hv >= c.value {
		return true, io.Sf("reached target hypervolume %g (current %g)", c.value, hv), nil
	}
	return false, "", nil
}

// stopList builds the stopping conditions in the canonical check order
func (o *Options) stopList() (list []stopCondition) {
	if o.MaxGen > 0 {
		list = append(list, maxGeneration(o.MaxGen))
	}
	if o.MaxDuration > 0 {
		list = append(list, maxDuration(time.Duration(o.MaxDuration*float64(time.Second))))
	}
	if o.MaxEvals > 0 {
		list = append(list, maxEvaluations(o.MaxEvals))
	}
	if o.TargetHV != 0 {
		list = append(list, targetHypervolume{value: o.TargetHV, ref: o.TargetHVRef})
	}
	return
}
