// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/google/go-cmp/cmp"
)

func Test_driver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver01. stopping conditions")

	// maximum generation
	prob := schProblem()
	seed := uint64(3)
	opts := new(Options)
	opts.Default()
	opts.Ninds = 20
	opts.MaxGen = 5
	opts.Seed = &seed
	opt, err := NewNSGA2(prob, opts)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	res, err := opt.Run()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}
	chk.Int(tst, "generations", res.Generations, 5)

	// the optimiser refuses a second run
	if _, err = opt.Run(); err == nil {
		tst.Errorf("a stopped optimiser must refuse to run again\n")
	}

	// maximum function evaluations: 20 seeding + 20 per generation
	opts2 := new(Options)
	opts2.Default()
	opts2.Ninds = 20
	opts2.MaxEvals = 140
	opts2.Seed = &seed
	opt2, err := NewNSGA2(prob, opts2)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	res2, err := opt2.Run()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}
	chk.Int(tst, "evaluations", res2.Evaluations, 140)
	chk.Int(tst, "generations for budget", res2.Generations, 6)

	// target hypervolume stops well before the generation bound
	opts3 := new(Options)
	opts3.Default()
	opts3.Ninds = 50
	opts3.MaxGen = 250
	opts3.TargetHV = 10.0
	opts3.TargetHVRef = []float64{4.5, 4.5}
	opts3.Seed = &seed
	opt3, err := NewNSGA2(prob, opts3)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	res3, err := opt3.Run()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}
	if res3.Generations >= 250 {
		tst.Errorf("target hypervolume never fired\n")
	}

	// no stopping condition at all is a configuration error
	opts4 := new(Options)
	opts4.Default()
	opts4.Ninds = 20
	opts4.Seed = &seed
	if _, err = NewNSGA2(prob, opts4); err == nil {
		tst.Errorf("missing stopping condition must be rejected\n")
	}
}

func Test_driver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver02. history snapshots at the configured cadence")

	dir := tst.TempDir()
	prob := schProblem()
	seed := uint64(9)
	opts := new(Options)
	opts.Default()
	opts.Ninds = 16
	opts.MaxGen = 7
	opts.HistStep = 3
	opts.HistDir = dir
	opts.Seed = &seed
	opt, err := NewNSGA2(prob, opts)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	if _, err = opt.Run(); err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}

	// snapshots at generations 3 and 6 only
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		tst.Errorf("glob failed: %v\n", err)
		return
	}
	chk.Int(tst, "number of snapshots", len(files), 2)
	for _, gen := range []int{3, 6} {
		path := filepath.Join(dir, "NSGA2_gen"+padGen(gen)+".json")
		if _, err := os.Stat(path); err != nil {
			tst.Errorf("snapshot for generation %d is missing\n", gen)
		}
	}
}

// padGen formats a generation counter the way history files are named
func padGen(g int) string {
	s := ""
	for n := 100000; n >= 1; n /= 10 {
		s += string(rune('0' + (g/n)%10))
	}
	return s
}

func Test_driver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver03. snapshot round-trip and resume")

	dir := tst.TempDir()
	prob := mixedProblem()
	seed := uint64(21)
	opts := new(Options)
	opts.Default()
	opts.Ninds = 12
	opts.MaxGen = 8
	opts.Seed = &seed
	opt, err := NewNSGA2(prob, opts)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	if _, err = opt.Run(); err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}
	if err = opt.SaveSnapshot(dir, "state.json"); err != nil {
		tst.Errorf("cannot save snapshot: %v\n", err)
		return
	}
	path := filepath.Join(dir, "state.json")

	// resume into a fresh optimiser on the same problem
	opts2 := new(Options)
	opts2.Default()
	opts2.Ninds = 12
	opts2.MaxGen = 8
	opts2.ResumeFrom = path
	opt2, err := NewNSGA2(mixedProblem(), opts2)
	if err != nil {
		tst.Errorf("cannot resume: %v\n", err)
		return
	}
	chk.Int(tst, "resumed generation", opt2.Gen, 8)
	chk.Int(tst, "resumed evaluations", opt2.Nfeval, opt.Nfeval)

	// the rehydrated population is equivalent: bit-equal variable and objective
	// values with the user sign restored on maximised objectives. The scratch data
	// bags are excluded: Prepare legitimately re-ranks the survivors alone.
	snapA := opt.Snapshot()
	snapB := opt2.Snapshot()
	for i := range snapA.Individuals {
		snapA.Individuals[i].Data = nil
		snapB.Individuals[i].Data = nil
	}
	if diff := cmp.Diff(snapA.Individuals, snapB.Individuals); diff != "" {
		tst.Errorf("populations differ after round-trip:\n%s\n", diff)
		return
	}
	for i, ind := range opt2.Pop {
		gainA, _ := opt.Pop[i].ObjectiveValue("gain")
		gainB, _ := ind.ObjectiveValue("gain")
		if gainA != gainB {
			tst.Errorf("maximised objective changed across the round-trip\n")
			return
		}
	}

	// the resumed optimiser keeps running
	res, err := opt2.Run()
	if err != nil {
		tst.Errorf("resumed run failed: %v\n", err)
		return
	}
	chk.Int(tst, "population size", len(res.Population), 12)
}

func Test_driver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver04. resume rejects a mismatching problem")

	dir := tst.TempDir()
	prob := schProblem()
	seed := uint64(2)
	opts := new(Options)
	opts.Default()
	opts.Ninds = 10
	opts.MaxGen = 3
	opts.Seed = &seed
	opt, err := NewNSGA2(prob, opts)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	if _, err = opt.Run(); err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}
	if err = opt.SaveSnapshot(dir, "state.json"); err != nil {
		tst.Errorf("cannot save snapshot: %v\n", err)
		return
	}
	path := filepath.Join(dir, "state.json")

	// different problem: declaration mismatch
	opts2 := new(Options)
	opts2.Default()
	opts2.Ninds = 10
	opts2.MaxGen = 3
	opts2.ResumeFrom = path
	if _, err = NewNSGA2(mixedProblem(), opts2); err == nil {
		tst.Errorf("problem mismatch must be rejected\n")
	}

	// different algorithm: snapshot mismatch
	prob3 := dtlz1Problem()
	opts3 := new(Options)
	opts3.Default()
	opts3.Ninds = 92
	opts3.MaxGen = 3
	opts3.Npart = 12
	opts3.ResumeFrom = path
	if _, err = NewNSGA3(prob3, opts3); err == nil {
		tst.Errorf("algorithm mismatch must be rejected\n")
	}

	// unreadable file
	opts4 := new(Options)
	opts4.Default()
	opts4.Ninds = 10
	opts4.MaxGen = 3
	opts4.ResumeFrom = filepath.Join(dir, "missing.json")
	if _, err = NewNSGA2(schProblem(), opts4); err == nil {
		tst.Errorf("missing snapshot file must be rejected\n")
	}
}

func Test_driver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver05. parallel evaluation does not change the outcome")

	runWith := func(parallel bool) Population {
		prob := zdt1Problem()
		seed := uint64(13)
		opts := new(Options)
		opts.Default()
		opts.Ninds = 24
		opts.MaxGen = 15
		opts.Parallel = parallel
		opts.Seed = &seed
		opt, err := NewNSGA2(prob, opts)
		if err != nil {
			tst.Fatalf("cannot create optimiser: %v\n", err)
		}
		res, err := opt.Run()
		if err != nil {
			tst.Fatalf("run failed: %v\n", err)
		}
		return res.Population
	}
	serial := runWith(false)
	parallel := runWith(true)
	for i := range serial {
		for j := range serial[i].Ovas {
			if serial[i].Ovas[j] != parallel[i].Ovas[j] {
				tst.Errorf("parallel evaluation changed the outcome\n")
				return
			}
		}
	}
}

func Test_driver06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver06. evaluator failure aborts the run")

	x, _ := NewRealVariable("x", 0, 1)
	calls := 0
	prob, _ := NewProblem([]Objective{{Name: "f"}}, []*Variable{x}, nil,
		EvalFunc(func(ind *Individual) (map[string]float64, map[string]float64, error) {
			calls++
			if calls > 30 {
				return nil, nil, chk.Err("backend went away")
			}
			v, _ := ind.Real("x")
			return map[string]float64{"f": v}, nil, nil
		}))
	seed := uint64(1)
	opts := new(Options)
	opts.Default()
	opts.Ninds = 10
	opts.MaxGen = 50
	opts.Seed = &seed
	opt, err := NewNSGA2(prob, opts)
	if err != nil {
		tst.Errorf("cannot create optimiser: %v\n", err)
		return
	}
	if _, err = opt.Run(); err == nil {
		tst.Errorf("an evaluator failure must abort the run\n")
	}
}
