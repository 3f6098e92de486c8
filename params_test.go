// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01. defaults and validation")

	prob := schProblem()
	opts := new(Options)
	opts.Default()
	chk.Int(tst, "default Ninds", opts.Ninds, 100)
	chk.Float64(tst, "default Pc", 1e-15, opts.Pc, 0.9)
	chk.Float64(tst, "default scaling", 1e-15, opts.LayerScaling, 0.5)

	if err := opts.Validate(prob); err == nil {
		tst.Errorf("options without a stopping condition must be rejected\n")
	}
	opts.MaxGen = 10
	if err := opts.Validate(prob); err != nil {
		tst.Errorf("valid options rejected: %v\n", err)
	}

	opts.Ninds = 1
	if err := opts.Validate(prob); err == nil {
		tst.Errorf("population of one must be rejected\n")
	}
	opts.Ninds = 100

	opts.TargetHV = 5
	if err := opts.Validate(prob); err == nil {
		tst.Errorf("target hypervolume without a matching reference must be rejected\n")
	}
	opts.TargetHVRef = []float64{4, 4}
	if err := opts.Validate(prob); err != nil {
		tst.Errorf("valid target hypervolume rejected: %v\n", err)
	}

	opts.HistStep = 5
	if err := opts.Validate(prob); err == nil {
		tst.Errorf("history export without a directory must be rejected\n")
	}
	opts.HistDir = "/tmp/goevo"
	if err := opts.Validate(prob); err != nil {
		tst.Errorf("valid history options rejected: %v\n", err)
	}

	// the mutation default resolves against the problem
	ops := opts.opsData(prob.Nvars())
	chk.Float64(tst, "resolved Pm", 1e-15, ops.Pm, 1.0)
}

func Test_params02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params02. reading options from JSON")

	dir := tst.TempDir()
	path := filepath.Join(dir, "opts.json")
	data := `{
  "number_of_individuals": 48,
  "max_generation": 120,
  "p_c": 0.8,
  "eta_c": 20,
  "p_m": 0.05,
  "eta_m": 30,
  "parallel": true,
  "seed": 99,
  "number_of_partitions": 12
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		tst.Errorf("cannot write file: %v\n", err)
		return
	}
	opts := new(Options)
	if err := opts.Read(path); err != nil {
		tst.Errorf("cannot read options: %v\n", err)
		return
	}
	chk.Int(tst, "Ninds", opts.Ninds, 48)
	chk.Int(tst, "MaxGen", opts.MaxGen, 120)
	chk.Float64(tst, "Pc", 1e-15, opts.Pc, 0.8)
	chk.Float64(tst, "Pm", 1e-15, opts.Pm, 0.05)
	if !opts.Parallel {
		tst.Errorf("parallel flag was not read\n")
	}
	if opts.Seed == nil || *opts.Seed != 99 {
		tst.Errorf("seed was not read\n")
	}
	chk.Int(tst, "Npart", opts.Npart, 12)

	// values in the file replace the defaults; defaults survive for fields the file
	// omits
	chk.Float64(tst, "EtaM from file", 1e-15, opts.EtaM, 30)
	chk.Float64(tst, "scaling default", 1e-15, opts.LayerScaling, 0.5)

	if err := opts.Read(filepath.Join(dir, "missing.json")); err == nil {
		tst.Errorf("missing file must be an error\n")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{nope"), 0644)
	if err := opts.Read(bad); err == nil {
		tst.Errorf("malformed JSON must be an error\n")
	}
}
