// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"reflect"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// tookData breaks the elapsed wall-clock time down for the snapshot
type tookData struct {
	Hours   int     `json:"hours"`
	Minutes int     `json:"minutes"`
	Seconds float64 `json:"seconds"`
}

// objectiveData declares one objective in a snapshot
type objectiveData struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// variableData declares one variable in a snapshot
type variableData struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Lower  float64  `json:"lower_bound"`
	Upper  float64  `json:"upper_bound"`
	Labels []string `json:"labels,omitempty"`
}

// constraintData declares one constraint in a snapshot
type constraintData struct {
	Name     string  `json:"name"`
	Operator string  `json:"operator"`
	Target   float64 `json:"target"`
}

// problemData is the problem declaration stored in a snapshot; a resumed run must
// match it exactly
type problemData struct {
	Objectives   []objectiveData  `json:"objectives"`
	Variables    []variableData   `json:"variables"`
	Constraints  []constraintData `json:"constraints"`
	Nobjectives  int              `json:"number_of_objectives"`
	Nvariables   int              `json:"number_of_variables"`
	Nconstraints int              `json:"number_of_constraints"`
}

// individualData is one individual in a snapshot. Objective values carry the user's
// orientation: maximised objectives have their sign restored on export and flipped
// back on import. Crowding distances are clamped to the largest finite float so the
// file round-trips losslessly.
type individualData struct {
	VariableValues      map[string]interface{} `json:"variable_values"`
	ObjectiveValues     map[string]float64     `json:"objective_values"`
	ConstraintValues    map[string]float64     `json:"constraint_values"`
	ConstraintViolation float64                `json:"constraint_violation"`
	IsFeasible          bool                   `json:"is_feasible"`
	Evaluated           bool                   `json:"evaluated"`
	Data                map[string]interface{} `json:"data"`
}

// Snapshot is the serialised state of a run at one generation
type Snapshot struct {
	Options        *Options               `json:"options"`
	Problem        problemData            `json:"problem"`
	Individuals    []individualData       `json:"individuals"`
	Generation     int                    `json:"generation"`
	Algorithm      string                 `json:"algorithm"`
	Took           tookData               `json:"took"`
	AdditionalData map[string]interface{} `json:"additional_data,omitempty"`
	ExportedOn     string                 `json:"exported_on"`
}

// newTookData splits a duration into hours, minutes and seconds
func newTookData(d time.Duration) tookData {
	h := int(d.Hours())
	m := int(d.Minutes()) - 60*h
	s := d.Seconds() - float64(3600*h) - float64(60*m)
	return tookData{Hours: h, Minutes: m, Seconds: s}
}

// problemToData flattens a problem definition
func problemToData(prob *Problem) (pd problemData) {
	pd.Nobjectives = prob.Nova()
	pd.Nvariables = prob.Nvars()
	pd.Nconstraints = prob.Ncons()
	for _, obj := range prob.Objectives {
		pd.Objectives = append(pd.Objectives, objectiveData{Name: obj.Name, Direction: obj.Direction.String()})
	}
	for _, v := range prob.Variables {
		pd.Variables = append(pd.Variables, variableData{
			Name:   v.Name,
			Kind:   v.Kind.String(),
			Lower:  v.Lower,
			Upper:  v.Upper,
			Labels: v.Labels,
		})
	}
	for _, c := range prob.Constraints {
		pd.Constraints = append(pd.Constraints, constraintData{Name: c.Name, Operator: c.Op.String(), Target: c.Target})
	}
	return
}

// Snapshot captures the current state of the run
func (o *Optimiser) Snapshot() *Snapshot {
	snap := &Snapshot{
		Options:    o.Opts,
		Problem:    problemToData(o.Prob),
		Generation: o.Gen,
		Algorithm:  o.eng.Name(),
		ExportedOn: time.Now().UTC().Format(time.RFC3339),
	}
	if o.state == stateRunning {
		snap.Took = newTookData(time.Since(o.start))
	} else {
		snap.Took = newTookData(o.took)
	}
	snap.AdditionalData = o.eng.AdditionalData(o)
	if snap.AdditionalData == nil {
		snap.AdditionalData = make(map[string]interface{})
	}
	snap.AdditionalData["function_evaluations"] = o.Nfeval
	for _, ind := range o.Pop {
		snap.Individuals = append(snap.Individuals, o.individualToData(ind))
	}
	return snap
}

// individualToData flattens one individual
func (o *Optimiser) individualToData(ind *Individual) (d individualData) {
	d.VariableValues = make(map[string]interface{}, o.Prob.Nvars())
	for i, v := range o.Prob.Variables {
		switch v.Kind {
		case KindReal:
			d.VariableValues[v.Name] = ind.Values[i].flt
		case KindInt:
			d.VariableValues[v.Name] = ind.Values[i].num
		case KindBool:
			d.VariableValues[v.Name] = ind.Values[i].bit
		case KindChoice:
			d.VariableValues[v.Name] = v.Labels[ind.Values[i].num]
		}
	}
	d.ObjectiveValues = make(map[string]float64, o.Prob.Nova())
	for j, obj := range o.Prob.Objectives {
		d.ObjectiveValues[obj.Name] = o.Prob.userOva(ind, j)
	}
	d.ConstraintValues = make(map[string]float64, o.Prob.Ncons())
	for j, con := range o.Prob.Constraints {
		d.ConstraintValues[con.Name] = ind.Cons[j]
	}
	d.ConstraintViolation = ind.Violation
	d.IsFeasible = ind.Feasible()
	d.Evaluated = ind.Evaluated
	crowd := ind.DistCrowd
	if math.IsInf(crowd, 1) || crowd > math.MaxFloat64 {
		crowd = math.MaxFloat64
	}
	d.Data = map[string]interface{}{
		"rank":                   ind.FrontId,
		"crowding_distance":      crowd,
		"reference_point_index":  ind.RefId,
		"perpendicular_distance": ind.DistRef,
	}
	return
}

// SaveSnapshot writes the current state to dir/fname as JSON
func (o *Optimiser) SaveSnapshot(dir, fname string) (err error) {
	defer func() {
		if r := recover(); r != nil { // io panics on write failures
			err = chk.Err("cannot write snapshot: %v", r)
		}
	}()
	b, err := json.MarshalIndent(o.Snapshot(), "", "  ")
	if err != nil {
		return chk.Err("cannot marshal snapshot: %v", err)
	}
	var buf bytes.Buffer
	buf.Write(b)
	io.WriteFileD(dir, fname, &buf)
	return nil
}

// exportHistory emits the periodic history snapshot
func (o *Optimiser) exportHistory() error {
	return o.SaveSnapshot(o.Opts.HistDir, io.Sf("%s_gen%06d.json", o.eng.Name(), o.Gen))
}

// ReadSnapshot loads a snapshot file
func ReadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read snapshot file %q", path)
	}
	snap := new(Snapshot)
	if err := json.Unmarshal(b, snap); err != nil {
		return nil, chk.Err("cannot unmarshal snapshot file %q: %v", path, err)
	}
	return snap, nil
}

// resume rehydrates the optimiser state from a snapshot file. The problem declaration
// and the algorithm must match exactly; maximised objective values get their sign
// flipped back to the internal orientation; the generator is re-seeded from (seed,
// generation), where the seed is the one recorded in the snapshot, else the one in the
// resuming options, else fresh OS entropy (only the first two are deterministic).
func (o *Optimiser) resume(path string) error {
	snap, err := ReadSnapshot(path)
	if err != nil {
		return err
	}
	if snap.Algorithm != o.eng.Name() {
		return chk.Err("snapshot was produced by %q but the optimiser runs %q", snap.Algorithm, o.eng.Name())
	}
	if !reflect.DeepEqual(snap.Problem, problemToData(o.Prob)) {
		return chk.Err("snapshot problem declaration does not match the given problem")
	}
	if len(snap.Individuals) != o.Opts.Ninds {
		return chk.Err("snapshot has %d individuals but number_of_individuals is %d", len(snap.Individuals), o.Opts.Ninds)
	}

	// population
	pop := make(Population, len(snap.Individuals))
	for i, d := range snap.Individuals {
		ind, err := o.dataToIndividual(d)
		if err != nil {
			return err
		}
		pop[i] = ind
	}
	o.Pop = pop
	o.Gen = snap.Generation

	// generator: original seed when available, fresh entropy otherwise
	var seed uint64
	switch {
	case snap.Options != nil && snap.Options.Seed != nil:
		seed = *snap.Options.Seed
	case o.Opts.Seed != nil:
		seed = *o.Opts.Seed
	default:
		seed = NewRandEntropy().Seed()
	}
	o.Rng = NewRand(resumeSeed(seed, snap.Generation))

	// evaluation counter and reference points
	if v, ok := snap.AdditionalData["function_evaluations"]; ok {
		if f, ok := v.(float64); ok {
			o.Nfeval = int(f)
		}
	}
	if eng, ok := o.eng.(*nsga3); ok {
		if err := eng.restoreRefs(snap.AdditionalData); err != nil {
			return err
		}
	}
	return nil
}

// dataToIndividual rebuilds one individual from its snapshot record
func (o *Optimiser) dataToIndividual(d individualData) (*Individual, error) {
	ind := NewIndividual(o.Prob)
	for i, v := range o.Prob.Variables {
		raw, ok := d.VariableValues[v.Name]
		if !ok {
			return nil, chk.Err("snapshot individual misses variable %q", v.Name)
		}
		switch v.Kind {
		case KindReal:
			f, ok := raw.(float64)
			if !ok {
				return nil, chk.Err("snapshot value of real variable %q is not a number", v.Name)
			}
			ind.Values[i] = RealValue(f)
		case KindInt:
			f, ok := raw.(float64)
			if !ok {
				return nil, chk.Err("snapshot value of integer variable %q is not a number", v.Name)
			}
			ind.Values[i] = IntValue(int(f))
		case KindBool:
			b, ok := raw.(bool)
			if !ok {
				return nil, chk.Err("snapshot value of boolean variable %q is not a boolean", v.Name)
			}
			ind.Values[i] = BoolValue(b)
		case KindChoice:
			s, ok := raw.(string)
			if !ok {
				return nil, chk.Err("snapshot value of choice variable %q is not a string", v.Name)
			}
			idx := -1
			for l, label := range v.Labels {
				if label == s {
					idx = l
					break
				}
			}
			if idx < 0 {
				return nil, chk.Err("snapshot label %q is not declared for variable %q", s, v.Name)
			}
			ind.Values[i] = ChoiceValue(idx)
		}
		if err := v.Check(ind.Values[i]); err != nil {
			return nil, err
		}
	}
	if d.Evaluated {
		for j, obj := range o.Prob.Objectives {
			f, ok := d.ObjectiveValues[obj.Name]
			if !ok {
				return nil, chk.Err("snapshot individual misses objective %q", obj.Name)
			}
			if obj.Direction == Maximise {
				f = -f
			}
			ind.Ovas[j] = f
		}
		for j, con := range o.Prob.Constraints {
			f, ok := d.ConstraintValues[con.Name]
			if !ok {
				return nil, chk.Err("snapshot individual misses constraint %q", con.Name)
			}
			ind.Cons[j] = f
		}
	}
	ind.Violation = d.ConstraintViolation
	ind.Evaluated = d.Evaluated
	if v, ok := d.Data["rank"]; ok {
		if f, ok := v.(float64); ok {
			ind.FrontId = int(f)
		}
	}
	if v, ok := d.Data["crowding_distance"]; ok {
		if f, ok := v.(float64); ok {
			ind.DistCrowd = f
		}
	}
	if v, ok := d.Data["reference_point_index"]; ok {
		if f, ok := v.(float64); ok {
			ind.RefId = int(f)
		}
	}
	if v, ok := d.Data["perpendicular_distance"]; ok {
		if f, ok := v.(float64); ok {
			ind.DistRef = f
		}
	}
	return ind, nil
}

// restoreRefs rebuilds the reference set from the additional data of a snapshot
func (e *nsga3) restoreRefs(additional map[string]interface{}) error {
	raw, ok := additional["reference_points"]
	if !ok {
		return nil // nothing stored: Prepare builds the set from the options
	}
	list, ok := raw.([]interface{})
	if !ok {
		return chk.Err("snapshot reference points are malformed")
	}
	spacing := 0.0
	if v, ok := additional["reference_spacing"].(float64); ok {
		spacing = v
	}
	set := new(RefSet)
	set.spacing = spacing
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return chk.Err("snapshot reference points are malformed")
		}
		id, ok1 := m["id"].(float64)
		added, ok2 := m["added"].(bool)
		craw, ok3 := m["coords"].([]interface{})
		if !ok1 || !ok2 || !ok3 {
			return chk.Err("snapshot reference points are malformed")
		}
		coords := make([]float64, len(craw))
		for j, c := range craw {
			f, ok := c.(float64)
			if !ok {
				return chk.Err("snapshot reference points are malformed")
			}
			coords[j] = f
		}
		p := &RefPoint{Id: int(id), Coords: coords, Added: added}
		set.Points = append(set.Points, p)
		if p.Id >= set.nextId {
			set.nextId = p.Id + 1
		}
	}
	if len(set.Points) == 0 {
		return chk.Err("snapshot reference point set is empty")
	}
	set.minAngle = set.spacing / 10.0
	e.refs = set
	return nil
}
