// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

package goevo

import (
	"runtime"
	"sync"
)

// evaluateAll computes objective and constraint values of all given individuals. With
// the parallel option on, evaluations are dispatched across a pool with one worker per
// logical CPU; each task reads the shared user evaluator and writes only into its own
// individual. The generator is never touched here, so evaluation order cannot change
// the outcome of a run. The first evaluator error aborts the whole batch.
func (o *Optimiser) evaluateAll(inds []*Individual) error {
	o.Nfeval += len(inds)
	if !o.Opts.Parallel {
		for _, ind := range inds {
			if err := o.Prob.Evaluate(ind); err != nil {
				return err
			}
		}
		return nil
	}

	nw := runtime.NumCPU()
	jobs := make(chan *Individual, len(inds))
	errs := make(chan error, nw)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var firstErr error
			for ind := range jobs {
				if firstErr != nil {
					continue // drain after failure
				}
				if err := o.Prob.Evaluate(ind); err != nil {
					firstErr = err
				}
			}
			errs <- firstErr
		}()
	}
	for _, ind := range inds {
		jobs <- ind
	}
	close(jobs)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
