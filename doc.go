// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the file LICENSE.

// Package goevo implements multi-objective evolutionary optimisation with the NSGA
// family of selection engines (NSGA-II, NSGA-III and an adaptive NSGA-III variant).
// Problems are defined by typed decision variables, objectives with a direction,
// optional relational constraints and a user evaluator; the optimiser evolves a
// population towards the Pareto front using simulated binary crossover, polynomial
// mutation and tournament selection. The hypervolume indicator (2D sweep, 3D
// dimension-sweep and the WFG algorithm for higher dimensions) measures front quality
// and can drive the stopping condition. Runs are reproducible given a seed and can be
// snapshotted to JSON and resumed.
package goevo
