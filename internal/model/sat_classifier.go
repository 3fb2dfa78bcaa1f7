package model

import (
	"fmt"

	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/sat"
)

type satClassifier struct {
	//** Dependencies
	solver sat.SATSolver
}

func (classifier *satClassifier) Classify(snapshot game.Snapshot) (Classification, error) {
	//** Encode the snapshot constraints
	enc := newEncoding(snapshot)
	classification := make(Classification)

	//** Unconstrained hidden cells carry no information: report them Unknown without probing
	for y := range snapshot.Height {
		for x := range snapshot.Width {
			if snapshot.Cell(x, y).Kind != game.Hidden {
				continue
			}
			position := game.Position{X: x, Y: y}
			if _, constrained := enc.variables[position]; !constrained {
				classification[position] = Unknown
			}
		}
	}

	//** Establish that the constraints admit at least one layout
	witness, err := classifier.solver.Solve(enc.instance)
	if err != nil {
		return nil, err
	}
	if witness == nil {
		return nil, ContradictionError{}
	}

	//** Probe each constrained cell under both assumptions
	probe := &probeContext{
		solver:    classifier.solver,
		instance:  enc.instance,
		witnesses: []sat.SATSolution{witness},
	}
	for index, position := range enc.positions {
		variable := sat.Var(index + 1)

		minePossible, err := probe.possible(sat.Pos(variable))
		if err != nil {
			return nil, err
		}
		if !minePossible { // No layout mines the cell
			classification[position] = Safe
			continue
		}

		safePossible, err := probe.possible(sat.Neg(variable))
		if err != nil {
			return nil, err
		}
		if !safePossible { // Every layout mines the cell
			classification[position] = Mine
		} else {
			classification[position] = Unknown
		}
	}

	return classification, nil
}

// Probabilities estimates mine likelihoods as relative frequencies over
// repeated randomized solves. Branching does not sample layouts uniformly,
// so the numbers rank cells rather than measure exact probabilities.
func (classifier *satClassifier) Probabilities(snapshot game.Snapshot, samples int) (map[game.Position]float64, error) {
	if samples < 1 {
		return nil, fmt.Errorf("samples must be positive, got %v", samples)
	}

	enc := newEncoding(snapshot)
	counts := make(map[game.Position]int)
	for range samples {
		witness, err := classifier.solver.Solve(enc.instance)
		if err != nil {
			return nil, err
		}
		if witness == nil {
			return nil, ContradictionError{}
		}
		for index, position := range enc.positions {
			if witness.Satisfies(sat.Pos(sat.Var(index + 1))) {
				counts[position]++
			}
		}
	}

	probabilities := make(map[game.Position]float64)
	for _, position := range enc.positions {
		probabilities[position] = float64(counts[position]) / float64(samples)
	}
	return probabilities, nil
}

// probeContext answers satisfiability probes against one encoded instance,
// pooling every witness found along the way. A pooled witness that already
// satisfies the probed literal settles the probe without running the solver.
type probeContext struct {
	solver    sat.SATSolver
	instance  *sat.SAT
	witnesses []sat.SATSolution
}

func (probe *probeContext) possible(literal sat.Lit) (bool, error) {
	for _, witness := range probe.witnesses {
		if witness.Satisfies(literal) {
			return true, nil
		}
	}

	witness, err := probe.solver.Solve(probe.instance, literal)
	if err != nil {
		return false, err
	}
	if witness == nil {
		return false, nil
	}
	probe.witnesses = append(probe.witnesses, witness)
	return true, nil
}
