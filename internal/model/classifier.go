package model

import (
	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/sat"
)

// Verdict is the outcome of classifying one hidden cell.
type Verdict uint8

const (
	Unknown Verdict = iota
	Safe
	Mine
)

func (verdict Verdict) String() string {
	switch verdict {
	case Safe:
		return "safe"
	case Mine:
		return "mine"
	default:
		return "unknown"
	}
}

// Classification maps every hidden cell of a snapshot to its verdict.
type Classification map[game.Position]Verdict

type Classifier interface {
	// Classify proves each hidden cell safe, mined or neither. It fails with
	// ContradictionError when the snapshot constraints cannot all hold.
	Classify(snapshot game.Snapshot) (Classification, error)

	// Probabilities estimates the mine likelihood of constrained hidden
	// cells by sampling satisfying assignments of the snapshot constraints.
	Probabilities(snapshot game.Snapshot, samples int) (map[game.Position]float64, error)
}

func NewClassifier(solver sat.SATSolver) Classifier {
	return &satClassifier{solver: solver}
}

// ContradictionError reports a snapshot whose revealed counts cannot be
// explained by any mine layout, meaning the upstream game state is corrupt.
type ContradictionError struct{}

func (err ContradictionError) Error() string {
	return "snapshot constraints are contradictory: no mine layout satisfies every revealed count"
}
