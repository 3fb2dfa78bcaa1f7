package model

import (
	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/sat"
	"github.com/samber/lo"
)

// encoding binds every constrained hidden cell of a snapshot to a SAT
// variable and translates each revealed count into CNF clauses over those
// variables. A hidden cell is constrained when at least one of its neighbors
// is revealed; all other hidden cells carry no information and get no
// variable.
type encoding struct {
	instance *sat.SAT
	// variables maps a constrained hidden cell to its SAT variable.
	variables map[game.Position]sat.Var
	// positions is the inverse mapping: positions[v-1] is the cell of
	// variable v. Cells are numbered in row-major order starting at 1.
	positions []game.Position
}

func newEncoding(snapshot game.Snapshot) *encoding {
	enc := &encoding{
		instance:  &sat.SAT{},
		variables: make(map[game.Position]sat.Var),
	}
	enc.assignVariables(snapshot)
	enc.encodeCounts(snapshot)
	return enc
}

func (enc *encoding) assignVariables(snapshot game.Snapshot) {
	for y := range snapshot.Height {
		for x := range snapshot.Width {
			if snapshot.Cell(x, y).Kind != game.Hidden {
				continue
			}
			constrained := lo.SomeBy(snapshot.NearbyCells(x, y), func(position game.Position) bool {
				return snapshot.Cell(position.X, position.Y).Kind == game.Revealed
			})
			if !constrained {
				continue
			}
			enc.positions = append(enc.positions, game.Position{X: x, Y: y})
			enc.variables[game.Position{X: x, Y: y}] = sat.Var(len(enc.positions))
		}
	}
	enc.instance.Variables = uint64(len(enc.positions))
}

// encodeCounts emits, for every revealed cell, the clauses forcing exactly
// its count of mines among its hidden neighbors. Flagged neighbors are taken
// as settled mines and subtracted from the count up front.
func (enc *encoding) encodeCounts(snapshot game.Snapshot) {
	for y := range snapshot.Height {
		for x := range snapshot.Width {
			cell := snapshot.Cell(x, y)
			if cell.Kind != game.Revealed {
				continue
			}

			var hidden []sat.Var
			flagged := 0
			for _, position := range snapshot.NearbyCells(x, y) {
				switch snapshot.Cell(position.X, position.Y).Kind {
				case game.Hidden:
					hidden = append(hidden, enc.variables[position])
				case game.Flagged:
					flagged++
				}
			}

			remaining := cell.Count - flagged
			switch {
			case remaining < 0 || remaining > len(hidden):
				// No layout can reconcile the count with its neighborhood:
				// poison the instance with an empty clause.
				enc.instance.AddClause()
			case remaining == 0:
				for _, variable := range hidden {
					enc.instance.AddClause(sat.Neg(variable))
				}
			case remaining == len(hidden):
				for _, variable := range hidden {
					enc.instance.AddClause(sat.Pos(variable))
				}
			default:
				enc.exactly(hidden, remaining)
			}
		}
	}
}

// exactly encodes that precisely count of the variables are true, using the
// binomial encoding: every subset of n-count+1 variables holds a true one
// (at least count), and every subset of count+1 variables holds a false one
// (at most count).
func (enc *encoding) exactly(variables []sat.Var, count int) {
	for _, combination := range subsets(variables, len(variables)-count+1) {
		clause := lo.Map(combination, func(variable sat.Var, _ int) sat.Lit {
			return sat.Pos(variable)
		})
		enc.instance.AddClause(clause...)
	}
	for _, combination := range subsets(variables, count+1) {
		clause := lo.Map(combination, func(variable sat.Var, _ int) sat.Lit {
			return sat.Neg(variable)
		})
		enc.instance.AddClause(clause...)
	}
}

// subsets enumerates every combination of the given size, preserving the
// relative order of the variables.
func subsets(variables []sat.Var, size int) [][]sat.Var {
	if size == 0 {
		return [][]sat.Var{{}}
	}
	if len(variables) < size {
		return nil
	}

	var combinations [][]sat.Var
	for _, tail := range subsets(variables[1:], size-1) {
		combination := append([]sat.Var{variables[0]}, tail...)
		combinations = append(combinations, combination)
	}
	return append(combinations, subsets(variables[1:], size)...)
}
