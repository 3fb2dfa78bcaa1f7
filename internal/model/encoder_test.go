package model

import (
	"fmt"
	"testing"

	"github.com/limaJavier/minesweep/internal/game"
	"github.com/limaJavier/minesweep/internal/sat"
	"github.com/stretchr/testify/assert"
)

// gridSnapshot builds a snapshot from symbol rows: '.' hidden, 'F' flagged
// and a digit for a revealed count.
func gridSnapshot(rows ...string) game.Snapshot {
	cells := make([][]game.SnapshotCell, len(rows))
	for y, row := range rows {
		cells[y] = make([]game.SnapshotCell, len(row))
		for x, symbol := range row {
			switch symbol {
			case '.':
				cells[y][x] = game.SnapshotCell{Kind: game.Hidden}
			case 'F':
				cells[y][x] = game.SnapshotCell{Kind: game.Flagged}
			default:
				cells[y][x] = game.SnapshotCell{Kind: game.Revealed, Count: int(symbol - '0')}
			}
		}
	}
	return game.Snapshot{
		Width:  len(rows[0]),
		Height: len(rows),
		Cells:  cells,
	}
}

func TestEncodingVariables(t *testing.T) {
	t.Run("Constrained cells are numbered in row-major order", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot(
			"1.",
			"..",
		)

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Equal(t, uint64(3), enc.instance.Variables)
		assert.Equal(t, []game.Position{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, enc.positions)
		assert.Equal(t, sat.Var(1), enc.variables[game.Position{X: 1, Y: 0}])
		assert.Equal(t, sat.Var(2), enc.variables[game.Position{X: 0, Y: 1}])
		assert.Equal(t, sat.Var(3), enc.variables[game.Position{X: 1, Y: 1}])
	})

	t.Run("Hidden cells without revealed neighbors get no variable", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot("1...")

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Equal(t, uint64(1), enc.instance.Variables)
		assert.Equal(t, []game.Position{{X: 1, Y: 0}}, enc.positions)
		assert.NotContains(t, enc.variables, game.Position{X: 2, Y: 0})
		assert.NotContains(t, enc.variables, game.Position{X: 3, Y: 0})
	})
}

func TestEncodingCounts(t *testing.T) {
	t.Run("Zero count forces every neighbor off", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot("0.")

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Equal(t, []sat.Clause{{-1}}, enc.instance.Clauses)
	})

	t.Run("Saturated count forces every neighbor on", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot(".2.")

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Equal(t, []sat.Clause{{1}, {2}}, enc.instance.Clauses)
	})

	t.Run("Interior count expands to the binomial clauses", func(t *testing.T) {
		// Arrange: one mine among three neighbors
		snapshot := gridSnapshot(
			"1.",
			"..",
		)

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Equal(t, []sat.Clause{
			{1, 2, 3},
			{-1, -2},
			{-1, -3},
			{-2, -3},
		}, enc.instance.Clauses)
	})

	t.Run("Flagged neighbors are subtracted from the count", func(t *testing.T) {
		// Arrange: count 2 with one flag settled leaves one mine among two
		snapshot := gridSnapshot(
			"2F",
			"..",
		)

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Equal(t, []sat.Clause{
			{1, 2},
			{-1, -2},
		}, enc.instance.Clauses)
	})

	t.Run("Count above the neighborhood poisons the instance", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot("3.")

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Len(t, enc.instance.Clauses, 1)
		assert.Empty(t, enc.instance.Clauses[0])
	})

	t.Run("More flags than the count poisons the instance", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot("0F")

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Len(t, enc.instance.Clauses, 1)
		assert.Empty(t, enc.instance.Clauses[0])
	})

	t.Run("Revealed cell without hidden neighbors adds nothing", func(t *testing.T) {
		// Arrange
		snapshot := gridSnapshot("00")

		// Act
		enc := newEncoding(snapshot)

		// Assert
		assert.Empty(t, enc.instance.Clauses)
		assert.Equal(t, uint64(0), enc.instance.Variables)
	})

	t.Run("Encoding admits exactly the layouts matching the count", func(t *testing.T) {
		for count := 0; count <= 8; count++ {
			// Arrange: a ring of eight hidden cells around the count
			snapshot := gridSnapshot(
				"...",
				fmt.Sprintf(".%d.", count),
				"...",
			)
			enc := newEncoding(snapshot)

			// Act & Assert: every assignment satisfies the clauses iff it
			// places precisely that many mines
			for mask := range 256 {
				solution := make(sat.SATSolution, 0, 8)
				mines := 0
				for variable := range 8 {
					if mask&(1<<variable) != 0 {
						solution = append(solution, sat.Pos(sat.Var(variable+1)))
						mines++
					} else {
						solution = append(solution, sat.Neg(sat.Var(variable+1)))
					}
				}
				assert.Equal(t, mines == count, sat.AssertSATSolution(enc.instance, solution), "count %v, layout %08b", count, mask)
			}
		}
	})
}

func TestSubsets(t *testing.T) {
	t.Run("Enumerates combinations preserving order", func(t *testing.T) {
		// Act
		combinations := subsets([]sat.Var{1, 2, 3}, 2)

		// Assert
		assert.Equal(t, [][]sat.Var{{1, 2}, {1, 3}, {2, 3}}, combinations)
	})

	t.Run("Size zero yields the empty combination", func(t *testing.T) {
		assert.Equal(t, [][]sat.Var{{}}, subsets([]sat.Var{1, 2}, 0))
	})

	t.Run("Size beyond the variables yields nothing", func(t *testing.T) {
		assert.Empty(t, subsets([]sat.Var{1, 2}, 3))
	})
}
