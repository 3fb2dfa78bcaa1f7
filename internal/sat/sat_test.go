package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteralHelpers(t *testing.T) {
	assert.Equal(t, Lit(7), Pos(7))
	assert.Equal(t, Lit(-7), Neg(7))
	assert.Equal(t, Var(7), Pos(7).Var())
	assert.Equal(t, Var(7), Neg(7).Var())
	assert.True(t, Pos(7).IsPositive())
	assert.False(t, Neg(7).IsPositive())
	assert.Equal(t, Neg(7), Pos(7).Negation())
	assert.Equal(t, Pos(7), Neg(7).Negation())
}

func TestSolutionSatisfies(t *testing.T) {
	solution := SATSolution{Pos(1), Neg(2), Pos(3)}

	assert.True(t, solution.Satisfies(Pos(1)))
	assert.True(t, solution.Satisfies(Neg(2)))
	assert.False(t, solution.Satisfies(Pos(2)))
	assert.False(t, solution.Satisfies(Neg(1)))
}

func TestAddClauseKeepsInsertionOrder(t *testing.T) {
	// Arrange
	instance := &SAT{Variables: 3}

	// Act
	instance.AddClause(Pos(1), Neg(2))
	instance.AddClause(Pos(3))
	instance.AddClause(Neg(1), Neg(3))

	// Assert
	assert.Equal(t, []Clause{
		{Pos(1), Neg(2)},
		{Pos(3)},
		{Neg(1), Neg(3)},
	}, instance.Clauses)
}

func TestToDIMACS(t *testing.T) {
	// Arrange
	instance := &SAT{Variables: 3}
	instance.AddClause(Pos(1), Neg(2))
	instance.AddClause(Neg(3))

	// Act
	dimacs := instance.ToDIMACS()

	// Assert
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n-3 0\n", dimacs)
}
