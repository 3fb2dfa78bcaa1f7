package sat

import (
	"fmt"
	"strings"
)

// Var identifies a propositional variable. Valid variables range from 1 up
// to the Variables count of the instance they belong to.
type Var uint64

// Lit is a DIMACS-style literal: +v asserts variable v and -v asserts its
// negation. Zero is not a valid literal.
type Lit int64

func Pos(variable Var) Lit {
	return Lit(variable)
}

func Neg(variable Var) Lit {
	return -Lit(variable)
}

func (literal Lit) Var() Var {
	if literal < 0 {
		return Var(-literal)
	}
	return Var(literal)
}

func (literal Lit) IsPositive() bool {
	return literal > 0
}

func (literal Lit) Negation() Lit {
	return -literal
}

// Clause is a disjunction of literals. A clause with a single literal is a
// unit and forces it; a clause with no literals is a contradiction.
type Clause []Lit

// SATSolution lists every variable of a satisfiable instance with its
// assigned polarity: it contains exactly one of +v and -v per variable.
type SATSolution []Lit

// Satisfies reports whether the solution makes literal true.
func (solution SATSolution) Satisfies(literal Lit) bool {
	for _, assigned := range solution {
		if assigned == literal {
			return true
		}
	}
	return false
}

// SAT is a CNF instance. Clauses preserves insertion order so that solve
// runs can be replayed deterministically under a fixed seed.
type SAT struct {
	Variables uint64
	Clauses   []Clause
}

// AddClause appends a clause without simplification: duplicate and
// tautological clauses are tolerated, and an empty clause makes the
// instance permanently unsatisfiable.
func (s *SAT) AddClause(literals ...Lit) {
	s.Clauses = append(s.Clauses, Clause(literals))
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
