package sat

import (
	"fmt"
	"log"
	"math/rand/v2"
)

type dpllSolver struct {
	rng *rand.Rand
}

// NewDPLLSolver returns a solver implementing the classic DPLL procedure:
// unit propagation to fixpoint, uniformly random branching and chronological
// backtracking with polarity flip. A nil rng falls back to an unseeded
// source; supply a seeded one to replay solve runs. The returned solver is
// not safe for concurrent use since calls share the random source.
func NewDPLLSolver(rng *rand.Rand) SATSolver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &dpllSolver{rng: rng}
}

func (solver *dpllSolver) Solve(instance *SAT, assumptions ...Lit) (SATSolution, error) {
	if err := validateInstance(instance, assumptions); err != nil {
		return nil, err
	}

	// An empty clause contradicts every assignment: skip the search entirely
	for _, clause := range instance.Clauses {
		if len(clause) == 0 {
			return nil, nil
		}
	}

	s := newSearch(instance)

	// Assumptions are forced before any decision is made, hence a conflict
	// involving them surfaces at level 0 and yields unsatisfiable
	for _, assumption := range assumptions {
		switch s.value(assumption) {
		case valueFalse:
			return nil, nil
		case valueUnassigned:
			s.assign(assumption, causeAssumed)
		}
	}

	// Unit clauses present in the original instance fire immediately
	for clauseIndex := range instance.Clauses {
		if s.examine(clauseIndex) {
			return nil, nil
		}
	}

	for {
		if s.propagate() {
			if !s.backtrack() {
				return nil, nil
			}
			continue
		}

		if s.unassigned == 0 {
			return s.solution(), nil
		}

		s.decide(solver.rng)
	}
}

func validateInstance(instance *SAT, assumptions []Lit) error {
	for _, clause := range instance.Clauses {
		for _, literal := range clause {
			if err := checkLiteral(instance, literal); err != nil {
				return err
			}
		}
	}
	for _, assumption := range assumptions {
		if err := checkLiteral(instance, assumption); err != nil {
			return err
		}
	}
	return nil
}

func checkLiteral(instance *SAT, literal Lit) error {
	if literal == 0 {
		return fmt.Errorf("literal cannot be zero")
	} else if uint64(literal.Var()) > instance.Variables {
		return fmt.Errorf("literal %v is out of range for an instance with %v variables", literal, instance.Variables)
	}
	return nil
}

const (
	valueFalse      int8 = -1
	valueUnassigned int8 = 0
	valueTrue       int8 = 1
)

type trailCause uint8

const (
	causeDecision trailCause = iota // free branching choice, polarity may still be flipped
	causeFlipped                    // re-asserted negation of an exhausted decision
	causePropagated
	causeAssumed
)

type trailEntry struct {
	literal Lit
	cause   trailCause
}

// search is the mutable state of a single solve call. The trail records
// assignments in order; levels holds the trail index where each decision
// level starts, making "undo to level" a truncation.
type search struct {
	instance   *SAT
	assignment []int8 // indexed by variable, entry 0 unused
	occurrence [][]int
	trail      []trailEntry
	levels     []int
	queue      []Lit
	unassigned int
}

func newSearch(instance *SAT) *search {
	s := &search{
		instance:   instance,
		assignment: make([]int8, instance.Variables+1),
		occurrence: make([][]int, instance.Variables+1),
		unassigned: int(instance.Variables),
	}
	for clauseIndex, clause := range instance.Clauses {
		for _, literal := range clause {
			variable := literal.Var()
			s.occurrence[variable] = append(s.occurrence[variable], clauseIndex)
		}
	}
	return s
}

func (s *search) value(literal Lit) int8 {
	value := s.assignment[literal.Var()]
	if literal < 0 {
		return -value
	}
	return value
}

func (s *search) assign(literal Lit, cause trailCause) {
	if literal.IsPositive() {
		s.assignment[literal.Var()] = valueTrue
	} else {
		s.assignment[literal.Var()] = valueFalse
	}
	s.trail = append(s.trail, trailEntry{literal: literal, cause: cause})
	s.unassigned--
	s.queue = append(s.queue, literal)
}

// examine inspects a single clause under the current assignment, forcing its
// sole unassigned literal when the clause is unit. It reports whether the
// clause is conflicting.
func (s *search) examine(clauseIndex int) bool {
	clause := s.instance.Clauses[clauseIndex]
	unassigned := 0
	var forced Lit
	for _, literal := range clause {
		switch s.value(literal) {
		case valueTrue:
			return false
		case valueUnassigned:
			unassigned++
			forced = literal
		}
	}

	if unassigned == 0 {
		return true
	} else if unassigned == 1 {
		s.assign(forced, causePropagated)
	}
	return false
}

// propagate runs unit propagation to fixpoint, draining the queue of freshly
// assigned literals and examining every clause mentioning their variables.
// It reports whether a conflict was derived.
func (s *search) propagate() bool {
	for len(s.queue) > 0 {
		last := len(s.queue) - 1
		literal := s.queue[last]
		s.queue = s.queue[:last]

		for _, clauseIndex := range s.occurrence[literal.Var()] {
			if s.examine(clauseIndex) {
				return true
			}
		}
	}
	return false
}

// decide assigns a uniformly random unassigned variable with a uniformly
// random polarity at a fresh decision level.
func (s *search) decide(rng *rand.Rand) {
	target := rng.IntN(s.unassigned)
	for variable := Var(1); variable <= Var(s.instance.Variables); variable++ {
		if s.assignment[variable] != valueUnassigned {
			continue
		}
		if target > 0 {
			target--
			continue
		}

		literal := Pos(variable)
		if rng.IntN(2) == 1 {
			literal = Neg(variable)
		}
		s.levels = append(s.levels, len(s.trail))
		s.assign(literal, causeDecision)
		return
	}
	log.Panicf("no unassigned variable found among %v pending", s.unassigned)
}

// backtrack resolves a conflict chronologically: undo the most recent
// decision level, re-assert the negation of its decision as forced at the
// same level, and resume. Levels whose decision was already flipped are
// exhausted and discarded. It reports false once no level remains, meaning
// the instance is unsatisfiable.
func (s *search) backtrack() bool {
	s.queue = s.queue[:0]

	for len(s.levels) > 0 {
		anchor := len(s.levels) - 1
		start := s.levels[anchor]
		flipped := s.trail[start].literal.Negation()
		exhausted := s.trail[start].cause != causeDecision

		s.undoTo(start)
		s.levels = s.levels[:anchor]

		if exhausted {
			continue
		}

		s.levels = append(s.levels, len(s.trail))
		s.assign(flipped, causeFlipped)
		return true
	}
	return false
}

// undoTo removes every trail entry at or after index, in reverse order.
func (s *search) undoTo(index int) {
	for i := len(s.trail) - 1; i >= index; i-- {
		s.assignment[s.trail[i].literal.Var()] = valueUnassigned
		s.unassigned++
	}
	s.trail = s.trail[:index]
}

func (s *search) solution() SATSolution {
	solution := make(SATSolution, 0, s.instance.Variables)
	for variable := Var(1); variable <= Var(s.instance.Variables); variable++ {
		if s.assignment[variable] == valueTrue {
			solution = append(solution, Pos(variable))
		} else {
			solution = append(solution, Neg(variable))
		}
	}
	return solution
}
