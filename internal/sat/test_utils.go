package sat

import "math/rand/v2"

func GenerateSATInstance(variables uint64, clauses int) *SAT {
	satInstance := &SAT{
		Variables: variables,
		Clauses:   make([]Clause, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make(Clause, 0, variables)
		for j := range variables {
			if rand.Float32() < 0.5 {
				literal := Pos(Var(1 + j))
				if rand.Float32() < 0.5 {
					literal = literal.Negation()
				}
				satInstance.Clauses[i] = append(satInstance.Clauses[i], literal)
			}
		}

		if len(satInstance.Clauses[i]) == 0 {
			literal := Pos(Var(1 + rand.Uint64N(variables)))
			if rand.Float32() < 0.5 {
				literal = literal.Negation()
			}
			satInstance.Clauses[i] = append(satInstance.Clauses[i], literal)
		}
	}

	return satInstance
}

func AssertSATSolution(satInstance *SAT, satSolution SATSolution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[Lit]bool)
	for _, literal := range satSolution {
		if literals[literal] || literals[literal.Negation()] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range satInstance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
