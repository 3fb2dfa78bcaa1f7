package sat

type SATSolver interface {
	Solve(instance *SAT, assumptions ...Lit) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable under the assumptions, else returns nil (these are valid outputs where error shall be nil)
}
