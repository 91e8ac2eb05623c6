package gem

// Status is the solver outcome, normalized from the LP backend.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusUndefined  Status = "undefined"
)

// ZeroFluxTolerance: fluxes within it are treated as zero for the
// nonzero-flux filter.
const ZeroFluxTolerance = 1e-6

// Solution is an FBA result: one flux per reaction at the optimum.
type Solution struct {
	Status    Status
	Objective float64
	Fluxes    map[string]float64
}

// Flux returns the flux of reaction rxnID, and whether the solution
// knows the reaction at all.
func (s *Solution) Flux(rxnID string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.Fluxes[rxnID]
	return v, ok
}
