package fba_test

import (
	"strings"
	"testing"

	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/gem/fba"
	"github.com/atacflux/atacflux/pkg/utils/try"
)

const optimalReport = `Problem:    toy
Rows:       4
Columns:    4
Non-zeros:  7
Status:     OPTIMAL
Objective:  obj = 2 (MAXimum)

   No.   Row name   St   Activity     Lower bound   Upper bound    Marginal
------ ------------ -- ------------- ------------- ------------- -------------
     1 m000001      NS             0             0             =             1

   No. Column name  St   Activity     Lower bound   Upper bound    Marginal
------ ------------ -- ------------- ------------- ------------- -------------
     1 x000001      B            -1           -10          1000
     2 x000002      B             1         -1000          1000
     3 x000003      B             1             0          1000
     4 x000004      NS            2             1             1       < eps

Karush-Kuhn-Tucker optimality conditions:
...

End of output
`

func TestParseSolution(t *testing.T) {
	columns := []string{"EX_glc", "GLCt", "GLK", "ATPM"}

	sol := try.To(fba.ParseSolution(strings.NewReader(optimalReport), columns)).OrFatal(t)

	if sol.Status != gem.StatusOptimal {
		t.Errorf("status: got %s, want %s", sol.Status, gem.StatusOptimal)
	}
	if sol.Objective != 2 {
		t.Errorf("objective: got %g, want 2", sol.Objective)
	}

	want := map[string]float64{
		"EX_glc": -1, "GLCt": 1, "GLK": 1, "ATPM": 2,
	}
	for rxnID, flux := range want {
		got, ok := sol.Flux(rxnID)
		if !ok {
			t.Errorf("flux of %s: missing", rxnID)
			continue
		}
		if got != flux {
			t.Errorf("flux of %s: got %g, want %g", rxnID, got, flux)
		}
	}
}

func TestParseSolution_NonOptimalStatuses(t *testing.T) {
	for status, want := range map[string]gem.Status{
		"INFEASIBLE (FINAL)":             gem.StatusInfeasible,
		"PROBLEM HAS NO PRIMAL FEASIBLE": gem.StatusInfeasible,
		"UNBOUNDED":                      gem.StatusUnbounded,
		"UNDEFINED":                      gem.StatusUndefined,
	} {
		t.Run(status, func(t *testing.T) {
			report := "Status:     " + status + "\n"
			sol := try.To(fba.ParseSolution(strings.NewReader(report), nil)).OrFatal(t)
			if sol.Status != want {
				t.Errorf("got %s, want %s", sol.Status, want)
			}
		})
	}
}

func TestParseSolution_IgnoresRowTable(t *testing.T) {
	// row names overlap column naming in no way; a report with only a
	// row table yields no fluxes.
	report := `Status:     OPTIMAL
Objective:  obj = 0 (MAXimum)

   No.   Row name   St   Activity     Lower bound   Upper bound    Marginal
------ ------------ -- ------------- ------------- ------------- -------------
     1 m000001      NS             0             0             =             1
`
	sol := try.To(fba.ParseSolution(strings.NewReader(report), []string{"R1"})).OrFatal(t)
	if len(sol.Fluxes) != 0 {
		t.Errorf("unexpected fluxes: %v", sol.Fluxes)
	}
}
