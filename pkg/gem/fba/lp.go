// Package fba formulates flux balance analysis as a linear program and
// delegates solving to an external GLPK executable (glpsol).
//
// The LP is the standard FBA one: maximize the objective reaction(s)
// subject to steady state (S·v = 0) and flux bounds.
package fba

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/atacflux/atacflux/pkg/gem"
)

// bound magnitudes beyond this are written as free/one-sided.
const infinity = 1e29

// WriteLP writes model as a CPLEX-format LP and returns the reaction id
// of each LP column, in column order.
//
// Column names are generated (x000001, ...) instead of reaction ids:
// the LP format restricts name characters and length, model ids do not.
func WriteLP(w io.Writer, m *gem.Model) ([]string, error) {
	bw := bufio.NewWriter(w)

	columns := make([]string, len(m.Reactions))
	colOf := make(map[string]string, len(m.Reactions))
	for i, rxn := range m.Reactions {
		columns[i] = rxn.ID
		colOf[rxn.ID] = fmt.Sprintf("x%06d", i+1)
	}

	fmt.Fprintf(bw, "\\* FBA: %s *\\\n", m.ID)
	fmt.Fprintln(bw, "Maximize")

	obj := ""
	for _, rxn := range m.Reactions {
		if rxn.ObjectiveCoefficient == 0 {
			continue
		}
		obj += term(rxn.ObjectiveCoefficient, colOf[rxn.ID])
	}
	if obj == "" {
		// degenerate but solvable: feasibility only
		obj = " 0 " + colOf[m.Reactions[0].ID]
	}
	fmt.Fprintf(bw, " obj:%s\n", obj)

	fmt.Fprintln(bw, "Subject To")
	for i, met := range m.Metabolites {
		row := ""
		for _, rxn := range m.ReactionsOf(met.ID) {
			coef, ok := rxn.Coefficient(met.ID)
			if !ok || coef == 0 {
				continue
			}
			row += term(coef, colOf[rxn.ID])
		}
		if row == "" {
			continue // orphan metabolite constrains nothing
		}
		fmt.Fprintf(bw, " m%06d:%s = 0\n", i+1, row)
	}

	fmt.Fprintln(bw, "Bounds")
	for _, rxn := range m.Reactions {
		col := colOf[rxn.ID]
		lower, upper := rxn.LowerBound, rxn.UpperBound

		switch {
		case lower == upper:
			fmt.Fprintf(bw, " %s = %.10g\n", col, lower)
		case lower <= -infinity && upper >= infinity:
			fmt.Fprintf(bw, " %s free\n", col)
		default:
			fmt.Fprintf(bw, " %s <= %s <= %s\n", boundOf(lower, "-inf"), col, boundOf(upper, "+inf"))
		}
	}

	fmt.Fprintln(bw, "End")
	if err := bw.Flush(); err != nil {
		return nil, err
	}
	return columns, nil
}

func term(coef float64, col string) string {
	if coef < 0 {
		return fmt.Sprintf(" - %.10g %s", -coef, col)
	}
	return fmt.Sprintf(" + %.10g %s", coef, col)
}

func boundOf(v float64, inf string) string {
	if math.Abs(v) >= infinity {
		return inf
	}
	return fmt.Sprintf("%.10g", v)
}
