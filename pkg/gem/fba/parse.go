package fba

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atacflux/atacflux/pkg/gem"
)

// ParseSolution reads glpsol's plain text solution report.
//
// columns maps LP column order to reaction ids, as returned by WriteLP.
// Fluxes come from the "Column name / Activity" table; anything the
// report does not mention keeps a zero flux.
func ParseSolution(r io.Reader, columns []string) (*gem.Solution, error) {
	rxnOf := map[string]string{}
	for i, id := range columns {
		rxnOf[fmt.Sprintf("x%06d", i+1)] = id
	}

	sol := &gem.Solution{
		Status: gem.StatusUndefined,
		Fluxes: map[string]float64{},
	}

	inColumns := false
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.HasPrefix(line, "Status:"):
			sol.Status = statusOf(strings.TrimSpace(strings.TrimPrefix(line, "Status:")))
			continue
		case strings.HasPrefix(line, "Objective:"):
			if v, ok := objectiveOf(line); ok {
				sol.Objective = v
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[0] == "No." && fields[1] == "Column" {
			inColumns = true
			continue
		}
		if !inColumns {
			continue
		}
		if len(fields) == 0 {
			inColumns = false // blank line ends the table
			continue
		}
		if strings.HasPrefix(fields[0], "---") {
			continue
		}

		// "     1 x000001      B       0.87392   0   1000"
		if len(fields) < 4 {
			continue
		}
		rxnID, ok := rxnOf[fields[1]]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			continue
		}
		sol.Fluxes[rxnID] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read solution: %w", err)
	}

	return sol, nil
}

func statusOf(s string) gem.Status {
	u := strings.ToUpper(s)
	switch {
	case strings.Contains(u, "OPTIMAL"):
		return gem.StatusOptimal
	case strings.Contains(u, "INFEASIBLE") || strings.Contains(u, "NO PRIMAL FEASIBLE"):
		return gem.StatusInfeasible
	case strings.Contains(u, "UNBOUNDED"):
		return gem.StatusUnbounded
	default:
		return gem.StatusUndefined
	}
}

// objectiveOf picks the value out of "Objective:  obj = 0.87392 (MAXimum)".
func objectiveOf(line string) (float64, bool) {
	_, rest, found := strings.Cut(line, "=")
	if !found {
		return 0, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	return v, err == nil
}
