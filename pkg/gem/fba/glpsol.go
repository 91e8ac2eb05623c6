package fba

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/atacflux/atacflux/pkg/gem"
)

// Solver runs FBA problems through the glpsol command line solver.
type Solver struct {
	// Command is the solver executable. Defaults to "glpsol".
	Command string

	// Timeout bounds a single solver run. Zero means no limit.
	Timeout time.Duration
}

// ErrNoObjective is returned when the model has no reactions at all,
// so there is nothing to formulate.
var ErrNoObjective = errors.New("model has no reactions")

// Solve optimizes model and returns the parsed solution.
//
// The LP and the solver output go through a temporary directory which
// is removed before returning. Non-optimal outcomes (infeasible,
// unbounded) are not errors: they come back in Solution.Status.
func (s Solver) Solve(ctx context.Context, m *gem.Model) (*gem.Solution, error) {
	if len(m.Reactions) == 0 {
		return nil, ErrNoObjective
	}

	command := s.Command
	if command == "" {
		command = "glpsol"
	}

	dir, err := os.MkdirTemp("", "atacflux-fba-")
	if err != nil {
		return nil, fmt.Errorf("fba workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	lpPath := filepath.Join(dir, "problem.lp")
	outPath := filepath.Join(dir, "solution.txt")

	f, err := os.Create(lpPath)
	if err != nil {
		return nil, fmt.Errorf("fba workspace: %w", err)
	}
	columns, err := WriteLP(f, m)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("write lp: %w", err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, "--lp", lpPath, "--output", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, fmt.Errorf("%s: %w", command, cerr)
		}
		return nil, fmt.Errorf("%s: %w: %s", command, err, string(out))
	}

	of, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("%s wrote no solution: %w", command, err)
	}
	defer of.Close()

	return ParseSolution(of, columns)
}
