// Package optimize has the subcommand running FBA on the server.
package optimize

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/atacflux/atacflux/cmd/atac/rest"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/internal/output"
)

type command struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// New makes the "optimize" subcommand.
func New(client func() rest.Client) subcommands.Command {
	return &command{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &command{}

func (*command) Name() string { return "optimize" }

func (*command) Synopsis() string { return "run flux balance analysis" }

func (*command) Usage() string {
	return `optimize:
	Run FBA on the server: bounds are reset, the enabled constraints
	are applied and the LP is solved. Prints the solver status, the
	objective value and the per-constraint application report.
`
}

func (*command) SetFlags(*flag.FlagSet) {}

func (cmd *command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := cmd.client().Optimize(ctx)
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, result); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
