// Package thermo has the "thermo" subcommand.
package thermo

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

// New makes the "thermo" subcommand.
func New(client func() rest.Client) subcommands.Command {
	return &command{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &command{}

func (*command) Name() string { return "thermo" }

func (*command) Synopsis() string { return "show thermodynamics cache status or one reaction's entry" }

func (*command) Usage() string {
	return `thermo [REACTION_ID]:
	Without REACTION_ID, show the thermodynamics cache status. With
	REACTION_ID, show that reaction's cached dG' estimate.
`
}

func (*command) SetFlags(*flag.FlagSet) {}

func (cmd *command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var result any
	var err error
	if f.NArg() == 0 {
		result, err = cmd.client().ThermoStatus(ctx)
	} else {
		result, err = cmd.client().ThermoReaction(ctx, f.Arg(0))
	}
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
