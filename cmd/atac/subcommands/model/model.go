// Package model has the subcommands inspecting and loading the server's
// metabolic model.
package model

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/atacflux/atacflux/cmd/atac/rest"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/internal/output"
)

type infoCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// Info makes the "model" subcommand.
func Info(client func() rest.Client) subcommands.Command {
	return &infoCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &infoCommand{}

func (*infoCommand) Name() string { return "model" }

func (*infoCommand) Synopsis() string { return "show the loaded model" }

func (*infoCommand) Usage() string {
	return `model:
	Show the model the server currently holds: id, reaction /
	metabolite / gene counts and the source file.
`
}

func (*infoCommand) SetFlags(*flag.FlagSet) {}

func (cmd *infoCommand) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	info, err := cmd.client().ModelInfo(ctx)
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, info); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type loadCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// Load makes the "load" subcommand.
func Load(client func() rest.Client) subcommands.Command {
	return &loadCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &loadCommand{}

func (*loadCommand) Name() string { return "load" }

func (*loadCommand) Synopsis() string { return "make the server (re)load its model" }

func (*loadCommand) Usage() string {
	return `load [PATH]:
	Load the COBRA JSON model at PATH on the server. Without PATH the
	server falls back to its configured model, then the default
	locations.
`
}

func (*loadCommand) SetFlags(*flag.FlagSet) {}

func (cmd *loadCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := ""
	if f.NArg() > 0 {
		path = f.Arg(0)
	}

	info, err := cmd.client().LoadModel(ctx, path)
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, info); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
