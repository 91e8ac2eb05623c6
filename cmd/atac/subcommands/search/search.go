// Package search has the "search" subcommand.
package search

import (
	"context"
	"flag"
	"fmt"
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

	target      string
	compartment string
	limit       int
}

// New makes the "search" subcommand.
func New(client func() rest.Client) subcommands.Command {
	return &command{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &command{}

func (*command) Name() string { return "search" }

func (*command) Synopsis() string { return "search reactions, metabolites or annotations" }

func (*command) Usage() string {
	return `search [-target reactions|metabolites|annotations] [-compartment ID] [-limit N] QUERY:
	Search the model. -target reactions and metabolites match ids and
	names; annotations resolves database identifiers (KEGG, ChEBI,
	MetaNetX, BiGG) to metabolites and exchange reactions.
`
}

func (cmd *command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.target, "target", "reactions", "what to search: reactions, metabolites or annotations")
	f.StringVar(&cmd.compartment, "compartment", "", "restrict metabolite hits to one compartment")
	f.IntVar(&cmd.limit, "limit", 0, "cap on hits (server default when 0)")
}

func (cmd *command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(cmd.errw, "search: QUERY is required")
		return subcommands.ExitUsageError
	}
	query := f.Arg(0)

	var result any
	var err error
	switch cmd.target {
	case "reactions":
		result, err = cmd.client().SearchReactions(ctx, rest.SearchQuery{
			Query: query, Compartment: cmd.compartment, Limit: cmd.limit,
		})
	case "metabolites":
		result, err = cmd.client().SearchMetabolites(ctx, rest.SearchQuery{
			Query: query, Compartment: cmd.compartment, Limit: cmd.limit,
		})
	case "annotations":
		result, err = cmd.client().SearchAnnotations(ctx, query)
	default:
		fmt.Fprintf(cmd.errw, "search: unknown target %s\n", cmd.target)
		return subcommands.ExitUsageError
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
