// Package pathway has the subcommands browsing the model: reaction
// listing and detail, metabolite context, subsystems and compartments.
package pathway

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

type reactionsCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer

	query   string
	limit   int
	offset  int
	nonzero bool
}

// Reactions makes the "reactions" subcommand.
func Reactions(client func() rest.Client) subcommands.Command {
	return &reactionsCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &reactionsCommand{}

func (*reactionsCommand) Name() string { return "reactions" }

func (*reactionsCommand) Synopsis() string { return "list the model's reactions" }

func (*reactionsCommand) Usage() string {
	return `reactions [-q QUERY] [-limit N] [-offset N] [-nonzero]:
	List reactions, optionally filtered by a text query against id,
	name and gene rule. -nonzero keeps only reactions carrying flux in
	the last FBA solution.
`
}

func (cmd *reactionsCommand) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.query, "q", "", "filter by id, name or gene rule")
	f.IntVar(&cmd.limit, "limit", 50, "page size")
	f.IntVar(&cmd.offset, "offset", 0, "page offset")
	f.BoolVar(&cmd.nonzero, "nonzero", false, "only reactions with nonzero flux")
}

func (cmd *reactionsCommand) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	page, err := cmd.client().ListReactions(ctx, rest.ReactionQuery{
		Query:       cmd.query,
		Limit:       cmd.limit,
		Offset:      cmd.offset,
		NonzeroFlux: cmd.nonzero,
	})
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, page); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type reactionCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// Reaction makes the "reaction" subcommand.
func Reaction(client func() rest.Client) subcommands.Command {
	return &reactionCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &reactionCommand{}

func (*reactionCommand) Name() string { return "reaction" }

func (*reactionCommand) Synopsis() string { return "show one reaction" }

func (*reactionCommand) Usage() string {
	return `reaction REACTION_ID:
	Show one reaction: equation, bounds, genes, participants with
	compound data, thermodynamics and the last flux.
`
}

func (*reactionCommand) SetFlags(*flag.FlagSet) {}

func (cmd *reactionCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(cmd.errw, "reaction: REACTION_ID is required")
		return subcommands.ExitUsageError
	}

	detail, err := cmd.client().GetReaction(ctx, f.Arg(0))
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, detail); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type metaboliteCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// Metabolite makes the "metabolite" subcommand.
func Metabolite(client func() rest.Client) subcommands.Command {
	return &metaboliteCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &metaboliteCommand{}

func (*metaboliteCommand) Name() string { return "metabolite" }

func (*metaboliteCommand) Synopsis() string { return "show one metabolite" }

func (*metaboliteCommand) Usage() string {
	return `metabolite METABOLITE_ID:
	Show one metabolite with the reactions producing and consuming it.
`
}

func (*metaboliteCommand) SetFlags(*flag.FlagSet) {}

func (cmd *metaboliteCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(cmd.errw, "metabolite: METABOLITE_ID is required")
		return subcommands.ExitUsageError
	}

	detail, err := cmd.client().GetMetabolite(ctx, f.Arg(0))
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, detail); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type subsystemsCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// Subsystems makes the "subsystems" subcommand.
func Subsystems(client func() rest.Client) subcommands.Command {
	return &subsystemsCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &subsystemsCommand{}

func (*subsystemsCommand) Name() string { return "subsystems" }

func (*subsystemsCommand) Synopsis() string { return "list subsystems, or one subsystem's reactions" }

func (*subsystemsCommand) Usage() string {
	return `subsystems [NAME]:
	Without NAME, list every subsystem with its reaction ids. With
	NAME, show that subsystem's reactions with thermodynamics and flux.
`
}

func (*subsystemsCommand) SetFlags(*flag.FlagSet) {}

func (cmd *subsystemsCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var result any
	var err error
	if f.NArg() == 0 {
		result, err = cmd.client().Subsystems(ctx)
	} else {
		result, err = cmd.client().SubsystemReactions(ctx, f.Arg(0))
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

type compartmentsCommand struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// Compartments makes the "compartments" subcommand.
func Compartments(client func() rest.Client) subcommands.Command {
	return &compartmentsCommand{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &compartmentsCommand{}

func (*compartmentsCommand) Name() string { return "compartments" }

func (*compartmentsCommand) Synopsis() string { return "list the model's compartments" }

func (*compartmentsCommand) Usage() string {
	return `compartments:
	List compartments with metabolite counts and badge colors.
`
}

func (*compartmentsCommand) SetFlags(*flag.FlagSet) {}

func (cmd *compartmentsCommand) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := cmd.client().Compartments(ctx)
	if err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	if err := output.PrintJSON(cmd.w, list); err != nil {
		output.PrintError(cmd.errw, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
