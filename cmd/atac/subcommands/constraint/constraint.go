// Package constraint has the "constraint" subcommand, which manages
// the server's stored flux constraints.
package constraint

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/atacflux/atacflux/cmd/atac/rest"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/internal/output"
	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
)

type command struct {
	client func() rest.Client
	w      io.Writer
	errw   io.Writer
}

// New makes the "constraint" subcommand.
func New(client func() rest.Client) subcommands.Command {
	return &command{client: client, w: os.Stdout, errw: os.Stderr}
}

var _ subcommands.Command = &command{}

func (*command) Name() string { return "constraint" }

func (*command) Synopsis() string { return "manage flux constraints" }

func (*command) Usage() string {
	return `constraint VERB [...]:
	Manage the constraints applied to FBA runs. Verbs:

	  list
	  add -type reaction|exchange -target ID -bounds LOWER,UPPER [-id ID] [-label TEXT]
	  rm CONSTRAINT_ID
	  toggle [-enabled true|false] CONSTRAINT_ID
	  clear
	  preset PRESET_NAME
	  export
	  import TOKEN
`
}

func (*command) SetFlags(*flag.FlagSet) {}

func (cmd *command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(cmd.errw, "constraint: a verb is required (list, add, rm, toggle, clear, preset, export, import)")
		return subcommands.ExitUsageError
	}

	verb, args := f.Arg(0), f.Args()[1:]
	switch verb {
	case "list":
		return cmd.print(cmd.client().ListConstraints(ctx))
	case "add":
		return cmd.add(ctx, args)
	case "rm":
		if len(args) != 1 {
			fmt.Fprintln(cmd.errw, "constraint rm: CONSTRAINT_ID is required")
			return subcommands.ExitUsageError
		}
		return cmd.print(cmd.client().RemoveConstraint(ctx, args[0]))
	case "toggle":
		return cmd.toggle(ctx, args)
	case "clear":
		return cmd.print(cmd.client().ClearConstraints(ctx))
	case "preset":
		if len(args) != 1 {
			fmt.Fprintln(cmd.errw, "constraint preset: PRESET_NAME is required")
			return subcommands.ExitUsageError
		}
		return cmd.print(cmd.client().ApplyPreset(ctx, args[0]))
	case "export":
		return cmd.print(cmd.client().ExportConstraints(ctx))
	case "import":
		if len(args) != 1 {
			fmt.Fprintln(cmd.errw, "constraint import: TOKEN is required")
			return subcommands.ExitUsageError
		}
		return cmd.print(cmd.client().ImportConstraints(ctx, args[0]))
	default:
		fmt.Fprintf(cmd.errw, "constraint: unknown verb %s\n", verb)
		return subcommands.ExitUsageError
	}
}

func (cmd *command) add(ctx context.Context, args []string) subcommands.ExitStatus {
	flags := flag.NewFlagSet("constraint add", flag.ContinueOnError)
	flags.SetOutput(cmd.errw)
	id := flags.String("id", "", "constraint id (generated when empty)")
	ctype := flags.String("type", apiconstraints.TypeReaction, "constraint type: reaction or exchange")
	target := flags.String("target", "", "reaction or metabolite id")
	bounds := flags.String("bounds", "", "flux bounds: LOWER,UPPER or a single fixed value")
	label := flags.String("label", "", "display label (defaults to the target)")
	if err := flags.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}

	span, err := parseBounds(*bounds)
	if err != nil {
		fmt.Fprintf(cmd.errw, "constraint add: %s\n", err)
		return subcommands.ExitUsageError
	}

	return cmd.print(cmd.client().AddConstraint(ctx, apiconstraints.AddRequest{
		ID:     *id,
		Type:   *ctype,
		Target: *target,
		Bounds: &span,
		Label:  *label,
	}))
}

func (cmd *command) toggle(ctx context.Context, args []string) subcommands.ExitStatus {
	flags := flag.NewFlagSet("constraint toggle", flag.ContinueOnError)
	flags.SetOutput(cmd.errw)
	enabled := flags.String("enabled", "", "set the state instead of flipping it: true or false")
	if err := flags.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(cmd.errw, "constraint toggle: CONSTRAINT_ID is required")
		return subcommands.ExitUsageError
	}

	var state *bool
	if *enabled != "" {
		v, err := strconv.ParseBool(*enabled)
		if err != nil {
			fmt.Fprintf(cmd.errw, "constraint toggle: -enabled should be true or false, got %s\n", *enabled)
			return subcommands.ExitUsageError
		}
		state = &v
	}

	return cmd.print(cmd.client().ToggleConstraint(ctx, flags.Arg(0), state))
}

func (cmd *command) print(result any, err error) subcommands.ExitStatus {
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

func parseBounds(expr string) (apiconstraints.Span, error) {
	if expr == "" {
		return apiconstraints.Span{}, fmt.Errorf("-bounds is required")
	}

	parts := strings.Split(expr, ",")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return apiconstraints.Span{}, fmt.Errorf("can not parse bounds %s: %w", expr, err)
		}
		return apiconstraints.Fixed(v), nil
	case 2:
		lower, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return apiconstraints.Span{}, fmt.Errorf("can not parse bounds %s: %w", expr, err)
		}
		upper, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return apiconstraints.Span{}, fmt.Errorf("can not parse bounds %s: %w", expr, err)
		}
		if lower > upper {
			return apiconstraints.Span{}, fmt.Errorf("lower bound %v exceeds upper bound %v", lower, upper)
		}
		return apiconstraints.Between(lower, upper), nil
	default:
		return apiconstraints.Span{}, fmt.Errorf("bounds should be LOWER,UPPER or a single value, got %s", expr)
	}
}
