package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	subc "github.com/google/subcommands"

	"github.com/atacflux/atacflux/cmd/atac/rest"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/constraint"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/model"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/optimize"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/pathway"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/search"
	"github.com/atacflux/atacflux/cmd/atac/subcommands/thermo"
)

const defaultAPIRoot = "http://localhost:8080/api"

func main() {
	apiDefault := os.Getenv("ATAC_SERVER")
	if apiDefault == "" {
		apiDefault = defaultAPIRoot
	}
	apiRoot := flag.String("api", apiDefault, "root URL of the atacd API (env: ATAC_SERVER)")

	client := func() rest.Client { return rest.NewClient(*apiRoot) }

	subc.Register(subc.HelpCommand(), "")
	subc.Register(subc.FlagsCommand(), "")
	subc.Register(subc.CommandsCommand(), "")
	subc.Register(model.Info(client), "model")
	subc.Register(model.Load(client), "model")
	subc.Register(pathway.Compartments(client), "model")
	subc.Register(optimize.New(client), "analysis")
	subc.Register(pathway.Reactions(client), "pathway")
	subc.Register(pathway.Reaction(client), "pathway")
	subc.Register(pathway.Metabolite(client), "pathway")
	subc.Register(pathway.Subsystems(client), "pathway")
	subc.Register(thermo.New(client), "analysis")
	subc.Register(search.New(client), "pathway")
	subc.Register(constraint.New(client), "analysis")

	flag.Parse()

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	os.Exit(int(subc.Execute(ctx)))
}
