package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/auth/share"
	configs "github.com/atacflux/atacflux/pkg/configs/server"
	adb "github.com/atacflux/atacflux/pkg/db"
	"github.com/atacflux/atacflux/pkg/db/memory"
	postgres "github.com/atacflux/atacflux/pkg/db/postgres"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/gem/fba"
	"github.com/atacflux/atacflux/pkg/metrics"
	"github.com/atacflux/atacflux/pkg/thermo"
	"github.com/atacflux/atacflux/pkg/utils/echoutil"
	"github.com/atacflux/atacflux/pkg/utils/filewatch"
	"github.com/atacflux/atacflux/pkg/utils/ratelimit"

	"github.com/atacflux/atacflux/cmd/atacd/handlers"
)

// shareTokenTTL bounds how long an exported constraint set stays
// importable.
const shareTokenTTL = 30 * 24 * time.Hour

func main() {

	configPath := flag.String("config-path", "", "atacd config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf := configs.Config{}
	if *configPath != "" {
		c, err := configs.Load(*configPath)
		if err != nil {
			log.Fatalf("can not read configuration: %s", err)
		}
		conf = c

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configuration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	} else {
		c, err := configs.Unmarshal(nil)
		if err != nil {
			log.Fatalf("can not build default configuration: %s", err)
		}
		conf = c
	}

	mtr := metrics.New()
	e.Use(mtr.Middleware())
	if conf.RateLimit.RPS > 0 {
		e.Use(ratelimit.Middleware(
			ratelimit.New(conf.RateLimit.RPS, conf.RateLimit.Burst, 10*time.Minute),
		))
	}

	// constraint storage
	ctx := context.Background()
	db, err := getDBAccessor(ctx, conf.DBURI)
	if err != nil {
		log.Fatalf("can not open constraint storage: %s", err)
	}
	defer db.Close()
	constraints := db.Constraints()

	// thermo caches, reloaded when the files change
	tstore := thermo.NewStore(conf.DataDir)
	if err := tstore.Reload(); err != nil {
		log.Fatalf("can not read thermo caches: %s", err)
	}
	if err := filewatch.OnModify(ctx, func() {
		if err := tstore.Reload(); err != nil {
			e.Logger.Errorf("thermo cache reload failed: %s", err)
		} else {
			e.Logger.Info("thermo caches reloaded")
		}
	}, conf.DataDir); err != nil {
		e.Logger.Warnf("can not watch thermo caches: %s", err)
	}

	// the model registry and the LP backend
	reg := gem.NewRegistry()
	solver := fba.Solver{
		Command: conf.Solver.Command,
		Timeout: time.Duration(conf.Solver.Timeout),
	}

	onLoad := func(info apigem.ModelInfo) {
		mtr.SetModelSize(info.Reactions, info.Metabolites)
		e.Logger.Infof(
			"model %s loaded: %d reactions, %d metabolites, %d genes",
			info.ID, info.Reactions, info.Metabolites, info.Genes,
		)
	}
	if path, err := reg.Load(conf.Model); err != nil {
		e.Logger.Warnf("no model loaded yet: %s", err)
	} else {
		id, reactions, metabolites, genes, base, _ := reg.Info()
		onLoad(apigem.ModelInfo{
			ID: id, Reactions: reactions, Metabolites: metabolites, Genes: genes, Path: base,
		})
		e.Logger.Infof("model file: %s", path)
	}

	var signer *share.Signer
	if conf.ShareSecret != "" {
		s, err := share.New(conf.ShareSecret, shareTokenTTL)
		if err != nil {
			log.Fatalf("can not set up share tokens: %s", err)
		}
		signer = s
	}

	// keep the constraint gauge roughly current
	go func() {
		tick := time.NewTicker(15 * time.Second)
		defer tick.Stop()
		for range tick.C {
			if cons, err := constraints.List(ctx); err == nil {
				mtr.SetConstraints(len(cons))
			}
		}
	}()

	// handlers
	{
		e.POST("/api/model/load", handlers.LoadModelHandler(reg, conf.Model, onLoad))
		e.GET("/api/model", handlers.ModelInfoHandler(reg))
		e.GET("/api/compartments", handlers.CompartmentsHandler(reg))
	}

	{
		e.POST("/api/optimize", handlers.OptimizeHandler(
			reg, constraints, solver.Solve, mtr.CountOptimization,
		))
	}

	{
		e.GET("/api/reactions", handlers.ListReactionsHandler(reg))
		e.GET("/api/reactions/:rxnId", handlers.GetReactionHandler(reg, tstore))
		e.GET("/api/metabolites/:metId", handlers.GetMetaboliteHandler(reg, tstore))
		e.GET("/api/subsystems", handlers.SubsystemsHandler(reg))
		e.GET("/api/subsystems/:name", handlers.SubsystemReactionsHandler(reg, tstore))
	}

	{
		e.GET("/api/thermo", handlers.ThermoCacheHandler(tstore))
		e.GET("/api/thermo/status", handlers.ThermoStatusHandler(tstore))
		e.GET("/api/thermo/:rxnId", handlers.ThermoReactionHandler(tstore))
	}

	{
		e.GET("/api/constraints", handlers.ListConstraintsHandler(reg, tstore, constraints))
		e.POST("/api/constraints", handlers.AddConstraintHandler(constraints))
		e.DELETE("/api/constraints/:id", handlers.RemoveConstraintHandler(constraints))
		e.PUT("/api/constraints/:id/enabled", handlers.ToggleConstraintHandler(constraints))
		e.POST("/api/constraints/clear", handlers.ClearConstraintsHandler(constraints))
		e.POST("/api/constraints/presets/:name", handlers.ApplyPresetHandler(reg, tstore, constraints))
		e.GET("/api/constraints/export", handlers.ExportConstraintsHandler(constraints, signer))
		e.POST("/api/constraints/import", handlers.ImportConstraintsHandler(constraints, signer))
	}

	{
		e.GET("/api/search/reactions", handlers.SearchReactionsHandler(reg))
		e.GET("/api/search/metabolites", handlers.SearchMetabolitesHandler(reg))
		e.GET("/api/search/annotations", handlers.SearchAnnotationsHandler(reg, tstore))
	}

	e.GET("/metrics", mtr.Handler())

	log.Println("registered routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.Port, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.Port))
	}
}

func getDBAccessor(ctx context.Context, dburi string) (adb.Database, error) {
	if dburi == "" {
		return memory.New(), nil
	}
	return postgres.New(ctx, dburi)
}
