package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/portfolio/internal/cli"
	"github.com/alexanderramin/portfolio/internal/config"
	"github.com/alexanderramin/portfolio/internal/db"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/logging"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.FromConfig(cfg.Log), os.Stderr)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer logCloser.Close()

	database, err := db.Open(cfg.DB.Path, db.Options{BusyTimeout: cfg.DB.BusyTimeout})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	initiativeRepo := repository.NewSQLiteInitiativeRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	normalizer := importer.New(cfg.Plan.MaxIndent)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Initiatives:       service.NewInitiativeService(initiativeRepo, observer),
		Plans:             service.NewPlanService(initiativeRepo, planRepo, normalizer, logger, observer),
		Workload:          service.NewWorkloadService(initiativeRepo, planRepo, normalizer, observer),
		Actuals:           service.NewActualsService(initiativeRepo, planRepo, uow, normalizer, observer),
		Normalizer:        normalizer,
		DefaultUnit:       cfg.Load.Unit,
		OverloadThreshold: cfg.Load.OverloadThreshold,
	}

	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
