package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/sitemap/internal/cli"
	"github.com/alexanderramin/sitemap/internal/config"
	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/alexanderramin/sitemap/internal/logging"
	"github.com/alexanderramin/sitemap/internal/repository"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/alexanderramin/sitemap/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags are parsed up front so config and logging exist before
	// cobra sees the command line. Cobra parses them again for --help.
	flags := pflag.NewFlagSet("sitemap", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)
	config.RegisterFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	floorRepo := repository.NewSQLiteFloorRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	storeOpts := []scene.Option{scene.WithHistoryLimit(cfg.History.Limit)}
	if c := cfg.Cable.PreferredColor; c != "" && !scene.ValidColor(c) {
		logger.Warn("cable.preferred_color is not in the cable palette; cycling colours", "color", c)
	} else if c != "" {
		storeOpts = append(storeOpts, scene.WithPreferredColor(cfg.Cable.PreferredColor))
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo),
		SiteMap:  service.NewSiteMapService(floorRepo, uow, storeOpts, observer),
		Import:   service.NewImportService(uow, observer),
		Config:   cfg,
		Logger:   logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", "db", cfg.DB)
	return cli.NewRootCmd(app).Execute()
}
