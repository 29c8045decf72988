package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/provost/internal/cli"
	"github.com/alexanderramin/provost/internal/config"
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/service"
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
	opts, err := loadOptions(os.Args[1:])
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	repos := service.NewSQLiteRepositories(database)
	uow := db.NewSQLiteUnitOfWork(database)

	metrics := service.NewMetricsObserver()
	var logObs service.UseCaseObserver
	if cfg.Log.Enabled {
		logObs = service.NewLogUseCaseObserver(os.Stderr, service.ParseLogLevel(cfg.Log.Level))
	}
	observer := service.NewMultiObserver(logObs, metrics)

	policies := cfg.Policies
	concurrency := cfg.Batch.Concurrency
	app := &cli.App{
		Import:      service.NewImportService(uow, observer),
		Audit:       service.NewAuditService(repos, observer),
		Standing:    service.NewStandingService(repos, uow, policies.Standing, concurrency, observer),
		Sap:         service.NewSapService(repos, uow, policies.Sap, concurrency, observer),
		Graduation:  service.NewGraduationService(repos, uow, policies.Graduation, policies.Honors, concurrency, observer),
		History:     service.NewHistoryService(repos),
		Metrics:     metrics,
		MetricsFile: cfg.Metrics.File,
		IsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./provost.yaml or ~/.provost/provost.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "Env file loaded before PROVOST_* variables (default ./.env)")
	return rootCmd.ExecuteContext(ctx)
}

// loadOptions picks --config and --env-file out of the command line ahead
// of cobra, since the services cobra dispatches to are built from the
// loaded config.
func loadOptions(args []string) (config.LoadOptions, error) {
	fs := pflag.NewFlagSet("provost", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	configFile := fs.String("config", "", "")
	envFile := fs.String("env-file", "", "")
	fs.BoolP("help", "h", false, "")
	if err := fs.Parse(args); err != nil {
		return config.LoadOptions{}, fmt.Errorf("parsing flags: %w", err)
	}
	return config.LoadOptions{ConfigFile: *configFile, EnvFile: *envFile}, nil
}
