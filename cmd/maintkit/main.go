package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/andrelbraga/maintkit/internal/cli"
	"github.com/andrelbraga/maintkit/internal/cli/formatter"
	"github.com/andrelbraga/maintkit/internal/config"
	"github.com/andrelbraga/maintkit/internal/db"
	"github.com/andrelbraga/maintkit/internal/repository"
	"github.com/andrelbraga/maintkit/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColors()
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	planRepo := repository.NewSQLitePlanRepo(database)
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Plans:          service.NewPlanService(planRepo, itemRepo, logger),
		Generation:     service.NewGenerationService(planRepo, itemRepo, uow, logger, cfg.HorizonDays, cfg.IterationCap),
		Backlog:        service.NewBacklogService(planRepo, itemRepo, logger, cfg.IterationCap),
		Import:         service.NewImportService(uow, logger),
		DaemonCron:     cfg.Daemon.Cron,
		DaemonTimezone: cfg.Daemon.Timezone,
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger builds the process logger. Levels below the configured one are
// dropped; output goes to stderr so command output stays pipeable.
func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}
