package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newDaemonCmd(app *App) *cobra.Command {
	var cronSpec, timezone string
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the generator on a cron schedule until interrupted",
		Long: `Keeps the process alive and triggers a full generation run on the
configured cron schedule. Each run uses the calendar date at trigger time as
its reference date, so a daemon crossing midnight picks up the new day's
occurrences on the next trigger.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cronSpec == "" {
				cronSpec = app.DaemonCron
			}
			if timezone == "" {
				timezone = app.DaemonTimezone
			}

			loc := time.Local
			if timezone != "" {
				var err error
				if loc, err = time.LoadLocation(timezone); err != nil {
					return fmt.Errorf("invalid timezone %q: %w", timezone, err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			trigger := func() {
				now := app.now().In(loc)
				today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
				report, err := app.Generation.RunAll(ctx, today)
				if err != nil {
					slog.Error("scheduled generation run failed", slog.String("error", err.Error()))
					return
				}
				slog.Info("scheduled generation run finished",
					slog.String("date", today.Format(dateLayout)),
					slog.Int("created", report.ItemsCreated),
					slog.Int("errors", report.Errors),
				)
			}

			c := cron.New(cron.WithLocation(loc))
			if _, err := c.AddFunc(cronSpec, trigger); err != nil {
				return fmt.Errorf("invalid cron expression %q: %w", cronSpec, err)
			}

			if runOnStart {
				trigger()
			}

			slog.Info("daemon started",
				slog.String("cron", cronSpec),
				slog.String("timezone", loc.String()),
			)
			c.Start()
			<-ctx.Done()

			slog.Info("daemon stopping")
			stopCtx := c.Stop()
			<-stopCtx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron", "", "Cron expression for generation runs (default from config)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for the cron schedule (default from config)")
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "Trigger one generation run immediately on startup")
	return cmd
}
