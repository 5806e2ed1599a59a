// Command board builds a one-off scoreboard snapshot from the upstream feeds.
//
// Usage:
//
//	scoreboard-board snapshot
//	scoreboard-board snapshot --now 2026-10-15T12:00:00Z
//	scoreboard-board leagues
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/scoreboard-aggregator/internal/app"
	"github.com/riskibarqy/scoreboard-aggregator/internal/config"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/riskibarqy/scoreboard-aggregator/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "scoreboard-board",
		Short:         "Scoreboard aggregation CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(snapshotCmd())
	root.AddCommand(leaguesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func snapshotCmd() *cobra.Command {
	var nowFlag string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Build the board once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if nowFlag != "" {
				parsed, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return crerr.Wrap(err, "parse --now")
				}
				now = parsed
			}

			return run(func(ctx context.Context, svc *usecase.AggregationService) error {
				return printJSON(svc.BuildBoard(ctx, now))
			})
		},
	}
	cmd.Flags().StringVar(&nowFlag, "now", "", "Reference time in RFC3339 (defaults to the current time)")
	return cmd
}

func leaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List the discovered league directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *usecase.AggregationService) error {
				return printJSON(svc.ListLeagues(ctx))
			})
		},
	}
}

func run(fn func(ctx context.Context, svc *usecase.AggregationService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return crerr.Wrap(err, "load config")
	}

	// Logs go to stderr so stdout stays valid JSON.
	logger := logging.NewJSONWriter(os.Stderr, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	err = fn(ctx, app.NewAggregationService(cfg, logger))
	logger.Info("command finished", "duration", time.Since(started).Round(time.Millisecond))
	return err
}

func printJSON(payload any) error {
	raw, err := sonic.ConfigDefault.MarshalIndent(payload, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(os.Stdout, string(raw))
	return err
}
