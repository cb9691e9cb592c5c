package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcrawford/wildtrails/app"
	"github.com/mcrawford/wildtrails/auth"
	"github.com/mcrawford/wildtrails/config"
	"github.com/mcrawford/wildtrails/core/model"
	"github.com/mcrawford/wildtrails/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "wildtrails",
	Short: "Report Yosemite wilderness permit availability",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(cfg.Logging.Level)

	session, err := auth.Load(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	start, ok, err := cfg.Window.StartDate()
	if err != nil {
		return err
	}
	if !ok {
		start = parkToday()
	}

	svc, err := app.New(cfg, session)
	if err != nil {
		return err
	}
	return svc.Run(ctx, start)
}

// parkToday returns today's calendar date in park-local time. The walk-up
// window rolls over at midnight Pacific, not UTC.
func parkToday() time.Time {
	now := time.Now()
	if loc, err := time.LoadLocation("America/Los_Angeles"); err == nil {
		now = now.In(loc)
	}
	return model.Date(now.Year(), now.Month(), now.Day())
}
