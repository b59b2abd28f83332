package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/tipper/internal/tipcheck"
	"github.com/okian/tipper/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumCases  = 1000
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 10 * time.Second
	defaultTolerance = 1e-9
	defaultRunLimit  = 5 * time.Minute
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Stderr.WriteString("check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cfg := &tipcheck.Config{}
	var logFormat string

	cmd := &cobra.Command{
		Use:   "tip-check",
		Short: "Check a running tip service against the local fuzzy pipeline",
		Long: `tip-check submits generated service/food pairs to a running tip service
concurrently, recomputes every tip locally with the method the service
reports, and fails if any answer differs or the service counters drift.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr(), logFormat); err != nil {
				return err
			}
			if !cfg.Verbose {
				_ = logger.SetLevelString("warn")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, defaultRunLimit)
			defer cancel()

			_, err := tipcheck.Run(ctx, cfg)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	f.IntVar(&cfg.NumCases, "cases", defaultNumCases, "number of cases to generate and submit")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "number of concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.Float64Var(&cfg.Tolerance, "tolerance", defaultTolerance, "allowed deviation between served and local tip")
	f.StringVar(&cfg.OutputFile, "output", "", "write every case and its outcome to this JSON file")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log progress and statistics")
	f.StringVar(&logFormat, "log-format", logger.FormatText, "log format: text or json")

	return cmd
}
