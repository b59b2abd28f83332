// Package tipcli implements the tipcalc command line: it reads the two
// quality scores, validates them and prints the recommended tip.
package tipcli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/tipper/internal/app"
	"github.com/okian/tipper/internal/domain/fuzzy"
	"github.com/okian/tipper/pkg/logger"
)

// Version is reported by --version.
var Version = "dev"

type rootOptions struct {
	method   string
	plain    bool
	logLevel string

	serviceQuality float64
	foodQuality    float64
	explain        bool
}

// NewRootCommand builds the tipcalc command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tipcalc --service <0-10> --food <0-10>",
		Short: "Recommend a tip from service and food quality",
		Long: `tipcalc rates service and food quality on a 0-10 scale and recommends a tip
using a fixed fuzzy rule base:

  poor service OR rancid food           -> cheap tip
  good service                          -> average tip
  excellent service OR delicious food   -> generous tip

Examples:
  tipcalc --service 5 --food 5
  tipcalc --service 9 --food 3 --explain
  tipcalc --service 5 --food 5 --method legacy
  tipcalc sweep --food 5 --step 0.5`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging(cmd.ErrOrStderr(), opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.method, "method", fuzzy.MethodCentroid.String(), "Defuzzification method (centroid, legacy)")
	pf.BoolVar(&opts.plain, "plain", false, "Disable colours and borders")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.Float64Var(&opts.serviceQuality, "service", 0, "Service quality, 0-10")
	f.Float64Var(&opts.foodQuality, "food", 0, "Food quality, 0-10")
	f.BoolVar(&opts.explain, "explain", false, "Print the degree of every fuzzy set")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("food")

	cmd.AddCommand(newRulesCommand(opts), newSweepCommand(opts))
	return cmd
}

func initLogging(w io.Writer, level string) error {
	if err := logger.InitWithWriter(w, logger.FormatText); err != nil {
		return err
	}
	return logger.SetLevelString(level)
}

// newService builds the service for the selected method.
func newService(opts *rootOptions) (*service.Service, error) {
	m, err := fuzzy.ParseMethod(opts.method)
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithMethod(m),
		service.WithLogger(logger.Named("tipcalc")),
	), nil
}

func runCalculate(ctx context.Context, out io.Writer, opts *rootOptions) error {
	st := newStyles(out, opts.plain)
	svc, err := newService(opts)
	if err != nil {
		return err
	}

	res, err := svc.Calculate(ctx, service.Request{
		ServiceQuality: opts.serviceQuality,
		FoodQuality:    opts.foodQuality,
	})
	if errors.Is(err, service.ErrOutOfRange) {
		fmt.Fprintln(out, st.ErrorBox("Input Error", "Values must be between 0 and 10."))
		return fmt.Errorf("%w: %w", ErrInputRejected, err)
	}
	if err != nil {
		return err
	}

	if opts.explain {
		writeExplain(out, st, res)
	}
	fmt.Fprintf(out, "%s %s\n", st.Label("Calculated Tip:"), st.Result(fmt.Sprintf("%.2f", res.Tip)))
	return nil
}

func writeExplain(out io.Writer, st styles, res service.Result) {
	fmt.Fprintf(out, "%s poor=%.3f good=%.3f excellent=%.3f\n",
		st.Label("Service "), res.Service.Poor, res.Service.Good, res.Service.Excellent)
	fmt.Fprintf(out, "%s rancid=%.3f delicious=%.3f\n",
		st.Label("Food    "), res.Food.Rancid, res.Food.Delicious)
	fmt.Fprintf(out, "%s cheap=%.3f average=%.3f generous=%.3f\n",
		st.Label("Levels  "), res.Levels.Cheap, res.Levels.Average, res.Levels.Generous)
	fmt.Fprintf(out, "%s %s\n", st.Label("Method  "), st.Muted(res.Method))
}
