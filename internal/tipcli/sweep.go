package tipcli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	service "github.com/okian/tipper/internal/app"
)

// maxSweepRows bounds the table a single sweep may print.
const maxSweepRows = 10000

type sweepOptions struct {
	food float64
	from float64
	to   float64
	step float64
}

func newSweepCommand(root *rootOptions) *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Print the tip for a range of service scores at fixed food quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&opts.food, "food", 5, "Food quality held fixed, 0-10")
	f.Float64Var(&opts.from, "from", service.MinQuality, "First service score")
	f.Float64Var(&opts.to, "to", service.MaxQuality, "Last service score")
	f.Float64Var(&opts.step, "step", 1, "Service score increment")
	return cmd
}

func runSweep(cmd *cobra.Command, root *rootOptions, opts *sweepOptions) error {
	n, err := sweepRows(opts)
	if err != nil {
		return err
	}
	svc, err := newService(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := newStyles(out, root.plain)
	fmt.Fprintf(out, "%s %s\n", st.Label("service"), st.Label("tip"))

	for i := 0; i < n; i++ {
		s := opts.from + float64(i)*opts.step
		res, err := svc.Calculate(cmd.Context(), service.Request{ServiceQuality: s, FoodQuality: opts.food})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInputRejected, err)
		}
		fmt.Fprintf(out, "%7.2f %s\n", s, st.Result(fmt.Sprintf("%.2f", res.Tip)))
	}
	return nil
}

// sweepRows returns how many rows the sweep prints. Rows are indexed rather
// than accumulated so float error does not build up across the range.
func sweepRows(opts *sweepOptions) (int, error) {
	for name, v := range map[string]float64{"from": opts.from, "to": opts.to, "step": opts.step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidSweep, name, v)
		}
	}
	if opts.step <= 0 {
		return 0, fmt.Errorf("%w: step must be positive", ErrInvalidSweep)
	}
	if opts.to < opts.from {
		return 0, fmt.Errorf("%w: to (%v) is below from (%v)", ErrInvalidSweep, opts.to, opts.from)
	}
	rows := math.Floor((opts.to-opts.from)/opts.step+1e-9) + 1
	if rows > maxSweepRows {
		return 0, fmt.Errorf("%w: %g rows exceeds the limit of %d, use a larger step",
			ErrInvalidSweep, rows, maxSweepRows)
	}
	return int(rows), nil
}
