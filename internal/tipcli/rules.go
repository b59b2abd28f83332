package tipcli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/tipper/internal/domain/fuzzy"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the fuzzy rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			st := newStyles(out, opts.plain)
			for _, r := range fuzzy.Rules() {
				sep := " "
				if r.Connective != "" {
					sep = " " + strings.ToUpper(r.Connective) + " "
				}
				fmt.Fprintf(out, "IF %s THEN %s\n",
					strings.Join(r.Antecedents, sep), st.Label(r.Output))
			}
			return nil
		},
	}
}
