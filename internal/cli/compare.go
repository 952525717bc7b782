package cli

import (
	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	var (
		in             engine.CompareInput
		higherIsBetter bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a metric against its baseline",
		Long: `Reports the change of a metric against a baseline, its direction and whether
it is an improvement. Metrics are treated as lower-is-better unless
--higher-is-better is given. Changes within 0.01% are reported as unchanged.`,
		Example: `  # This year's LTIFR against last year's
  esgcalc compare --current 3.2 --baseline 4.1

  # Training completion rate
  esgcalc compare --current 92 --baseline 85 --higher-is-better`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.LowerIsBetter = !higherIsBetter

			eng, err := newEngine()
			if err != nil {
				return err
			}
			req := engine.Request{Kind: engine.KindCompare, Compare: &in}
			params := map[string]string{
				"current":  formatOptionalFloat(&in.Current),
				"baseline": formatOptionalFloat(&in.Baseline),
			}
			return runSingle(cmd, eng, req, params)
		},
	}

	cmd.Flags().Float64Var(&in.Current, "current", 0, "current value")
	cmd.Flags().Float64Var(&in.Baseline, "baseline", 0, "baseline value")
	cmd.Flags().BoolVar(&higherIsBetter, "higher-is-better", false, "treat increases as improvements")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("baseline")

	return cmd
}
