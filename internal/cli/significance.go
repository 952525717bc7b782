package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

// NewSignificanceCmd creates the significance command, which scores and classifies
// an environmental aspect.
func NewSignificanceCmd() *cobra.Command {
	var (
		in    significance.AssessmentInput
		scope string
		sev   string
		freq  string
	)

	cmd := &cobra.Command{
		Use:   "significance",
		Short: "Classify an environmental aspect",
		Long: `Scores an environmental aspect from its scope, severity and likelihood,
then classifies it as negligible, moderate or critical.

Critical aspects are always significant. A legal requirement, stakeholder demand
or strategic option makes a moderate aspect significant as well.`,
		Example: `  # Regional aspect with a legal requirement
  esgcalc significance --scope regional --severity high --frequency medium --legal

  # JSON output
  esgcalc significance --scope local --severity low --frequency low -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Scope = significance.Scope(scope)
			in.Severity = significance.Level(sev)
			in.FrequencyProbability = significance.Level(freq)

			eng, err := newEngine()
			if err != nil {
				return err
			}
			req := engine.Request{
				Kind:         engine.KindSignificance,
				Significance: &in,
				Baseline:     changedFloat(cmd, "baseline"),
			}
			params := map[string]string{
				"scope":       scope,
				"severity":    sev,
				"frequency":   freq,
				"legal":       strconv.FormatBool(in.HasLegalRequirement),
				"stakeholder": strconv.FormatBool(in.HasStakeholderDemand),
				"strategic":   strconv.FormatBool(in.HasStrategicOption),
			}
			return runSingle(cmd, eng, req, params)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "impact scope: local, regional or global")
	cmd.Flags().StringVar(&sev, "severity", "", "severity: low, medium or high")
	cmd.Flags().StringVar(&freq, "frequency", "", "frequency or probability: low, medium or high")
	cmd.Flags().BoolVar(&in.HasLegalRequirement, "legal", false, "a legal requirement applies")
	cmd.Flags().BoolVar(&in.HasStakeholderDemand, "stakeholder", false, "stakeholders demand action")
	cmd.Flags().BoolVar(&in.HasStrategicOption, "strategic", false, "the aspect is a strategic option")
	cmd.Flags().Float64("baseline", 0, "baseline total score to benchmark against")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("severity")
	_ = cmd.MarkFlagRequired("frequency")

	return cmd
}
