package cli

import (
	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
)

// co2eParams holds the flags of the co2e command.
type co2eParams struct {
	factor          string
	co2             float64
	ch4             float64
	n2o             float64
	directGWP       float64
	directGWPSource string
	gwpTable        string
}

// NewCO2eCmd creates the co2e command, which converts an emission factor profile
// to kg CO2e per unit of activity.
func NewCO2eCmd() *cobra.Command {
	var p co2eParams

	cmd := &cobra.Command{
		Use:   "co2e",
		Short: "Convert emission factors to CO2 equivalent",
		Long: `Converts an emission factor profile to kg CO2e per unit of activity.

The profile is either a registered factor (--factor) or given inline with the
per-gas flags. A direct GWP value (--direct-gwp) takes precedence over per-gas
factors and is reported without consulting a GWP table.`,
		Example: `  # Registered factor, default GWP table
  esgcalc co2e --factor diesel_l --quantity 100

  # Inline per-gas factors against AR5
  esgcalc co2e --co2 2.5 --ch4 0.001 --n2o 0.0001 --gwp-table ar5

  # Refrigerant reported directly in CO2e per kg
  esgcalc co2e --direct-gwp 2256 --direct-gwp-source "IPCC AR6" --quantity 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCO2e(cmd, p)
		},
	}

	cmd.Flags().StringVar(&p.factor, "factor", "", "registered emission factor name (see 'esgcalc factors list')")
	cmd.Flags().Float64Var(&p.co2, "co2", 0, "CO2 factor per unit")
	cmd.Flags().Float64Var(&p.ch4, "ch4", 0, "CH4 factor per unit")
	cmd.Flags().Float64Var(&p.n2o, "n2o", 0, "N2O factor per unit")
	cmd.Flags().Float64Var(&p.directGWP, "direct-gwp", 0, "CO2e per unit reported directly")
	cmd.Flags().StringVar(&p.directGWPSource, "direct-gwp-source", "", "provenance of --direct-gwp")
	cmd.Flags().StringVar(&p.gwpTable, "gwp-table", "", "GWP table name or version constraint (default from config)")
	cmd.Flags().Float64("quantity", 0, "quantity of activity; adds total emissions to the result")
	cmd.Flags().Float64("baseline", 0, "baseline value to benchmark against")

	return cmd
}

func runCO2e(cmd *cobra.Command, p co2eParams) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	in := &engine.CO2eInput{
		Factor:   p.factor,
		GWPTable: p.gwpTable,
		Quantity: changedFloat(cmd, "quantity"),
	}
	if inlineFactorsSet(cmd) {
		factors := greenops.GasFactorSet{CO2Factor: p.co2, CH4Factor: p.ch4, N2OFactor: p.n2o}
		if cmd.Flags().Changed("direct-gwp") {
			factors.DirectGWP = greenops.Float64(p.directGWP)
		}
		if p.directGWPSource != "" {
			factors.DirectGWPSource = greenops.String(p.directGWPSource)
		}
		in.Factors = &factors
	}

	req := engine.Request{
		Kind:     engine.KindCO2e,
		CO2e:     in,
		Baseline: changedFloat(cmd, "baseline"),
	}
	params := map[string]string{
		"factor":    p.factor,
		"gwp_table": p.gwpTable,
		"quantity":  formatOptionalFloat(in.Quantity),
	}
	return runSingle(cmd, eng, req, params)
}

func inlineFactorsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"co2", "ch4", "n2o", "direct-gwp", "direct-gwp-source"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
