package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
)

// NewFactorsListCmd creates the factors list command.
func NewFactorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered emission factors",
		Long: `Lists the emission factor registry: the built-in starter factors merged with
the factors section of the configuration.`,
		Example: `  esgcalc factors list
  esgcalc factors list -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine()
			if err != nil {
				return err
			}

			reg := eng.Factors()
			entries := make([]greenops.FactorEntry, 0, len(reg.Names()))
			for _, name := range reg.Names() {
				e, err := reg.Get(name)
				if err != nil {
					return err
				}
				entries = append(entries, e)
			}

			if format != config.FormatTable {
				return newRenderer(cmd.OutOrStdout(), format).encode(entries)
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				direct := "-"
				if e.Factors.HasDirectGWP() {
					direct = strconv.FormatFloat(*e.Factors.DirectGWP, 'g', -1, 64)
				}
				rows[i] = []string{
					e.Name, e.Unit, e.Scope.String(),
					factorCell(e.Factors.CO2Factor), factorCell(e.Factors.CH4Factor), factorCell(e.Factors.N2OFactor),
					direct,
				}
			}
			writeTable(cmd.OutOrStdout(),
				[]string{"FACTOR", "UNIT", "SCOPE", "CO2", "CH4", "N2O", "DIRECT GWP"}, rows)
			return nil
		},
	}
}

func factorCell(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
