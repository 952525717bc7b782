package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
)

// gwpTableOutput is the JSON shape of one GWP table.
type gwpTableOutput struct {
	Name         string                   `json:"name"`
	Version      string                   `json:"version"`
	Source       string                   `json:"source"`
	HorizonYears int                      `json:"horizon_years"`
	Default      bool                     `json:"default"`
	Values       map[greenops.Gas]float64 `json:"values"`
}

// NewGWPListCmd creates the gwp list command.
func NewGWPListCmd() *cobra.Command {
	var tableName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available GWP tables",
		Long: `Lists the built-in and configured GWP tables with their CO2, CH4 and N2O values.
With --table, every gas of one table is listed.`,
		Example: `  esgcalc gwp list
  esgcalc gwp list --table ar5
  esgcalc gwp list --table "^6" -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine()
			if err != nil {
				return err
			}

			set := eng.GWPTables()
			tables := set.Tables()
			if tableName != "" {
				t, err := eng.Table(tableName)
				if err != nil {
					return err
				}
				tables = []greenops.GWPTable{t}
			}

			r := newRenderer(cmd.OutOrStdout(), format)
			if format != config.FormatTable {
				out := make([]gwpTableOutput, len(tables))
				for i, t := range tables {
					out[i] = gwpTableOutput{
						Name:         t.Name(),
						Version:      t.Version().String(),
						Source:       t.Source(),
						HorizonYears: t.HorizonYears(),
						Default:      t.Name() == set.DefaultName(),
						Values:       t.Values(),
					}
				}
				return r.encode(out)
			}

			if tableName != "" {
				return renderGWPTable(cmd, tables[0])
			}
			rows := make([][]string, len(tables))
			for i, t := range tables {
				def := ""
				if t.Name() == set.DefaultName() {
					def = "*"
				}
				rows[i] = []string{
					t.Name() + def, t.Version().String(), t.Label(),
					gwpCell(t, greenops.GasCO2), gwpCell(t, greenops.GasCH4), gwpCell(t, greenops.GasN2O),
				}
			}
			writeTable(cmd.OutOrStdout(), []string{"TABLE", "VERSION", "SOURCE", "CO2", "CH4", "N2O"}, rows)
			fmt.Fprintln(cmd.OutOrStdout(), "\n* default table")
			return nil
		},
	}

	cmd.Flags().StringVar(&tableName, "table", "", "show every gas of one table (name or version constraint)")
	return cmd
}

func renderGWPTable(cmd *cobra.Command, t greenops.GWPTable) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", t.ID(), t.Label())
	gases := t.Gases()
	rows := make([][]string, len(gases))
	for i, g := range gases {
		rows[i] = []string{string(g), gwpCell(t, g)}
	}
	writeTable(cmd.OutOrStdout(), []string{"GAS", "GWP"}, rows)
	return nil
}

func gwpCell(t greenops.GWPTable, gas greenops.Gas) string {
	v, err := t.Lookup(gas)
	if err != nil {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
