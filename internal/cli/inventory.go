package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
)

// inventoryFile is the YAML document read by the inventory command.
type inventoryFile struct {
	Activities []engine.Activity `yaml:"activities"`
}

// inventoryOutput is the JSON shape of an inventory.
type inventoryOutput struct {
	*greenops.Inventory
	Unit          string                      `json:"unit"`
	Total         float64                     `json:"total"`
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
}

// NewInventoryCmd creates the inventory command, which totals emissions of a list
// of activities by GHG Protocol scope.
func NewInventoryCmd() *cobra.Command {
	var input, gwpTable, unit string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Total the emissions of an activity inventory",
		Long: `Reads a YAML inventory of activities, each a quantity of a registered emission
factor, and totals the emissions by GHG Protocol scope.

  activities:
    - factor: diesel_l
      quantity: 1200
    - name: HQ electricity
      factor: grid_electricity_kwh
      quantity: 85000`,
		Example: `  # Inventory in kg CO2e with the default GWP table
  esgcalc inventory --input inventory.yaml

  # Totals in tonnes against AR5
  esgcalc inventory --input inventory.yaml --gwp-table ar5 --unit t`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInventory(cmd, input, gwpTable, unit)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML inventory file (- for stdin)")
	cmd.Flags().StringVar(&gwpTable, "gwp-table", "", "GWP table name or version constraint (default from config)")
	cmd.Flags().StringVar(&unit, "unit", "kg", "unit of the totals: g, kg, t or lb")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runInventory(cmd *cobra.Command, input, gwpTable, unit string) error {
	start := time.Now()
	if !greenops.IsRecognizedUnit(unit) {
		return calcerr.Invalid("unit", unit, "must be g, kg, t or lb")
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	activities, err := readInventory(cmd, input)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	inv, err := eng.Inventory(cmd.Context(), activities, gwpTable)
	params := map[string]string{"input": input, "gwp_table": gwpTable, "unit": unit}
	auditCommand(cmd, start, params, len(activities), err)
	if err != nil {
		return err
	}

	total, err := greenops.ConvertFromKg(inv.TotalKg, unit)
	if err != nil {
		return err
	}
	out := inventoryOutput{Inventory: inv, Unit: unit, Total: total}
	if eq, eqErr := greenops.Equivalencies(inv.TotalKg); eqErr == nil && !eq.IsEmpty {
		out.Equivalencies = &eq
	}

	if format != config.FormatTable {
		return newRenderer(cmd.OutOrStdout(), format).encode(out)
	}
	return renderInventory(cmd.OutOrStdout(), out)
}

func readInventory(cmd *cobra.Command, path string) ([]engine.Activity, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	var doc inventoryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, calcerr.Invalid("input", path, err.Error())
	}
	if len(doc.Activities) == 0 {
		return nil, calcerr.Invalid("activities", path, "no activities found")
	}
	return doc.Activities, nil
}

func renderInventory(w io.Writer, out inventoryOutput) error {
	rows := make([][]string, 0, len(out.Lines))
	for _, l := range out.Lines {
		rows = append(rows, []string{
			l.Name,
			l.Scope.String(),
			strconv.FormatFloat(l.Quantity, 'g', -1, 64),
			greenops.FormatCO2e(l.PerUnit.TotalCO2e, l.PerUnit.Methodology),
			greenops.FormatFloat(l.EmissionsKg, greenops.StandardPrecision),
		})
	}
	fmt.Fprintf(w, "EMISSIONS INVENTORY (%s)\n\n", out.GWPTable)
	writeTable(w, []string{"ACTIVITY", "SCOPE", "QUANTITY", "KG CO2E/UNIT", "KG CO2E"}, rows)

	fmt.Fprintln(w)
	totals := make([][]string, 0, 3)
	for _, scope := range []greenops.EmissionScope{greenops.Scope1, greenops.Scope2, greenops.Scope3} {
		kg, ok := out.ByScope[scope]
		if !ok {
			continue
		}
		v, _ := greenops.ConvertFromKg(kg, out.Unit)
		totals = append(totals, []string{
			scope.String(),
			greenops.FormatFloat(v, greenops.StandardPrecision),
			fmt.Sprintf("%.1f%%", out.Share(scope)),
		})
	}
	writeTable(w, []string{"SCOPE", "TOTAL (" + out.Unit + " CO2e)", "SHARE"}, totals)

	fmt.Fprintf(w, "\nTotal: %s %s CO2e\n", greenops.FormatFloat(out.Total, greenops.StandardPrecision), out.Unit)
	if out.Equivalencies != nil {
		fmt.Fprintln(w, out.Equivalencies.DisplayText)
	}
	return nil
}
