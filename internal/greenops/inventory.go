package greenops

import (
	"fmt"
	"math"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// ActivityLine is one row of activity data: a quantity of some activity and the
// emission-factor profile per unit of it.
type ActivityLine struct {
	Name     string        `json:"name"`
	Scope    EmissionScope `json:"scope"`
	Quantity float64       `json:"quantity"`
	Factors  GasFactorSet  `json:"factors"`
}

// InventoryLine is an ActivityLine with its computed emissions.
type InventoryLine struct {
	ActivityLine
	PerUnit CO2EquivalenceResult `json:"per_unit"`
	// EmissionsKg is Quantity * PerUnit.TotalCO2e in kg CO2e.
	EmissionsKg float64 `json:"emissions_kg"`
}

// Inventory is a set of computed activity lines with per-scope totals.
// Build one with NewInventory and Add, or with BuildInventory.
type Inventory struct {
	Lines   []InventoryLine           `json:"lines"`
	ByScope map[EmissionScope]float64 `json:"by_scope"`
	TotalKg float64                   `json:"total_kg"`
	// GWPTable is the table used for standard-methodology lines.
	GWPTable string `json:"gwp_table"`

	table GWPTable
}

// NewInventory returns an empty inventory that scores lines against table.
func NewInventory(table GWPTable) *Inventory {
	return &Inventory{
		Lines:    []InventoryLine{},
		ByScope:  make(map[EmissionScope]float64),
		GWPTable: table.ID(),
		table:    table,
	}
}

// Add computes one activity line and folds it into the totals.
// A rejected line leaves the inventory unchanged.
func (inv *Inventory) Add(line ActivityLine) (InventoryLine, error) {
	computed, err := computeLine(line, inv.table)
	if err != nil {
		return InventoryLine{}, err
	}
	inv.Lines = append(inv.Lines, computed)
	inv.ByScope[line.Scope] = RoundTo(inv.ByScope[line.Scope]+computed.EmissionsKg, StandardPrecision)
	inv.TotalKg = RoundTo(inv.TotalKg+computed.EmissionsKg, StandardPrecision)
	return computed, nil
}

// BuildInventory computes emissions for each activity line and totals them by scope.
// Errors name the failing line; no partial inventory is returned.
func BuildInventory(lines []ActivityLine, table GWPTable) (*Inventory, error) {
	inv := NewInventory(table)
	for i, line := range lines {
		if _, err := inv.Add(line); err != nil {
			return nil, fmt.Errorf("activity[%d] %q: %w", i, line.Name, err)
		}
	}
	return inv, nil
}

func computeLine(line ActivityLine, table GWPTable) (InventoryLine, error) {
	if math.IsNaN(line.Quantity) || math.IsInf(line.Quantity, 0) || line.Quantity < 0 {
		return InventoryLine{}, calcerr.Invalidf("quantity", line.Quantity, "must be a finite number >= 0")
	}
	if !line.Scope.Valid() {
		return InventoryLine{}, calcerr.Invalid("scope", line.Scope.String(), "must be 1, 2 or 3")
	}

	perUnit, err := ComputeCO2e(line.Factors, table)
	if err != nil {
		return InventoryLine{}, err
	}

	return InventoryLine{
		ActivityLine: line,
		PerUnit:      perUnit,
		EmissionsKg:  line.Quantity * perUnit.TotalCO2e,
	}, nil
}

// Share returns the fraction of the total contributed by scope, in percent.
func (inv *Inventory) Share(scope EmissionScope) float64 {
	if inv.TotalKg == 0 {
		return 0
	}
	const percent = 100.0
	return inv.ByScope[scope] / inv.TotalKg * percent
}
