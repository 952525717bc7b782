package greenops

import (
	"fmt"
	"math"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// GWPTable is an immutable, versioned mapping of gas to global warming potential.
//
// GWP values are revised by each IPCC assessment report, so tables are passed to
// the calculator explicitly instead of living in a global. Re-scoring a historical
// record against the table that was current when it was first scored stays
// reproducible.
type GWPTable struct {
	name         string
	version      *semver.Version
	source       string
	horizonYears int
	values       map[Gas]float64
}

// NewGWPTable validates and copies the given values into a new table.
// CO2 must be present with a GWP of exactly 1.
func NewGWPTable(name, version, source string, horizonYears int, values map[Gas]float64) (GWPTable, error) {
	table := "gwp:" + name
	if name == "" {
		return GWPTable{}, calcerr.Misconfigured("gwp", "name", "table name is required")
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return GWPTable{}, calcerr.Misconfigured(table, "version", fmt.Sprintf("invalid semantic version %q: %v", version, err))
	}

	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}

	copied := make(map[Gas]float64, len(values))
	for gas, gwp := range values {
		if math.IsNaN(gwp) || math.IsInf(gwp, 0) || gwp <= 0 {
			return GWPTable{}, calcerr.Misconfigured(table, string(gas), fmt.Sprintf("GWP must be a positive finite number, got %g", gwp))
		}
		copied[gas] = gwp
	}

	if co2, ok := copied[GasCO2]; !ok || co2 != 1 {
		return GWPTable{}, calcerr.Misconfigured(table, string(GasCO2), "CO2 is the reference gas and must have GWP 1")
	}

	return GWPTable{
		name:         name,
		version:      v,
		source:       source,
		horizonYears: horizonYears,
		values:       copied,
	}, nil
}

// mustTable builds a built-in table; the inputs are compile-time constants.
func mustTable(name, version, source string, values map[Gas]float64) GWPTable {
	t, err := NewGWPTable(name, version, source, DefaultHorizonYears, values)
	if err != nil {
		panic(err)
	}
	return t
}

// AR6 returns the IPCC Sixth Assessment Report GWP-100 table.
func AR6() GWPTable {
	return mustTable(TableAR6, "6.0.0", "IPCC AR6", map[Gas]float64{
		GasCO2:     1,
		GasCH4:     27,
		GasN2O:     273,
		GasHFC134a: 1530,
		GasHFC32:   771,
		GasR410A:   2256,
		GasSF6:     25200,
	})
}

// AR5 returns the IPCC Fifth Assessment Report GWP-100 table.
func AR5() GWPTable {
	return mustTable(TableAR5, "5.0.0", "IPCC AR5", map[Gas]float64{
		GasCO2:     1,
		GasCH4:     28,
		GasN2O:     265,
		GasHFC134a: 1300,
		GasHFC32:   677,
		GasR410A:   1924,
		GasSF6:     23500,
	})
}

// AR4 returns the IPCC Fourth Assessment Report GWP-100 table.
func AR4() GWPTable {
	return mustTable(TableAR4, "4.0.0", "IPCC AR4", map[Gas]float64{
		GasCO2:     1,
		GasCH4:     25,
		GasN2O:     298,
		GasHFC134a: 1430,
		GasHFC32:   675,
		GasR410A:   2088,
		GasSF6:     22800,
	})
}

// Name returns the table name (e.g., "ar6").
func (t GWPTable) Name() string { return t.name }

// Version returns the table's semantic version.
func (t GWPTable) Version() *semver.Version { return t.version }

// Source returns the provenance label (e.g., "IPCC AR6").
func (t GWPTable) Source() string { return t.source }

// HorizonYears returns the GWP time horizon.
func (t GWPTable) HorizonYears() int { return t.horizonYears }

// ID returns "name@version".
func (t GWPTable) ID() string {
	if t.version == nil {
		return t.name
	}
	return t.name + "@" + t.version.String()
}

// Label returns a human-readable methodology label, e.g. "IPCC AR6 GWP-100".
func (t GWPTable) Label() string {
	return fmt.Sprintf("%s GWP-%d", t.source, t.horizonYears)
}

// Lookup returns the GWP of gas.
// A gas without an entry is a ConfigurationError: the table, not the record, is at fault.
func (t GWPTable) Lookup(gas Gas) (float64, error) {
	gwp, ok := t.values[gas]
	if !ok {
		return 0, calcerr.Misconfigured("gwp:"+t.name, string(gas), "gas has no GWP entry")
	}
	return gwp, nil
}

// Values returns a copy of the table entries.
func (t GWPTable) Values() map[Gas]float64 {
	out := make(map[Gas]float64, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Gases returns the gases in the table, sorted by name.
func (t GWPTable) Gases() []Gas {
	gases := make([]Gas, 0, len(t.values))
	for g := range t.values {
		gases = append(gases, g)
	}
	sort.Slice(gases, func(i, j int) bool { return gases[i] < gases[j] })
	return gases
}

// TableSet is a read-only collection of GWP tables with a default.
type TableSet struct {
	tables      map[string]GWPTable
	defaultName string
}

// NewTableSet builds a set from tables. Later tables with the same name replace earlier ones.
func NewTableSet(defaultName string, tables ...GWPTable) (*TableSet, error) {
	set := &TableSet{tables: make(map[string]GWPTable, len(tables)), defaultName: defaultName}
	for _, t := range tables {
		set.tables[t.name] = t
	}
	if _, ok := set.tables[defaultName]; !ok {
		return nil, calcerr.Misconfigured("gwp", defaultName, "default table is not defined")
	}
	return set, nil
}

// DefaultTableSet returns the built-in AR4, AR5 and AR6 tables with AR6 as default.
func DefaultTableSet() *TableSet {
	set, err := NewTableSet(DefaultTableName, AR4(), AR5(), AR6())
	if err != nil {
		panic(err)
	}
	return set
}

// Default returns the default table.
func (s *TableSet) Default() GWPTable {
	return s.tables[s.defaultName]
}

// DefaultName returns the default table name.
func (s *TableSet) DefaultName() string {
	return s.defaultName
}

// Get returns the named table; an empty name selects the default.
func (s *TableSet) Get(name string) (GWPTable, error) {
	if name == "" {
		return s.Default(), nil
	}
	t, ok := s.tables[name]
	if !ok {
		return GWPTable{}, calcerr.Misconfigured("gwp", name, "unknown GWP table")
	}
	return t, nil
}

// Resolve returns the highest-versioned table satisfying a semver constraint
// such as "^6" or ">=5, <6".
func (s *TableSet) Resolve(constraint string) (GWPTable, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return GWPTable{}, calcerr.Invalid("gwp_constraint", constraint, err.Error())
	}

	var best GWPTable
	found := false
	for _, t := range s.tables {
		if !c.Check(t.version) {
			continue
		}
		if !found || t.version.GreaterThan(best.version) {
			best = t
			found = true
		}
	}
	if !found {
		return GWPTable{}, calcerr.Misconfigured("gwp", constraint, "no table satisfies constraint")
	}
	return best, nil
}

// Tables returns all tables ordered by version.
func (s *TableSet) Tables() []GWPTable {
	out := make([]GWPTable, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].version.Equal(out[j].version) {
			return out[i].name < out[j].name
		}
		return out[i].version.LessThan(out[j].version)
	})
	return out
}
