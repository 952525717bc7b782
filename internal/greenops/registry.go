package greenops

import (
	"sort"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// FactorEntry is a named emission-factor profile in the registry.
type FactorEntry struct {
	// Name is the registry key (e.g., "diesel_l").
	Name string `json:"name" yaml:"name"`
	// Unit is the activity unit the factors apply to (e.g., "L", "kWh", "kg").
	Unit string `json:"unit" yaml:"unit"`
	// Scope is the GHG Protocol scope of the activity.
	Scope EmissionScope `json:"scope" yaml:"scope"`
	// Factors is the per-unit emission-factor profile.
	Factors GasFactorSet `json:"factors" yaml:"factors"`
}

// Registry resolves emission-factor profiles by name.
// It is read-only after construction.
type Registry struct {
	entries map[string]FactorEntry
}

// NewRegistry validates entries and builds a registry. Duplicate names are rejected.
func NewRegistry(entries ...FactorEntry) (*Registry, error) {
	r := &Registry{entries: make(map[string]FactorEntry, len(entries))}
	for _, e := range entries {
		if e.Name == "" {
			return nil, calcerr.Misconfigured("factors", "", "factor entry without a name")
		}
		if _, dup := r.entries[e.Name]; dup {
			return nil, calcerr.Misconfigured("factors", e.Name, "duplicate factor entry")
		}
		if !e.Scope.Valid() {
			return nil, calcerr.Misconfigured("factors", e.Name, "scope must be 1, 2 or 3")
		}
		if err := e.Factors.Validate(); err != nil {
			return nil, calcerr.Misconfigured("factors", e.Name, err.Error())
		}
		r.entries[e.Name] = e
	}
	return r, nil
}

// DefaultRegistry returns starter factor profiles. Organisations are expected to
// override them with their own inventory factors through configuration.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		FactorEntry{Name: "diesel_l", Unit: "L", Scope: Scope1,
			Factors: GasFactorSet{CO2Factor: 2.603, CH4Factor: 0.000105, N2OFactor: 0.000021}},
		FactorEntry{Name: "gasoline_l", Unit: "L", Scope: Scope1,
			Factors: GasFactorSet{CO2Factor: 2.212, CH4Factor: 0.000794, N2OFactor: 0.000254}},
		FactorEntry{Name: "natural_gas_m3", Unit: "m3", Scope: Scope1,
			Factors: GasFactorSet{CO2Factor: 2.0, CH4Factor: 0.000036, N2OFactor: 0.0000036}},
		FactorEntry{Name: "lpg_kg", Unit: "kg", Scope: Scope1,
			Factors: GasFactorSet{CO2Factor: 2.932, CH4Factor: 0.000047, N2OFactor: 0.0000047}},
		FactorEntry{Name: "grid_electricity_kwh", Unit: "kWh", Scope: Scope2,
			Factors: GasFactorSet{CO2Factor: 0.0385}},
		FactorEntry{Name: "r410a_kg", Unit: "kg", Scope: Scope1,
			Factors: GasFactorSet{DirectGWP: Float64(2256), DirectGWPSource: String("IPCC AR6")}},
		FactorEntry{Name: "r134a_kg", Unit: "kg", Scope: Scope1,
			Factors: GasFactorSet{DirectGWP: Float64(1530), DirectGWPSource: String("IPCC AR6")}},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the named entry. An unknown name is a ValidationError because the
// name arrives with the record being scored.
func (r *Registry) Get(name string) (FactorEntry, error) {
	e, ok := r.entries[name]
	if !ok {
		return FactorEntry{}, calcerr.Invalid("factor", name, "unknown emission factor")
	}
	return e, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new registry with overrides replacing entries of the same name.
func (r *Registry) Merge(overrides ...FactorEntry) (*Registry, error) {
	byName := make(map[string]FactorEntry, len(r.entries)+len(overrides))
	for n, e := range r.entries {
		byName[n] = e
	}
	for _, e := range overrides {
		byName[e.Name] = e
	}
	merged := make([]FactorEntry, 0, len(byName))
	for _, e := range byName {
		merged = append(merged, e)
	}
	return NewRegistry(merged...)
}
