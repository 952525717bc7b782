package config

import (
	"sort"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

// GWPConfig selects and extends the GWP tables.
type GWPConfig struct {
	// DefaultTable names the table used when a request does not pick one.
	DefaultTable string `yaml:"default_table" json:"default_table"`
	// Tables adds tables, or replaces built-in ones (ar4, ar5, ar6) by name.
	Tables map[string]GWPTableConfig `yaml:"tables,omitempty" json:"tables,omitempty"`
}

// GWPTableConfig is a user-supplied GWP table.
type GWPTableConfig struct {
	Version      string             `yaml:"version"                 json:"version"`
	Source       string             `yaml:"source"                  json:"source"`
	HorizonYears int                `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty"`
	Values       map[string]float64 `yaml:"values"                  json:"values"`
}

// TableSet builds the built-in tables plus the configured ones.
func (g GWPConfig) TableSet() (*greenops.TableSet, error) {
	tables := []greenops.GWPTable{greenops.AR4(), greenops.AR5(), greenops.AR6()}

	names := make([]string, 0, len(g.Tables))
	for name := range g.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tc := g.Tables[name]
		values := make(map[greenops.Gas]float64, len(tc.Values))
		for gas, v := range tc.Values {
			values[greenops.Gas(gas)] = v
		}
		t, err := greenops.NewGWPTable(name, tc.Version, tc.Source, tc.HorizonYears, values)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	def := g.DefaultTable
	if def == "" {
		def = greenops.DefaultTableName
	}
	return greenops.NewTableSet(def, tables...)
}

// SafetyConfig configures the frequency-rate calculator.
type SafetyConfig struct {
	StandardBlock float64                 `yaml:"standard_block" json:"standard_block"`
	Thresholds    safety.Thresholds       `yaml:"thresholds"     json:"thresholds"`
	Quality       map[string]safety.Grade `yaml:"quality"        json:"quality"`
}

func defaultSafetyConfig() SafetyConfig {
	quality := make(map[string]safety.Grade)
	for src, g := range safety.DefaultQualityTable() {
		quality[string(src)] = g
	}
	return SafetyConfig{
		StandardBlock: safety.DefaultStandardBlock,
		Thresholds:    safety.DefaultThresholds(),
		Quality:       quality,
	}
}

// Calculator builds and validates the configured calculator.
func (s SafetyConfig) Calculator() (safety.Calculator, error) {
	c := safety.NewCalculator()
	if s.StandardBlock != 0 {
		c.StandardBlock = s.StandardBlock
	}
	if s.Thresholds != (safety.Thresholds{}) {
		c.Thresholds = s.Thresholds
	}
	if len(s.Quality) > 0 {
		q := make(safety.QualityTable, len(s.Quality))
		for src, g := range s.Quality {
			q[safety.ExposureSource(src)] = g
		}
		c.Quality = q
	}

	if err := c.Validate(); err != nil {
		if calcerr.IsValidation(err) {
			return safety.Calculator{}, calcerr.Misconfigured("safety", "standard_block", err.Error())
		}
		return safety.Calculator{}, err
	}
	return c, nil
}

// SignificanceConfig holds the LAIA scoring tables.
type SignificanceConfig struct {
	Version     string                    `yaml:"version"     json:"version"`
	Consequence map[string]map[string]int `yaml:"consequence" json:"consequence"`
	Likelihood  map[string]int            `yaml:"likelihood"  json:"likelihood"`
	Breakpoints significance.Breakpoints  `yaml:"breakpoints" json:"breakpoints"`
}

func defaultSignificanceConfig() SignificanceConfig {
	t := significance.DefaultScoringTables()
	cfg := SignificanceConfig{
		Version:     t.Version,
		Consequence: make(map[string]map[string]int, len(t.Consequence)),
		Likelihood:  make(map[string]int, len(t.Likelihood)),
		Breakpoints: t.Breakpoints,
	}
	for scope, row := range t.Consequence {
		r := make(map[string]int, len(row))
		for level, score := range row {
			r[string(level)] = score
		}
		cfg.Consequence[string(scope)] = r
	}
	for level, score := range t.Likelihood {
		cfg.Likelihood[string(level)] = score
	}
	return cfg
}

// ScoringTables converts and validates the configured tables.
// Unknown scope or level names are configuration errors.
func (s SignificanceConfig) ScoringTables() (significance.ScoringTables, error) {
	t := significance.ScoringTables{
		Version:     s.Version,
		Consequence: make(map[significance.Scope]map[significance.Level]int, len(s.Consequence)),
		Likelihood:  make(map[significance.Level]int, len(s.Likelihood)),
		Breakpoints: s.Breakpoints,
	}

	for scope, row := range s.Consequence {
		if !knownScope(scope) {
			return significance.ScoringTables{}, calcerr.Misconfigured("significance", "consequence."+scope, "unknown scope")
		}
		r := make(map[significance.Level]int, len(row))
		for level, score := range row {
			if !knownLevel(level) {
				return significance.ScoringTables{}, calcerr.Misconfigured("significance",
					"consequence."+scope+"."+level, "unknown severity level")
			}
			r[significance.Level(level)] = score
		}
		t.Consequence[significance.Scope(scope)] = r
	}
	for level, score := range s.Likelihood {
		if !knownLevel(level) {
			return significance.ScoringTables{}, calcerr.Misconfigured("significance", "likelihood."+level, "unknown level")
		}
		t.Likelihood[significance.Level(level)] = score
	}

	if err := t.Validate(); err != nil {
		return significance.ScoringTables{}, err
	}
	return t, nil
}

func knownScope(s string) bool {
	for _, v := range significance.Scopes() {
		if string(v) == s {
			return true
		}
	}
	return false
}

func knownLevel(l string) bool {
	for _, v := range significance.Levels() {
		if string(v) == l {
			return true
		}
	}
	return false
}

// FactorConfig is a registry entry in the factors section.
type FactorConfig struct {
	Unit            string   `yaml:"unit"                        json:"unit"`
	Scope           int      `yaml:"scope"                       json:"scope"`
	CO2             float64  `yaml:"co2,omitempty"               json:"co2,omitempty"`
	CH4             float64  `yaml:"ch4,omitempty"               json:"ch4,omitempty"`
	N2O             float64  `yaml:"n2o,omitempty"               json:"n2o,omitempty"`
	DirectGWP       *float64 `yaml:"direct_gwp,omitempty"        json:"direct_gwp,omitempty"`
	DirectGWPSource *string  `yaml:"direct_gwp_source,omitempty" json:"direct_gwp_source,omitempty"`
}

// FactorRegistry returns the built-in registry with configured entries merged over it.
func (c *Config) FactorRegistry() (*greenops.Registry, error) {
	names := make([]string, 0, len(c.Factors))
	for name := range c.Factors {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]greenops.FactorEntry, 0, len(names))
	for _, name := range names {
		f := c.Factors[name]
		entries = append(entries, greenops.FactorEntry{
			Name:  name,
			Unit:  f.Unit,
			Scope: greenops.EmissionScope(f.Scope),
			Factors: greenops.GasFactorSet{
				CO2Factor:       f.CO2,
				CH4Factor:       f.CH4,
				N2OFactor:       f.N2O,
				DirectGWP:       f.DirectGWP,
				DirectGWPSource: f.DirectGWPSource,
			},
		})
	}
	return greenops.DefaultRegistry().Merge(entries...)
}
