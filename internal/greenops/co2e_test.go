package greenops

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

func TestComputeCO2e_StandardMethodology(t *testing.T) {
	tests := []struct {
		name      string
		factors   GasFactorSet
		table     GWPTable
		wantTotal float64
		wantTable string
	}{
		{
			name:      "three gases with AR6",
			factors:   GasFactorSet{CO2Factor: 1, CH4Factor: 0.01, N2OFactor: 0.001},
			table:     AR6(),
			wantTotal: 1.543, // 1 + 0.01*27 + 0.001*273
			wantTable: "ar6@6.0.0",
		},
		{
			name:      "three gases with AR5",
			factors:   GasFactorSet{CO2Factor: 1, CH4Factor: 0.01, N2OFactor: 0.001},
			table:     AR5(),
			wantTotal: 1.545, // 1 + 0.01*28 + 0.001*265
			wantTable: "ar5@5.0.0",
		},
		{
			name:      "CO2 only contributes its factor verbatim",
			factors:   GasFactorSet{CO2Factor: 2.603},
			table:     AR6(),
			wantTotal: 2.603,
			wantTable: "ar6@6.0.0",
		},
		{
			name:      "missing factors default to zero",
			factors:   GasFactorSet{},
			table:     AR6(),
			wantTotal: 0,
			wantTable: "ar6@6.0.0",
		},
		{
			name:      "rounded to six decimals",
			factors:   GasFactorSet{CO2Factor: 0.0000001, CH4Factor: 0.00000001},
			table:     AR6(),
			wantTotal: 0.000000, // 1e-7 + 2.7e-7 rounds to 0 at 6 dp
			wantTable: "ar6@6.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeCO2e(tt.factors, tt.table)
			require.NoError(t, err)

			assert.Equal(t, MethodologyStandardGWP, got.Methodology)
			assert.Equal(t, tt.wantTotal, got.TotalCO2e)
			assert.Equal(t, tt.wantTable, got.GWPTable)
			assert.False(t, got.IgnoredPerGasFactors)
			require.Len(t, got.PerGasBreakdown, 3)

			var sum float64
			for _, c := range got.PerGasBreakdown {
				assert.InDelta(t, c.Factor*c.GWP, c.ContributionCO2e, 1e-12)
				sum += c.ContributionCO2e
			}
			assert.InDelta(t, sum, got.TotalCO2e, 1e-6, "total must equal the sum of contributions")
		})
	}
}

func TestComputeCO2e_BreakdownOrderAndCO2Identity(t *testing.T) {
	got, err := ComputeCO2e(GasFactorSet{CO2Factor: 3.5, CH4Factor: 0.1, N2OFactor: 0.01}, AR6())
	require.NoError(t, err)

	gases := []string{got.PerGasBreakdown[0].Gas, got.PerGasBreakdown[1].Gas, got.PerGasBreakdown[2].Gas}
	assert.Equal(t, []string{"CO2", "CH4", "N2O"}, gases)
	assert.Equal(t, 1.0, got.PerGasBreakdown[0].GWP)
	assert.Equal(t, 3.5, got.PerGasBreakdown[0].ContributionCO2e)
	assert.Equal(t, "IPCC AR6 GWP-100", got.MethodologyLabel)
	assert.Equal(t, "8.930000", got.FormattedTotal) // 3.5 + 2.7 + 2.73
}

func TestComputeCO2e_DirectGWP(t *testing.T) {
	t.Run("returns the direct value exactly", func(t *testing.T) {
		got, err := ComputeCO2e(GasFactorSet{DirectGWP: Float64(1430), DirectGWPSource: String("IPCC AR4")}, AR6())
		require.NoError(t, err)

		assert.Equal(t, 1430.0, got.TotalCO2e)
		assert.Equal(t, MethodologyDirectGWP, got.Methodology)
		assert.Equal(t, "Direct GWP (IPCC AR4)", got.MethodologyLabel)
		assert.Equal(t, "1,430", got.FormattedTotal)
		assert.Empty(t, got.GWPTable)
		require.Len(t, got.PerGasBreakdown, 1)
		assert.Equal(t, "direct_gwp", got.PerGasBreakdown[0].Gas)
		assert.Equal(t, "IPCC AR4", got.PerGasBreakdown[0].Label)
		assert.Equal(t, 1430.0, got.PerGasBreakdown[0].ContributionCO2e)
	})

	t.Run("takes precedence over populated per-gas factors", func(t *testing.T) {
		factors := GasFactorSet{
			CO2Factor: 1, CH4Factor: 0.01, N2OFactor: 0.001,
			DirectGWP: Float64(1430),
		}
		got, err := ComputeCO2e(factors, AR6())
		require.NoError(t, err)

		assert.Equal(t, 1430.0, got.TotalCO2e)
		assert.True(t, got.IgnoredPerGasFactors)
		assert.Equal(t, "Direct GWP (unspecified source)", got.MethodologyLabel)
	})

	t.Run("zero direct GWP is still the direct path", func(t *testing.T) {
		got, err := ComputeCO2e(GasFactorSet{CO2Factor: 5, DirectGWP: Float64(0)}, AR6())
		require.NoError(t, err)
		assert.Equal(t, MethodologyDirectGWP, got.Methodology)
		assert.Equal(t, 0.0, got.TotalCO2e)
	})

	t.Run("does not consult the GWP table", func(t *testing.T) {
		got, err := ComputeCO2e(GasFactorSet{DirectGWP: Float64(2256)}, GWPTable{})
		require.NoError(t, err)
		assert.Equal(t, 2256.0, got.TotalCO2e)
	})
}

func TestComputeCO2e_Validation(t *testing.T) {
	tests := []struct {
		name      string
		factors   GasFactorSet
		wantField string
	}{
		{"negative CO2", GasFactorSet{CO2Factor: -1}, "co2_factor"},
		{"negative CH4", GasFactorSet{CH4Factor: -0.1}, "ch4_factor"},
		{"negative N2O", GasFactorSet{N2OFactor: -0.01}, "n2o_factor"},
		{"negative direct GWP", GasFactorSet{DirectGWP: Float64(-1430)}, "direct_gwp"},
		{"NaN factor", GasFactorSet{CO2Factor: math.NaN()}, "co2_factor"},
		{"infinite factor", GasFactorSet{N2OFactor: math.Inf(1)}, "n2o_factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCO2e(tt.factors, AR6())
			require.Error(t, err)
			assert.ErrorIs(t, err, calcerr.ErrValidation)

			var ve *calcerr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestComputeCO2e_ExtremeMagnitudes(t *testing.T) {
	t.Run("finite total beyond rounding range stays finite", func(t *testing.T) {
		got, err := ComputeCO2e(GasFactorSet{CO2Factor: 1e303}, AR6())
		require.NoError(t, err)
		assert.False(t, math.IsInf(got.TotalCO2e, 0))
		assert.Equal(t, 1e303, got.TotalCO2e)
		assert.NotContains(t, got.FormattedTotal, "Inf")
		assert.False(t, strings.HasPrefix(got.FormattedTotal, "-"))
		assert.True(t, strings.HasSuffix(got.FormattedTotal, ".000000"))
	})

	t.Run("overflowing contribution is rejected", func(t *testing.T) {
		_, err := ComputeCO2e(GasFactorSet{CH4Factor: 1e307}, AR6())
		require.Error(t, err)
		assert.ErrorIs(t, err, calcerr.ErrValidation)
		assert.Contains(t, err.Error(), "overflows")
	})

	t.Run("direct GWP beyond int64 keeps its sign", func(t *testing.T) {
		got, err := ComputeCO2e(GasFactorSet{DirectGWP: Float64(1e20)}, AR6())
		require.NoError(t, err)
		assert.Equal(t, 1e20, got.TotalCO2e)
		assert.Equal(t, "100,000,000,000,000,000,000", got.FormattedTotal)
	})
}

func TestComputeCO2e_MissingGasIsConfigurationError(t *testing.T) {
	partial, err := NewGWPTable("partial", "1.0.0", "test", 100, map[Gas]float64{GasCO2: 1, GasCH4: 27})
	require.NoError(t, err)

	_, err = ComputeCO2e(GasFactorSet{CO2Factor: 1}, partial)
	require.Error(t, err)
	assert.ErrorIs(t, err, calcerr.ErrConfiguration)
	assert.Contains(t, err.Error(), "N2O")
}

func TestComputeCO2e_Idempotent(t *testing.T) {
	factors := GasFactorSet{CO2Factor: 2.603, CH4Factor: 0.000105, N2OFactor: 0.000021}

	first, err := ComputeCO2e(factors, AR6())
	require.NoError(t, err)
	second, err := ComputeCO2e(factors, AR6())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCO2EquivalenceResult_JSONRoundTrip(t *testing.T) {
	for _, factors := range []GasFactorSet{
		{CO2Factor: 1, CH4Factor: 0.01, N2OFactor: 0.001},
		{DirectGWP: Float64(1430), DirectGWPSource: String("IPCC AR4")},
	} {
		result, err := ComputeCO2e(factors, AR6())
		require.NoError(t, err)

		data, err := json.Marshal(result)
		require.NoError(t, err)

		var decoded CO2EquivalenceResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, result, decoded)
	}
}

func TestGasFactorSet_JSONNulls(t *testing.T) {
	data, err := json.Marshal(GasFactorSet{CO2Factor: 1})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"co2_factor":1,"ch4_factor":0,"n2o_factor":0,"direct_gwp":null,"direct_gwp_source":null}`,
		string(data))
}
