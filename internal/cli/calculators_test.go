package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/cli"
)

func TestSignificanceCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("json with legal override", func(t *testing.T) {
		out, _, err := execute(t, "significance",
			"--scope", "regional", "--severity", "medium", "--frequency", "medium", "--legal", "-o", "json")
		require.NoError(t, err)

		m := decodeJSON(t, out)
		assert.Equal(t, "significance", m["kind"])
		assert.Equal(t, "significance@1.0.0", m["table_version"])
		res := m["significance"].(map[string]any)
		assert.InDelta(t, 65.0, res["total_score"], 1e-9)
		assert.Equal(t, "moderate", res["category"])
		assert.Equal(t, "significant", res["significance"])
		rec := m["recommendation"].(map[string]any)
		assert.Equal(t, "Significant aspect: operational controls required", rec["title"])
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := execute(t, "significance",
			"--scope", "global", "--severity", "high", "--frequency", "high")
		require.NoError(t, err)

		assert.Contains(t, out, "SIGNIFICANCE ASSESSMENT")
		assert.Contains(t, out, "100")
		assert.Contains(t, out, "critical")
		assert.Contains(t, out, "operational controls required")
	})

	t.Run("invalid scope", func(t *testing.T) {
		_, _, err := execute(t, "significance",
			"--scope", "planetary", "--severity", "high", "--frequency", "high")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
		assert.Contains(t, err.Error(), "scope")
	})

	t.Run("missing required flag", func(t *testing.T) {
		_, _, err := execute(t, "significance", "--scope", "local")
		require.Error(t, err)
		assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	})
}

func TestLTIFRCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("measured hours", func(t *testing.T) {
		out, _, err := execute(t, "ltifr", "--incidents", "2", "--hours", "500000")
		require.NoError(t, err)

		assert.Contains(t, out, "FREQUENCY RATE")
		assert.Contains(t, out, "4.00")
		assert.Contains(t, out, "attention")
		assert.Contains(t, out, "high (95% confidence)")
	})

	t.Run("headcount with severity", func(t *testing.T) {
		out, stderr, err := execute(t, "ltifr", "--incidents", "3", "--headcount", "250", "--days-lost", "41", "-o", "json")
		require.NoError(t, err)

		m := decodeJSON(t, out)
		res := m["frequency_rate"].(map[string]any)
		assert.InDelta(t, 6.0, res["rate"], 1e-9)
		assert.Equal(t, "critical", res["classification"])
		assert.Equal(t, "medium", res["data_quality"])
		assert.Equal(t, "estimated_from_headcount", res["exposure_source"])
		rec := m["recommendation"].(map[string]any)
		assert.Equal(t, "Mandatory remediation checklist", rec["title"])
		assert.Contains(t, stderr, "Severity rate: 82.00 days lost")
	})

	t.Run("custom block", func(t *testing.T) {
		out, _, err := execute(t, "ltifr", "--incidents", "1", "--hours", "200000", "--block", "200000", "-o", "json")
		require.NoError(t, err)

		res := decodeJSON(t, out)["frequency_rate"].(map[string]any)
		assert.InDelta(t, 1.0, res["rate"], 1e-9)
		assert.InDelta(t, 200000.0, res["standard_block"], 1e-9)
	})

	t.Run("baseline benchmark", func(t *testing.T) {
		out, _, err := execute(t, "ltifr", "--incidents", "2", "--hours", "500000", "--baseline", "5", "-o", "json")
		require.NoError(t, err)

		b := decodeJSON(t, out)["benchmark"].(map[string]any)
		assert.Equal(t, "improving", b["direction"])
		assert.Equal(t, true, b["is_better"])
	})

	t.Run("hours and headcount", func(t *testing.T) {
		_, _, err := execute(t, "ltifr", "--incidents", "1", "--hours", "1000", "--headcount", "5")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("no exposure", func(t *testing.T) {
		_, _, err := execute(t, "ltifr", "--incidents", "1")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("zero hours", func(t *testing.T) {
		_, _, err := execute(t, "ltifr", "--incidents", "1", "--hours", "0")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})
}

func TestCO2eCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("registered factor", func(t *testing.T) {
		out, _, err := execute(t, "co2e", "--factor", "diesel_l", "--quantity", "100", "-o", "json")
		require.NoError(t, err)

		m := decodeJSON(t, out)
		assert.Equal(t, "ar6@6.0.0", m["table_version"])
		res := m["co2e"].(map[string]any)
		assert.InDelta(t, 2.611568, res["total_co2e"], 1e-9)
		assert.InDelta(t, 261.1568, res["emissions_kg"], 1e-9)
		assert.Equal(t, "standard_gwp", res["methodology"])
		assert.Equal(t, "L", res["unit"])
	})

	t.Run("gwp table constraint", func(t *testing.T) {
		out, _, err := execute(t, "co2e", "--factor", "diesel_l", "--gwp-table", "^5", "-o", "json")
		require.NoError(t, err)

		m := decodeJSON(t, out)
		assert.Equal(t, "ar5@5.0.0", m["table_version"])
		assert.InDelta(t, 2.611505, m["co2e"].(map[string]any)["total_co2e"], 1e-9)
	})

	t.Run("direct gwp takes precedence", func(t *testing.T) {
		out, _, err := execute(t, "co2e", "--co2", "2", "--direct-gwp", "1530", "--direct-gwp-source", "IPCC AR6", "-o", "json")
		require.NoError(t, err)

		res := decodeJSON(t, out)["co2e"].(map[string]any)
		assert.InDelta(t, 1530.0, res["total_co2e"], 1e-9)
		assert.Equal(t, "direct_gwp", res["methodology"])
		assert.Equal(t, true, res["ignored_per_gas_factors"])
	})

	t.Run("table output", func(t *testing.T) {
		out, _, err := execute(t, "co2e", "--factor", "diesel_l", "--quantity", "100")
		require.NoError(t, err)

		assert.Contains(t, out, "CO2 EQUIVALENCE")
		assert.Contains(t, out, "diesel_l (per L)")
		assert.Contains(t, out, "2.611568 kg CO2e")
		assert.Contains(t, out, "ar6@6.0.0")
		assert.Contains(t, out, "Contribution")
	})

	t.Run("unknown factor", func(t *testing.T) {
		_, _, err := execute(t, "co2e", "--factor", "unobtainium")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("unknown gwp table", func(t *testing.T) {
		_, _, err := execute(t, "co2e", "--factor", "diesel_l", "--gwp-table", "ar9")
		require.Error(t, err)
		assert.Equal(t, cli.ExitConfiguration, cli.ExitCode(err))
	})

	t.Run("factor and inline factors", func(t *testing.T) {
		_, _, err := execute(t, "co2e", "--factor", "diesel_l", "--co2", "1")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("negative factor", func(t *testing.T) {
		_, _, err := execute(t, "co2e", "--co2=-1")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})
}

func TestCompareCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("lower is better", func(t *testing.T) {
		out, _, err := execute(t, "compare", "--current", "3.4", "--baseline", "4", "-o", "json")
		require.NoError(t, err)

		res := decodeJSON(t, out)["compare"].(map[string]any)
		assert.InDelta(t, -15.0, res["percent_change"], 1e-9)
		assert.Equal(t, "improving", res["direction"])
		assert.Equal(t, true, res["is_better"])
	})

	t.Run("higher is better", func(t *testing.T) {
		out, _, err := execute(t, "compare", "--current", "3.4", "--baseline", "4", "--higher-is-better", "-o", "json")
		require.NoError(t, err)

		res := decodeJSON(t, out)["compare"].(map[string]any)
		assert.Equal(t, "worsening", res["direction"])
		assert.Equal(t, false, res["is_better"])
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := execute(t, "compare", "--current", "4", "--baseline", "4")
		require.NoError(t, err)

		assert.Contains(t, out, "COMPARISON")
		assert.Contains(t, out, "unchanged (no material change)")
	})
}
