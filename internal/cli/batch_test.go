package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/cli"
)

const batchInput = `# quarterly review
{"id":"site-a","kind":"frequency_rate","frequency_rate":{"incident_count":2,"exposure_units":500000,"exposure_source":"measured"},"baseline":3}
{"id":"boiler","kind":"co2e","co2e":{"factor":"diesel_l","quantity":100}}

{"id":"bad","kind":"significance","significance":{"scope":"planetary","severity":"high","frequency_probability":"low"}}
{"id":"spill","kind":"significance","significance":{"scope":"regional","severity":"medium","frequency_probability":"medium"}}
`

func TestBatchCmd_JSON(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "requests.ndjson", batchInput)

	out, _, err := execute(t, "batch", "--input", input, "-o", "json")
	require.Error(t, err)

	var batchErr *cli.BatchExitError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Failed)
	assert.Equal(t, 4, batchErr.Total)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items), out)
	require.Len(t, items, 4)

	for i, id := range []string{"site-a", "boiler", "bad", "spill"} {
		assert.Equal(t, id, items[i]["id"])
		assert.InDelta(t, float64(i), items[i]["index"], 1e-9)
	}
	assert.Contains(t, items[2]["error"], "scope")
	assert.Nil(t, items[2]["result"])

	rate := items[0]["result"].(map[string]any)
	assert.Equal(t, "worsening", rate["benchmark"].(map[string]any)["direction"])
	co2e := items[1]["result"].(map[string]any)["co2e"].(map[string]any)
	assert.InDelta(t, 261.1568, co2e["emissions_kg"], 1e-9)
}

func TestBatchCmd_Table(t *testing.T) {
	setupCLITest(t)
	input := writeFile(t, t.TempDir(), "requests.ndjson", batchInput)

	out, _, err := execute(t, "batch", "--input", input, "--concurrency", "2")
	require.Error(t, err)

	assert.Contains(t, out, "BENCHMARK")
	assert.Contains(t, out, "site-a")
	assert.Contains(t, out, "attention")
	assert.Contains(t, out, "worsening (+33.33%)")
	assert.Contains(t, out, "4 requests, 3 ok, 1 failed")
}

func TestBatchCmd_NDJSONFromStdin(t *testing.T) {
	setupCLITest(t)

	cmd := cli.NewRootCmd("test")
	var stdout strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetErr(&strings.Builder{})
	cmd.SetIn(strings.NewReader(
		`{"kind":"compare","compare":{"current":1,"baseline":2,"lower_is_better":true}}` + "\n"))
	cmd.SetArgs([]string{"batch", "--input", "-", "-o", "ndjson"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1)
	var item map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &item))
	assert.Equal(t, "1", item["id"])
	assert.Equal(t, "compare", item["kind"])
}

func TestBatchCmd_RecordsAndRescore(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "requests.ndjson", batchInput)
	records := filepath.Join(dir, "records.ndjson")
	metricsFile := filepath.Join(dir, "esgcalc.prom")

	_, _, err := execute(t, "batch", "--input", input, "--records", records, "--metrics-file", metricsFile, "-o", "json")
	require.Error(t, err)

	data, err := os.ReadFile(records)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3, "rejected requests produce no record")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "esgcalc_batch_runs_total")

	out, _, err := execute(t, "rescore", "--input", records, "--gwp-table", "ar5", "-o", "json")
	require.NoError(t, err)

	var rescored []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rescored), out)
	require.Len(t, rescored, 3)

	byKind := map[string]map[string]any{}
	for _, r := range rescored {
		byKind[r["record"].(map[string]any)["kind"].(string)] = r
	}
	assert.Equal(t, true, byKind["co2e"]["changed"])
	assert.Equal(t, "downgrade", byKind["co2e"]["table_change"])
	assert.Equal(t, false, byKind["frequency_rate"]["changed"])
	assert.Equal(t, false, byKind["significance"]["changed"])
	assert.Equal(t, "same", byKind["significance"]["table_change"])

	out, _, err = execute(t, "rescore", "--input", records)
	require.NoError(t, err)
	assert.Contains(t, out, "3 records, 0 changed")
}

func TestBatchCmd_Errors(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", "# nothing here\n\n"},
		{"malformed", "{\"kind\":\"compare\",\n"},
		{"unknown field", `{"kind":"compare","compare":{"current":1,"baseline":2},"extra":true}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeFile(t, dir, tt.name+".ndjson", tt.content)
			_, _, err := execute(t, "batch", "--input", input)
			require.Error(t, err)
			assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "batch", "--input", filepath.Join(dir, "nope.ndjson"))
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})
}

func TestBatchCmd_OversizedBatchSizeIsConfigurationError(t *testing.T) {
	home := setupCLITest(t)
	writeFile(t, home, "config.yaml", "batch:\n  concurrency: 2\n  batch_size: 5000\n")
	input := writeFile(t, t.TempDir(), "requests.ndjson", batchInput)

	_, _, err := execute(t, "batch", "--input", input)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfiguration, cli.ExitCode(err))
}

func TestRescoreCmd_Errors(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()

	input := writeFile(t, dir, "bad.ndjson", "{not json}\n")
	_, _, err := execute(t, "rescore", "--input", input)
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "line 1")

	empty := writeFile(t, dir, "empty.ndjson", "\n")
	_, _, err = execute(t, "rescore", "--input", empty)
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}
