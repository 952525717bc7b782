package record_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/record"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

//nolint:gochecknoglobals // Fixed clock for reproducible ULIDs.
var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func entropy() *ulid.MonotonicEntropy {
	return ulid.Monotonic(rand.New(rand.NewSource(42)), 0) //nolint:gosec // Deterministic test entropy.
}

func ptr[T any](v T) *T { return &v }

func sampleRequests() []engine.Request {
	return []engine.Request{
		{
			ID:   "sig",
			Kind: engine.KindSignificance,
			Significance: &significance.AssessmentInput{
				Scope:                significance.ScopeGlobal,
				Severity:             significance.LevelMedium,
				FrequencyProbability: significance.LevelLow,
				HasLegalRequirement:  true,
			},
			Baseline: ptr(70.0),
		},
		{
			ID:   "rate",
			Kind: engine.KindFrequencyRate,
			FrequencyRate: &safety.ExposureMetricInput{
				IncidentCount:  3,
				ExposureUnits:  1_200_000,
				ExposureSource: safety.SourceEstimatedFromHeadcount,
			},
			Baseline: ptr(2.0),
		},
		{
			ID:   "diesel",
			Kind: engine.KindCO2e,
			CO2e: &engine.CO2eInput{Factor: "diesel_l", GWPTable: "ar5", Quantity: ptr(100.0)},
		},
		{
			ID:   "refrigerant",
			Kind: engine.KindCO2e,
			CO2e: &engine.CO2eInput{Factors: &greenops.GasFactorSet{
				DirectGWP:       greenops.Float64(2256),
				DirectGWPSource: greenops.String("IPCC AR6"),
			}},
		},
		{
			ID:      "cmp",
			Kind:    engine.KindCompare,
			Compare: &engine.CompareInput{Current: 0.8, Baseline: 1.1, LowerIsBetter: true},
		},
	}
}

func evaluateRecord(t *testing.T, eng *engine.Engine, req engine.Request) record.Record {
	t.Helper()
	resp, err := eng.Evaluate(context.Background(), req)
	require.NoError(t, err)
	rec, err := record.FromResponse(req, resp, fixedNow, entropy())
	require.NoError(t, err)
	return rec
}

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	sch, err := jsonschema.UnmarshalJSON(strings.NewReader(record.Schema))
	require.NoError(t, err, "parse schema JSON")

	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("record.schema.json", sch))
	compiled, err := compiler.Compile("record.schema.json")
	require.NoError(t, err, "compile schema")
	return compiled
}

func TestNew(t *testing.T) {
	eng := engine.NewDefault()
	rec := evaluateRecord(t, eng, sampleRequests()[2])

	assert.Equal(t, engine.KindCO2e, rec.Kind)
	assert.Equal(t, "ar5@5.0.0", rec.TableVersion)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, fixedNow.UnixMilli(), ulid.Time(rec.ID.Time()).UnixMilli())
}

func TestNew_KindMismatch(t *testing.T) {
	req := engine.Request{Kind: engine.KindCompare, Compare: &engine.CompareInput{}}
	resp := engine.Response{Kind: engine.KindCO2e}

	_, err := record.New(engine.KindCompare, "", req, resp, fixedNow, entropy())
	require.Error(t, err)
	assert.True(t, calcerr.IsValidation(err))

	_, err = record.New("energy", "", req, resp, fixedNow, entropy())
	require.Error(t, err)
	assert.True(t, calcerr.IsValidation(err))
}

func TestRecord_ValidatesAgainstSchema(t *testing.T) {
	compiled := compileSchema(t)
	eng := engine.NewDefault()

	for _, req := range sampleRequests() {
		t.Run(req.ID, func(t *testing.T) {
			rec := evaluateRecord(t, eng, req)
			data, err := rec.Marshal()
			require.NoError(t, err)

			inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			require.NoError(t, err)
			assert.NoError(t, compiled.Validate(inst), string(data))
		})
	}
}

func TestSchema_RejectsUnknownEnumValue(t *testing.T) {
	compiled := compileSchema(t)
	rec := evaluateRecord(t, engine.NewDefault(), sampleRequests()[0])

	data, err := rec.Marshal()
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"category":"moderate"`, `"category":"severe"`, 1)
	require.NotEqual(t, string(data), tampered)

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(tampered))
	require.NoError(t, err)
	assert.Error(t, compiled.Validate(inst))
}

func TestMarshalUnmarshal(t *testing.T) {
	rec := evaluateRecord(t, engine.NewDefault(), sampleRequests()[1])

	data, err := rec.Marshal()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, rec.ID.String(), raw["id"])

	got, err := record.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Result, got.Result)
	assert.Equal(t, rec.Input, got.Input)

	_, err = record.Unmarshal([]byte(`{"kind":"co2e","input":{"kind":"compare"}}`))
	require.Error(t, err)
}

func TestRescore_GWPTableUpgrade(t *testing.T) {
	eng := engine.NewDefault()
	ar5 := evaluateRecord(t, eng, sampleRequests()[2])

	data, err := ar5.Marshal()
	require.NoError(t, err)
	stored, err := record.Unmarshal(data)
	require.NoError(t, err)

	out, err := record.Rescore(context.Background(), eng, stored, record.RescoreOptions{GWPTable: "ar6"})
	require.NoError(t, err)

	assert.True(t, out.Changed)
	assert.Equal(t, record.TableUpgrade, out.TableChange)
	assert.InDelta(t, 2.611505, out.Before.CO2e.TotalCO2e, 1e-9)
	assert.InDelta(t, 2.611568, out.After.CO2e.TotalCO2e, 1e-9)
	assert.Equal(t, "ar6@6.0.0", out.After.TableVersion)
	assert.Equal(t, "ar5", stored.Input.CO2e.GWPTable, "stored record is not modified")
}

func TestRescore_SameTableUnchanged(t *testing.T) {
	eng := engine.NewDefault()

	for _, req := range sampleRequests() {
		t.Run(req.ID, func(t *testing.T) {
			rec := evaluateRecord(t, eng, req)
			out, err := record.Rescore(context.Background(), eng, rec, record.RescoreOptions{})
			require.NoError(t, err)
			assert.False(t, out.Changed)
			assert.Equal(t, record.TableSame, out.TableChange)
		})
	}
}

func TestRescore_DirectGWPIgnoresTable(t *testing.T) {
	eng := engine.NewDefault()
	rec := evaluateRecord(t, eng, sampleRequests()[3])

	out, err := record.Rescore(context.Background(), eng, rec, record.RescoreOptions{GWPTable: "ar4"})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, record.TableDowngrade, out.TableChange)
}

func TestRescore_RevisedScoringTables(t *testing.T) {
	rec := evaluateRecord(t, engine.NewDefault(), engine.Request{
		Kind: engine.KindSignificance,
		Significance: &significance.AssessmentInput{
			Scope:                significance.ScopeLocal,
			Severity:             significance.LevelLow,
			FrequencyProbability: significance.LevelLow,
		},
	})

	revised := significance.DefaultScoringTables()
	revised.Version = "1.1.0"
	revised.Consequence[significance.ScopeLocal][significance.LevelLow] = 22
	eng, err := engine.NewWithTables(engine.Tables{Scoring: &revised})
	require.NoError(t, err)

	out, err := record.Rescore(context.Background(), eng, rec, record.RescoreOptions{})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, record.TableUpgrade, out.TableChange)
	assert.Equal(t, 30, out.Before.Significance.TotalScore)
	assert.Equal(t, 32, out.After.Significance.TotalScore)
}
