package benchmarks_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine/batch"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

// generateRequestJSON builds one NDJSON request line, cycling through the kinds.
func generateRequestJSON(index int) string {
	switch index % 4 {
	case 0:
		return fmt.Sprintf(`{"id":"r-%d","kind":"significance","significance":`+
			`{"scope":"regional","severity":"medium","frequency_probability":"high"}}`, index)
	case 1:
		return fmt.Sprintf(`{"id":"r-%d","kind":"frequency_rate","frequency_rate":`+
			`{"incident_count":%d,"exposure_units":500000,"exposure_source":"measured"}}`, index, index%7)
	case 2:
		return fmt.Sprintf(`{"id":"r-%d","kind":"co2e","co2e":{"factor":"diesel_l","quantity":%d}}`, index, index)
	default:
		return fmt.Sprintf(`{"id":"r-%d","kind":"compare","compare":`+
			`{"current":%d,"baseline":100,"lower_is_better":true}}`, index, index%200)
	}
}

func generateNDJSON(count int) string {
	lines := make([]string, count)
	for i := range lines {
		lines[i] = generateRequestJSON(i)
	}
	return strings.Join(lines, "\n")
}

// BenchmarkDecodeRequests benchmarks NDJSON decoding of 10k mixed requests.
func BenchmarkDecodeRequests(b *testing.B) {
	b.ReportAllocs()
	data := generateNDJSON(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.DecodeRequests(strings.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkClassify benchmarks a single significance classification.
func BenchmarkClassify(b *testing.B) {
	b.ReportAllocs()
	eng := engine.NewDefault()
	in := significance.AssessmentInput{
		Scope:                significance.ScopeGlobal,
		Severity:             significance.LevelHigh,
		FrequencyProbability: significance.LevelMedium,
		HasLegalRequirement:  true,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.Classify(in); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkComputeRate benchmarks a single frequency-rate calculation.
func BenchmarkComputeRate(b *testing.B) {
	b.ReportAllocs()
	eng := engine.NewDefault()
	in := safety.ExposureMetricInput{IncidentCount: 3, ExposureUnits: 750000, ExposureSource: safety.SourceMeasured}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.ComputeRate(in); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEvaluateBatch benchmarks concurrent evaluation of 10k mixed requests.
func BenchmarkEvaluateBatch(b *testing.B) {
	b.ReportAllocs()
	eng := engine.NewDefault()
	reqs, err := engine.DecodeRequests(strings.NewReader(generateNDJSON(10000)))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results, evalErr := eng.EvaluateBatch(ctx, reqs, batch.Options{})
		if evalErr != nil {
			b.Fatal(evalErr)
		}
		if n := engine.FailedCount(results); n != 0 {
			b.Fatalf("%d requests failed", n)
		}
	}
}
