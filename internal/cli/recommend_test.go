package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/benchmark"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/cli"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

func TestRecommend(t *testing.T) {
	rate := func(c safety.Classification) engine.Response {
		return engine.Response{Kind: engine.KindFrequencyRate, FrequencyRate: &safety.FrequencyRateResult{Classification: c}}
	}
	aspect := func(c significance.Category, v significance.Verdict) engine.Response {
		return engine.Response{Kind: engine.KindSignificance,
			Significance: &significance.AssessmentResult{Category: c, Significance: v}}
	}

	tests := []struct {
		name      string
		resp      engine.Response
		wantTitle string
		wantItems int
	}{
		{"critical rate", rate(safety.ClassCritical), "Mandatory remediation checklist", 5},
		{"excellent rate", rate(safety.ClassExcellent), "Benchmark performance", 1},
		{"attention rate", rate(safety.ClassAttention), "", 0},
		{"good rate", rate(safety.ClassGood), "", 0},
		{"critical aspect", aspect(significance.CategoryCritical, significance.Significant),
			"Significant aspect: operational controls required", 4},
		{"moderate escalated", aspect(significance.CategoryModerate, significance.Significant),
			"Significant aspect: operational controls required", 4},
		{"moderate", aspect(significance.CategoryModerate, significance.NotSignificant), "Monitor", 1},
		{"negligible", aspect(significance.CategoryNegligible, significance.NotSignificant), "", 0},
		{"comparison", engine.Response{Kind: engine.KindCompare, Compare: &benchmark.Comparison{}}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := cli.Recommend(tt.resp)
			if tt.wantTitle == "" {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, tt.wantTitle, rec.Title)
			assert.Len(t, rec.Actions, tt.wantItems)
		})
	}
}
