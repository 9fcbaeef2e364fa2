package filtering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/transferability/internal/batch"
	"github.com/spigell/transferability/internal/metrics"
)

func result(path string, index int, quadrant string, risk metrics.RiskCategory) *batch.Result {
	return &batch.Result{
		Path: path,
		Report: &metrics.FullReport{
			RiskCategory: risk,
			ComputedMetrics: metrics.ComputedMetrics{
				TransferabilityIndex: index,
				Quadrant:             metrics.Quadrant{Label: quadrant},
			},
		},
	}
}

func sample() *batch.Results {
	return &batch.Results{Items: []*batch.Result{
		result("hybrid.json", 72, metrics.QuadrantHybrid, metrics.RiskHigh),
		result("displacement.json", 55, metrics.QuadrantDisplacement, metrics.RiskCritical),
		result("augmentation.json", 48, metrics.QuadrantAugmentation, metrics.RiskLow),
		result("stable.json", 10, metrics.QuadrantStable, metrics.RiskLow),
	}}
}

func paths(r *batch.Results) []string {
	out := make([]string, 0, r.Len())
	for _, item := range r.Items {
		out = append(out, item.Path)
	}
	return out
}

func TestRunFilters(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{
			name: "nothing configured keeps everything",
			cfg:  nil,
			want: []string{"hybrid.json", "displacement.json", "augmentation.json", "stable.json"},
		},
		{
			name: "minimum transferability",
			cfg:  &Config{MinTransferability: 50},
			want: []string{"hybrid.json", "displacement.json"},
		},
		{
			name: "quadrants",
			cfg:  &Config{Quadrants: []string{metrics.QuadrantAugmentation, metrics.QuadrantStable}},
			want: []string{"augmentation.json", "stable.json"},
		},
		{
			name: "risk categories",
			cfg:  &Config{RiskCategories: []string{"Low"}},
			want: []string{"augmentation.json", "stable.json"},
		},
		{
			name: "all steps combined",
			cfg: &Config{
				MinTransferability: 40,
				Quadrants:          []string{metrics.QuadrantAugmentation, metrics.QuadrantHybrid},
				RiskCategories:     []string{"Low", "Critical"},
			},
			want: []string{"augmentation.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromConfig(tt.cfg, nil).RunFilters(context.Background(), sample())
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(got))
		})
	}
}

func TestRunFiltersValidatesBeforeApplying(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "unknown quadrant", cfg: &Config{Quadrants: []string{"Hybrid"}}},
		{name: "unknown risk category", cfg: &Config{RiskCategories: []string{"low"}}},
		{name: "minimum out of range", cfg: &Config{MinTransferability: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := sample()
			_, err := FromConfig(tt.cfg, nil).RunFilters(context.Background(), results)
			require.Error(t, err)
			assert.Equal(t, 4, results.Len())
		})
	}
}

func TestRunFiltersLogsSteps(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	filters := FromConfig(&Config{MinTransferability: 50}, zap.New(core))
	_, err := filters.RunFilters(context.Background(), sample())
	require.NoError(t, err)

	entries := logs.FilterMessage("filter step").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "min_transferability", fields["name"])
	assert.EqualValues(t, 4, fields["initial"])
	assert.EqualValues(t, 2, fields["dropped"])
	assert.EqualValues(t, 2, fields["left"])
}

func TestDisableByNameAndDescribe(t *testing.T) {
	filters := FromConfig(&Config{MinTransferability: 50, RiskCategories: []string{"High"}}, nil)
	filters.DisableByName("risk_categories", "overridden by flag")

	got, err := filters.RunFilters(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, []string{"hybrid.json", "displacement.json"}, paths(got))

	statuses := filters.Describe()
	require.Len(t, statuses, 3)
	assert.Equal(t, Status{Name: "min_transferability", Enabled: true}, statuses[0])
	assert.Equal(t, Status{Name: "quadrants", Enabled: false, Reason: "no quadrants configured"}, statuses[1])
	assert.Equal(t, Status{Name: "risk_categories", Enabled: false, Reason: "overridden by flag"}, statuses[2])
}
