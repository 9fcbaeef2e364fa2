package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/transferability/internal/metrics"
)

const rawTemplate = `{
  "jobTitle": %q,
  "executiveSummary": "summary",
  "riskCategory": "Medium",
  "tasks": [
    {"description": "Answer tickets", "exposureLevel": "E1", "augmentationPotential": "Medium", "rationale": "text"}
  ],
  "skills": [
    {"name": "SQL", "classification": "S1", "rationale": "data"}
  ],
  "recommendations": {"roleRedesign": [], "reskillingPriorities": [], "techIntegration": []}
}`

type halfJitter struct{}

func (halfJitter) Float64() float64 { return 0.5 }

func testEngine() *metrics.Engine {
	return metrics.New(
		metrics.WithJitter(halfJitter{}),
		metrics.WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
}

func writeRaw(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScoreKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 6; i++ {
		paths = append(paths, writeRaw(t, dir, fmt.Sprintf("raw_%d.json", i), fmt.Sprintf(rawTemplate, fmt.Sprintf("Job %d", i))))
	}

	results, err := Score(context.Background(), paths, 2, testEngine())
	require.NoError(t, err)
	require.Equal(t, len(paths), results.Len())

	for i, item := range results.Items {
		assert.Equal(t, paths[i], item.Path)
		assert.Equal(t, fmt.Sprintf("Job %d", i), item.Report.JobTitle)
		assert.Equal(t, metrics.RiskMedium, item.Report.RiskCategory)
	}
}

func TestScoreReportsFailingPath(t *testing.T) {
	dir := t.TempDir()
	good := writeRaw(t, dir, "good.json", fmt.Sprintf(rawTemplate, "Good"))
	bad := writeRaw(t, dir, "bad.json", `{"jobTitle": "Broken"}`)

	_, err := Score(context.Background(), []string{good, bad}, 0, testEngine())
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.True(t, errors.Is(err, metrics.ErrMalformed))
}

func TestScoreMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := Score(context.Background(), []string{missing}, 1, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestScoreCanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeRaw(t, dir, "raw.json", fmt.Sprintf(rawTemplate, "Job"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Score(ctx, []string{path}, 1, testEngine())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultsExclude(t *testing.T) {
	results := &Results{Items: []*Result{
		{Path: "a", Report: &metrics.FullReport{JobTitle: "A"}},
		{Path: "b", Report: &metrics.FullReport{JobTitle: "B"}},
		{Path: "c", Report: &metrics.FullReport{JobTitle: "C"}},
	}}

	excluded := results.Exclude(func(r *Result) bool { return r.Report.JobTitle != "B" })

	assert.Equal(t, []string{"a", "c"}, excluded)
	require.Equal(t, 1, results.Len())
	assert.Equal(t, "b", results.Items[0].Path)

	var empty *Results
	assert.Zero(t, empty.Len())
}
