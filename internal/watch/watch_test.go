package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/transferability/internal/metrics"
)

const rawTemplate = `{
  "jobTitle": %q,
  "executiveSummary": "summary",
  "riskCategory": "Low",
  "tasks": [
    {"description": "Sort mail", "exposureLevel": "E0", "augmentationPotential": "Low", "rationale": "physical"}
  ],
  "skills": [],
  "recommendations": {"roleRedesign": [], "reskillingPriorities": [], "techIntegration": []}
}`

func nextReport(t *testing.T, reports <-chan *metrics.FullReport) *metrics.FullReport {
	t.Helper()
	select {
	case report := <-reports:
		return report
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a report")
		return nil
	}
}

func TestWatchRescoresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(rawTemplate, "First")), 0o600))

	core, logs := observer.New(zapcore.ErrorLevel)

	ctx, cancel := context.WithCancel(context.Background())
	reports := make(chan *metrics.FullReport, 8)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path, nil, zap.New(core), func(r *metrics.FullReport) { reports <- r })
	}()

	require.Equal(t, "First", nextReport(t, reports).JobTitle)

	// Invalid content is logged and does not produce a report.
	require.NoError(t, os.WriteFile(path, []byte(`{"jobTitle": "Broken"}`), 0o600))
	require.Eventually(t, func() bool {
		return logs.FilterMessage("rescoring failed, keeping previous report").Len() > 0
	}, 5*time.Second, 20*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(fmt.Sprintf(rawTemplate, "Other")), 0o600))

	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(rawTemplate, "Second")), 0o600))

	for {
		report := nextReport(t, reports)
		require.NotEqual(t, "Other", report.JobTitle)
		if report.JobTitle == "Second" {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "raw.json")
	err := Watch(context.Background(), path, nil, nil, func(*metrics.FullReport) {})
	require.Error(t, err)
}
