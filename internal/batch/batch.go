// Package batch scores many pre-labeled analysis files concurrently.
package batch

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/transferability/internal/metrics"
)

// DefaultLimit is used when the caller passes a non-positive limit.
const DefaultLimit = 4

type Result struct {
	Path   string
	Report *metrics.FullReport
}

type Results struct {
	Items []*Result
}

// Score reads, validates and computes every file in paths with at most limit
// files in flight. Results keep the order of paths. The first failure cancels
// the remaining work and is returned with the offending path.
func Score(ctx context.Context, paths []string, limit int, engine *metrics.Engine) (*Results, error) {
	if engine == nil {
		engine = metrics.New()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	items := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report, err := ScoreFile(path, engine)
			if err != nil {
				return err
			}

			items[i] = &Result{Path: path, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Results{Items: items}, nil
}

// ScoreFile computes the report for a single raw analysis file.
func ScoreFile(path string, engine *metrics.Engine) (*metrics.FullReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw, err := metrics.DecodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	report, err := engine.Compute(raw)
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", path, err)
	}

	return report, nil
}

func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// Exclude drops every result for which drop returns true and returns the
// paths that were removed.
func (r *Results) Exclude(drop func(*Result) bool) []string {
	var (
		kept     = make([]*Result, 0, len(r.Items))
		excluded []string
	)

	for _, item := range r.Items {
		if drop(item) {
			excluded = append(excluded, item.Path)
			continue
		}
		kept = append(kept, item)
	}

	r.Items = kept
	return excluded
}
