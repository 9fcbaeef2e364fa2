package filtering

import (
	"context"

	"github.com/spigell/transferability/internal/batch"
	"github.com/spigell/transferability/internal/metrics"
)

type quadrantsFilter struct {
	toggle
	names   []string
	allowed map[string]bool
}

// NewQuadrants keeps only reports classified into one of the named quadrants.
func NewQuadrants(names []string) Filter {
	f := &quadrantsFilter{names: names}
	if len(names) == 0 {
		f.Disable("no quadrants configured")
	}
	return f
}

func (f *quadrantsFilter) Name() string { return "quadrants" }

func (f *quadrantsFilter) Validate() error {
	f.allowed = make(map[string]bool, len(f.names))
	for _, name := range f.names {
		quadrant, err := metrics.ParseQuadrant(name)
		if err != nil {
			return err
		}
		f.allowed[quadrant] = true
	}
	return nil
}

func (f *quadrantsFilter) Apply(_ context.Context, r *batch.Results) (*batch.Results, Step, error) {
	initial := r.Len()
	excluded := r.Exclude(func(item *batch.Result) bool {
		return !f.allowed[item.Report.Quadrant.Label]
	})

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}
