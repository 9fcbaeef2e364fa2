package filtering

import (
	"context"
	"fmt"

	"github.com/spigell/transferability/internal/batch"
)

type minTransferabilityFilter struct {
	toggle
	minimum int
}

// NewMinTransferability drops reports whose transferability index is below minimum.
// A zero minimum disables the step.
func NewMinTransferability(minimum int) Filter {
	f := &minTransferabilityFilter{minimum: minimum}
	if minimum == 0 {
		f.Disable("no minimum configured")
	}
	return f
}

func (f *minTransferabilityFilter) Name() string { return "min_transferability" }

func (f *minTransferabilityFilter) Validate() error {
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum transferability must be within [0, 100], got %d", f.minimum)
	}
	return nil
}

func (f *minTransferabilityFilter) Apply(_ context.Context, r *batch.Results) (*batch.Results, Step, error) {
	initial := r.Len()
	excluded := r.Exclude(func(item *batch.Result) bool {
		return item.Report.TransferabilityIndex < f.minimum
	})

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}
