package filtering

import (
	"context"

	"github.com/spigell/transferability/internal/batch"
	"github.com/spigell/transferability/internal/metrics"
)

type riskCategoriesFilter struct {
	toggle
	names   []string
	allowed map[metrics.RiskCategory]bool
}

// NewRiskCategories keeps only reports with one of the listed risk categories.
func NewRiskCategories(names []string) Filter {
	f := &riskCategoriesFilter{names: names}
	if len(names) == 0 {
		f.Disable("no risk categories configured")
	}
	return f
}

func (f *riskCategoriesFilter) Name() string { return "risk_categories" }

func (f *riskCategoriesFilter) Validate() error {
	f.allowed = make(map[metrics.RiskCategory]bool, len(f.names))
	for _, name := range f.names {
		category, err := metrics.ParseRiskCategory(name)
		if err != nil {
			return err
		}
		f.allowed[category] = true
	}
	return nil
}

func (f *riskCategoriesFilter) Apply(_ context.Context, r *batch.Results) (*batch.Results, Step, error) {
	initial := r.Len()
	excluded := r.Exclude(func(item *batch.Result) bool {
		return !f.allowed[item.Report.RiskCategory]
	})

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}
