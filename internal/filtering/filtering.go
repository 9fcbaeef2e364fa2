// Package filtering drops scored reports that do not pass the configured gates.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/batch"
)

// Filter represents a single filtering step applied to scored reports.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, r *batch.Results) (*batch.Results, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config mirrors the filters section of the configuration file.
type Config struct {
	MinTransferability int      `mapstructure:"min-transferability"`
	Quadrants          []string `mapstructure:"quadrants"`
	RiskCategories     []string `mapstructure:"risk-categories"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// FromConfig builds the standard chain. Steps with nothing configured are
// kept but disabled so they show up in Describe.
func FromConfig(cfg *Config, logger *zap.Logger) *Filtering {
	if cfg == nil {
		cfg = &Config{}
	}

	return New([]Filter{
		NewMinTransferability(cfg.MinTransferability),
		NewQuadrants(cfg.Quadrants),
		NewRiskCategories(cfg.RiskCategories),
	}, logger)
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func (f *Filtering) DisableByName(name, reason string) {
	for _, step := range f.steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Validate checks every enabled step before anything is applied.
func (f *Filtering) Validate() error {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return nil
}

// RunFilters executes the enabled filters sequentially.
func (f *Filtering) RunFilters(ctx context.Context, r *batch.Results) (*batch.Results, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
	}

	return r, nil
}

// Describe returns status entries for the configured filters.
func (f *Filtering) Describe() []Status {
	statuses := make([]Status, 0, len(f.steps))
	for _, step := range f.steps {
		status := Status{Name: step.Name(), Enabled: step.IsEnabled()}
		if reporter, ok := step.(interface{ Reason() string }); ok {
			status.Reason = reporter.Reason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// toggle carries the enabled flag shared by all steps.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) Reason() string { return t.reason }
