// Package metrics turns a labeled job posting extraction into a transferability report.
//
// The engine is a pure transform: it reads only its input, the clock and a
// jitter source used for task placement. Aggregate scores never depend on
// jitter.
package metrics

import (
	"math/rand/v2"
	"time"
)

// JitterSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type JitterSource interface {
	Float64() float64
}

type globalRand struct{}

// Float64 uses the goroutine-safe top-level generator.
func (globalRand) Float64() float64 { return rand.Float64() }

// Engine computes FullReports. The zero value is not usable; use New.
type Engine struct {
	jitter JitterSource
	now    func() time.Time
}

type Option func(*Engine)

// WithJitter replaces the random source used for task placement.
// A source shared between goroutines must be safe for concurrent use.
func WithJitter(src JitterSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.jitter = src
		}
	}
}

// WithClock replaces the clock used to stamp AnalysisDate.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		jitter: globalRand{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Compute is Engine.Compute with the default jitter source and clock.
func Compute(raw *RawReport) (*FullReport, error) {
	return defaultEngine.Compute(raw)
}

// Compute validates raw and builds the full report.
// It returns a *FieldError or an error wrapping ErrMalformed on invalid input
// and never returns a partially computed report.
func (e *Engine) Compute(raw *RawReport) (*FullReport, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	report := &FullReport{
		JobTitle:         raw.JobTitle,
		Tasks:            []ProcessedTask{},
		Skills:           raw.Skills,
		RiskCategory:     raw.RiskCategory,
		ExecutiveSummary: raw.ExecutiveSummary,
		Recommendations:  raw.Recommendations,
		AnalysisDate:     e.now().UTC(),
	}

	if len(raw.Tasks) == 0 {
		report.ComputedMetrics = ComputedMetrics{
			Quadrant: Quadrant{Label: QuadrantUnknown},
		}
		return report, nil
	}

	report.Tasks = e.Place(raw.Tasks)

	// The index and the quadrant are derived from the reported integer
	// scores, so the label always agrees with Classify on the output.
	automation := float64(roundScore(automationScore(raw.Tasks)))
	augmentation := float64(roundScore(augmentationScore(raw.Tasks)))

	report.ComputedMetrics = ComputedMetrics{
		AutomationScore:      int(automation),
		AugmentationScore:    int(augmentation),
		TransferabilityIndex: roundScore(transferabilityIndex(automation, augmentation)),
		AIReadinessScore:     ReadinessScore(raw.Skills),
		Quadrant: Quadrant{
			X:     automation,
			Y:     augmentation,
			Label: Classify(automation, augmentation),
		},
	}

	return report, nil
}
