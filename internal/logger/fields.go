package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/metrics"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the provider and model fields, skipping empty values.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// ReportFields summarizes a computed report for a single log entry.
func ReportFields(report *metrics.FullReport) []zap.Field {
	if report == nil {
		return nil
	}

	fields := StringFields(
		StringField{Key: "job_title", Value: report.JobTitle},
		StringField{Key: "risk_category", Value: string(report.RiskCategory)},
		StringField{Key: "quadrant", Value: report.Quadrant.Label},
	)

	return append(fields,
		zap.Int("tasks", len(report.Tasks)),
		zap.Int("skills", len(report.Skills)),
		zap.Int("automation_score", report.AutomationScore),
		zap.Int("augmentation_score", report.AugmentationScore),
		zap.Int("transferability_index", report.TransferabilityIndex),
		zap.Int("ai_readiness_score", report.AIReadinessScore),
	)
}
