package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/transferability/internal/metrics"
)

var ErrEmptyResponse = errors.New("model returned empty response")

// ParseReport decodes a model answer into a validated RawReport.
// Markdown code fences around the JSON are tolerated.
func ParseReport(raw string) (*metrics.RawReport, error) {
	cleaned := ExtractJSON(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	report, err := metrics.DecodeRaw([]byte(cleaned))
	if err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	return report, nil
}

// ExtractJSON strips code fences and any prose around the outermost JSON object.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	return raw
}
