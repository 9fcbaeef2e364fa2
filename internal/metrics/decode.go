package metrics

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeRaw decodes the labeling model output into a RawReport and validates it.
// Every top-level key and every key of task, skill and recommendation records
// is required. Unknown keys are ignored.
func DecodeRaw(data []byte) (*RawReport, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	return DecodeRawMap(payload)
}

// DecodeRawMap is DecodeRaw for an already unmarshalled JSON object.
func DecodeRawMap(payload map[string]any) (*RawReport, error) {
	var raw RawReport

	cfg := &mapstructure.DecoderConfig{
		Result:     &raw,
		TagName:    "mapstructure",
		ErrorUnset: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := raw.Validate(); err != nil {
		return nil, err
	}

	return &raw, nil
}

// Validate checks every enumerated label. It stops at the first offending record.
func (r *RawReport) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: report is nil", ErrMalformed)
	}

	if _, err := ParseRiskCategory(string(r.RiskCategory)); err != nil {
		return &FieldError{Field: "riskCategory", Index: -1, Value: string(r.RiskCategory), Err: err}
	}

	for i, task := range r.Tasks {
		if _, err := ParseExposureLevel(string(task.ExposureLevel)); err != nil {
			return &FieldError{Field: "tasks.exposureLevel", Index: i, Value: string(task.ExposureLevel), Err: err}
		}
		if _, err := ParseAugmentationPotential(string(task.AugmentationPotential)); err != nil {
			return &FieldError{Field: "tasks.augmentationPotential", Index: i, Value: string(task.AugmentationPotential), Err: err}
		}
	}

	for i, skill := range r.Skills {
		if _, err := ParseSkillClass(string(skill.Classification)); err != nil {
			return &FieldError{Field: "skills.classification", Index: i, Value: string(skill.Classification), Err: err}
		}
	}

	return nil
}
