package metrics

import "time"

// TaskRecord is a single task extracted from a job posting and labeled by the model.
type TaskRecord struct {
	Description           string                `json:"description" yaml:"description" mapstructure:"description"`
	ExposureLevel         ExposureLevel         `json:"exposureLevel" yaml:"exposureLevel" mapstructure:"exposureLevel"`
	AugmentationPotential AugmentationPotential `json:"augmentationPotential" yaml:"augmentationPotential" mapstructure:"augmentationPotential"`
	Rationale             string                `json:"rationale" yaml:"rationale" mapstructure:"rationale"`
}

// ProcessedTask is a TaskRecord placed on the automation (X) / augmentation (Y) plane.
// Both coordinates are within [0, 100].
type ProcessedTask struct {
	TaskRecord `yaml:",inline" mapstructure:",squash"`

	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

type SkillRecord struct {
	Name           string     `json:"name" yaml:"name" mapstructure:"name"`
	Classification SkillClass `json:"classification" yaml:"classification" mapstructure:"classification"`
	Rationale      string     `json:"rationale" yaml:"rationale" mapstructure:"rationale"`
}

type Recommendations struct {
	RoleRedesign         []string `json:"roleRedesign" yaml:"roleRedesign" mapstructure:"roleRedesign"`
	ReskillingPriorities []string `json:"reskillingPriorities" yaml:"reskillingPriorities" mapstructure:"reskillingPriorities"`
	TechIntegration      []string `json:"techIntegration" yaml:"techIntegration" mapstructure:"techIntegration"`
}

// RawReport is the labeled extraction produced by the external model.
type RawReport struct {
	JobTitle         string          `json:"jobTitle" yaml:"jobTitle" mapstructure:"jobTitle"`
	Tasks            []TaskRecord    `json:"tasks" yaml:"tasks" mapstructure:"tasks"`
	Skills           []SkillRecord   `json:"skills" yaml:"skills" mapstructure:"skills"`
	RiskCategory     RiskCategory    `json:"riskCategory" yaml:"riskCategory" mapstructure:"riskCategory"`
	ExecutiveSummary string          `json:"executiveSummary" yaml:"executiveSummary" mapstructure:"executiveSummary"`
	Recommendations  Recommendations `json:"recommendations" yaml:"recommendations" mapstructure:"recommendations"`
}

type Quadrant struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Label string  `json:"label" yaml:"label"`
}

// ComputedMetrics holds the aggregate scores. All scores are integers in [0, 100].
type ComputedMetrics struct {
	AutomationScore      int      `json:"automationScore" yaml:"automationScore"`
	AugmentationScore    int      `json:"augmentationScore" yaml:"augmentationScore"`
	TransferabilityIndex int      `json:"transferabilityIndex" yaml:"transferabilityIndex"`
	AIReadinessScore     int      `json:"aiReadinessScore" yaml:"aiReadinessScore"`
	Quadrant             Quadrant `json:"quadrant" yaml:"quadrant"`
}

// FullReport is the RawReport with placed tasks and computed metrics.
type FullReport struct {
	JobTitle         string          `json:"jobTitle" yaml:"jobTitle"`
	Tasks            []ProcessedTask `json:"tasks" yaml:"tasks"`
	Skills           []SkillRecord   `json:"skills" yaml:"skills"`
	RiskCategory     RiskCategory    `json:"riskCategory" yaml:"riskCategory"`
	ExecutiveSummary string          `json:"executiveSummary" yaml:"executiveSummary"`
	Recommendations  Recommendations `json:"recommendations" yaml:"recommendations"`

	ComputedMetrics `yaml:",inline"`

	AnalysisDate time.Time `json:"analysisDate" yaml:"analysisDate"`
}
