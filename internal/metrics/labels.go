package metrics

import "fmt"

// ExposureLevel is the GenAI exposure of a task, from none (E0) to multimodal (E3).
type ExposureLevel string

const (
	ExposureNone       ExposureLevel = "E0"
	ExposureDirectLLM  ExposureLevel = "E1"
	ExposureAppBased   ExposureLevel = "E2"
	ExposureMultimodal ExposureLevel = "E3"
)

// ExposureLevels lists every valid exposure level in order.
var ExposureLevels = []ExposureLevel{ExposureNone, ExposureDirectLLM, ExposureAppBased, ExposureMultimodal}

func (e ExposureLevel) Valid() bool {
	switch e {
	case ExposureNone, ExposureDirectLLM, ExposureAppBased, ExposureMultimodal:
		return true
	}
	return false
}

// ParseExposureLevel returns an error for anything outside E0..E3.
func ParseExposureLevel(s string) (ExposureLevel, error) {
	e := ExposureLevel(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown exposure level %q", s)
	}
	return e, nil
}

// AugmentationPotential is the depth of human-AI collaboration on a task.
type AugmentationPotential string

const (
	AugmentationLow    AugmentationPotential = "Low"
	AugmentationMedium AugmentationPotential = "Medium"
	AugmentationHigh   AugmentationPotential = "High"
)

var AugmentationPotentials = []AugmentationPotential{AugmentationLow, AugmentationMedium, AugmentationHigh}

func (a AugmentationPotential) Valid() bool {
	switch a {
	case AugmentationLow, AugmentationMedium, AugmentationHigh:
		return true
	}
	return false
}

func ParseAugmentationPotential(s string) (AugmentationPotential, error) {
	a := AugmentationPotential(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown augmentation potential %q", s)
	}
	return a, nil
}

// SkillClass is the relevance of a skill to AI tooling.
type SkillClass string

const (
	SkillIrrelevant    SkillClass = "S0"
	SkillAIRelevant    SkillClass = "S1"
	SkillComplemented  SkillClass = "S2"
	SkillSubstitutable SkillClass = "S3"
)

var SkillClasses = []SkillClass{SkillIrrelevant, SkillAIRelevant, SkillComplemented, SkillSubstitutable}

func (s SkillClass) Valid() bool {
	switch s {
	case SkillIrrelevant, SkillAIRelevant, SkillComplemented, SkillSubstitutable:
		return true
	}
	return false
}

func ParseSkillClass(s string) (SkillClass, error) {
	c := SkillClass(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown skill classification %q", s)
	}
	return c, nil
}

// RiskCategory is assigned by the labeling model and carried through verbatim.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low"
	RiskMedium   RiskCategory = "Medium"
	RiskHigh     RiskCategory = "High"
	RiskCritical RiskCategory = "Critical"
)

var RiskCategories = []RiskCategory{RiskLow, RiskMedium, RiskHigh, RiskCritical}

func (r RiskCategory) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

func ParseRiskCategory(s string) (RiskCategory, error) {
	r := RiskCategory(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown risk category %q", s)
	}
	return r, nil
}

// Quadrant labels.
const (
	QuadrantHybrid       = "Hybrid Transformation"
	QuadrantDisplacement = "Displacement Risk"
	QuadrantAugmentation = "Augmentation Opportunity"
	QuadrantStable       = "Stable Role"
	QuadrantUnknown      = "Unknown"
)

// Quadrants lists the labels Classify can return.
var Quadrants = []string{QuadrantHybrid, QuadrantDisplacement, QuadrantAugmentation, QuadrantStable}

// ParseQuadrant matches a quadrant label exactly, Unknown included.
func ParseQuadrant(s string) (string, error) {
	if s == QuadrantUnknown {
		return s, nil
	}
	for _, q := range Quadrants {
		if q == s {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quadrant %q", s)
}
