package metrics

import "math"

// Weights of the transferability index.
const (
	weightAutomation   = 0.6
	weightAugmentation = 0.4
)

// quadrantThreshold splits both axes; values equal to it fall on the lower side.
const quadrantThreshold = 50.0

// exposureFactor is the automation strength per exposure level used by the
// aggregate score. It mirrors placementX except for E0.
var exposureFactor = map[ExposureLevel]float64{
	ExposureNone:       0.0,
	ExposureDirectLLM:  1.0,
	ExposureAppBased:   0.5,
	ExposureMultimodal: 0.3,
}

var readinessWeight = map[SkillClass]float64{
	SkillIrrelevant:    0.0,
	SkillAIRelevant:    1.0,
	SkillComplemented:  0.5,
	SkillSubstitutable: 0.0,
}

// automationScore is the mean exposure factor scaled to [0, 100], unrounded.
func automationScore(tasks []TaskRecord) float64 {
	if len(tasks) == 0 {
		return 0
	}

	var sum float64
	for _, task := range tasks {
		sum += exposureFactor[task.ExposureLevel]
	}

	return clamp(sum/float64(len(tasks))*100, 0, 100)
}

// augmentationScore is the Gini-Simpson index of the exposed/non-exposed split,
// rescaled from [0, 0.5] to [0, 100], unrounded.
func augmentationScore(tasks []TaskRecord) float64 {
	if len(tasks) == 0 {
		return 0
	}

	exposed := 0
	for _, task := range tasks {
		if task.ExposureLevel != ExposureNone {
			exposed++
		}
	}

	p := float64(exposed) / float64(len(tasks))
	diversity := 1 - (p*p + (1-p)*(1-p))

	return diversity * 2 * 100
}

func transferabilityIndex(automation, augmentation float64) float64 {
	return automation*weightAutomation + augmentation*weightAugmentation
}

// ReadinessScore is the weighted share of AI-relevant (S1) and
// AI-complemented (S2, half weight) skills, as a percentage. No skills gives 0.
func ReadinessScore(skills []SkillRecord) int {
	if len(skills) == 0 {
		return 0
	}

	var sum float64
	for _, skill := range skills {
		sum += readinessWeight[skill.Classification]
	}

	return roundScore(sum / float64(len(skills)) * 100)
}

// Classify maps automation (x) and augmentation (y) scores to a quadrant label.
func Classify(x, y float64) string {
	switch {
	case x > quadrantThreshold && y > quadrantThreshold:
		return QuadrantHybrid
	case x > quadrantThreshold:
		return QuadrantDisplacement
	case y > quadrantThreshold:
		return QuadrantAugmentation
	default:
		return QuadrantStable
	}
}

func roundScore(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}
