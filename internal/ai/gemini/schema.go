package gemini

import (
	"github.com/spigell/transferability/internal/metrics"
	"google.golang.org/genai"
)

func stringEnum[T ~string](values []T) *genai.Schema {
	enum := make([]string, 0, len(values))
	for _, v := range values {
		enum = append(enum, string(v))
	}
	return &genai.Schema{Type: genai.TypeString, Enum: enum}
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// reportSchema mirrors metrics.RawReport so the model can only answer with known labels.
func reportSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"jobTitle":         str,
			"executiveSummary": str,
			"riskCategory":     stringEnum(metrics.RiskCategories),
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"description":           str,
						"exposureLevel":         stringEnum(metrics.ExposureLevels),
						"augmentationPotential": stringEnum(metrics.AugmentationPotentials),
						"rationale":             str,
					},
					Required: []string{"description", "exposureLevel", "augmentationPotential", "rationale"},
				},
			},
			"skills": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":           str,
						"classification": stringEnum(metrics.SkillClasses),
						"rationale":      str,
					},
					Required: []string{"name", "classification", "rationale"},
				},
			},
			"recommendations": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"roleRedesign":         stringList(),
					"reskillingPriorities": stringList(),
					"techIntegration":      stringList(),
				},
				Required: []string{"roleRedesign", "reskillingPriorities", "techIntegration"},
			},
		},
		Required: []string{"jobTitle", "executiveSummary", "riskCategory", "tasks", "skills", "recommendations"},
	}
}
