package metrics

const jitterSpread = 0.16 // jitter is within ±jitterSpread/2

// placementX is the base automation coordinate per exposure level.
// E0 sits slightly off the axis so no task is drawn on it.
var placementX = map[ExposureLevel]float64{
	ExposureNone:       0.05,
	ExposureDirectLLM:  1.0,
	ExposureAppBased:   0.5,
	ExposureMultimodal: 0.3,
}

// placementY is the base augmentation coordinate per augmentation potential.
var placementY = map[AugmentationPotential]float64{
	AugmentationLow:    0.15,
	AugmentationMedium: 0.5,
	AugmentationHigh:   0.85,
}

// Place positions each task on the automation/augmentation plane.
// Tasks must already be validated. The input slice is not modified.
func (e *Engine) Place(tasks []TaskRecord) []ProcessedTask {
	placed := make([]ProcessedTask, 0, len(tasks))
	for _, task := range tasks {
		x := (placementX[task.ExposureLevel] + e.jitterValue()) * 100
		y := (placementY[task.AugmentationPotential] + e.jitterValue()) * 100

		placed = append(placed, ProcessedTask{
			TaskRecord: task,
			X:          clamp(x, 0, 100),
			Y:          clamp(y, 0, 100),
		})
	}
	return placed
}

func (e *Engine) jitterValue() float64 {
	return (e.jitter.Float64() - 0.5) * jitterSpread
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
