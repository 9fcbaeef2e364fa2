package metrics

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceWithoutJitter(t *testing.T) {
	tests := []struct {
		task TaskRecord
		x, y float64
	}{
		{task: task(ExposureNone, AugmentationLow), x: 5, y: 15},
		{task: task(ExposureDirectLLM, AugmentationHigh), x: 100, y: 85},
		{task: task(ExposureAppBased, AugmentationMedium), x: 50, y: 50},
		{task: task(ExposureMultimodal, AugmentationLow), x: 30, y: 15},
	}

	engine := newTestEngine(0.5)
	for _, tt := range tests {
		placed := engine.Place([]TaskRecord{tt.task})
		require.Len(t, placed, 1)

		assert.InDelta(t, tt.x, placed[0].X, 1e-9, tt.task.Description)
		assert.InDelta(t, tt.y, placed[0].Y, 1e-9, tt.task.Description)
		assert.Equal(t, tt.task, placed[0].TaskRecord)
	}
}

func TestPlaceClampsExtremeJitter(t *testing.T) {
	low := newTestEngine(0).Place([]TaskRecord{task(ExposureNone, AugmentationLow)})
	// 0.05 - 0.08 < 0
	assert.Equal(t, 0.0, low[0].X)
	assert.InDelta(t, 7, low[0].Y, 1e-9)

	high := newTestEngine(0.999999).Place([]TaskRecord{task(ExposureDirectLLM, AugmentationHigh)})
	// 1.0 + 0.08 > 1
	assert.Equal(t, 100.0, high[0].X)
	assert.InDelta(t, 93, high[0].Y, 1e-3)
}

func TestPlaceStaysInBounds(t *testing.T) {
	engines := []*Engine{
		newTestEngine(0),
		newTestEngine(0.999999),
		New(WithJitter(rand.New(rand.NewPCG(1, 2)))),
		New(),
	}

	var tasks []TaskRecord
	for _, e := range ExposureLevels {
		for _, a := range AugmentationPotentials {
			tasks = append(tasks, task(e, a))
		}
	}

	for _, engine := range engines {
		for run := 0; run < 50; run++ {
			for _, p := range engine.Place(tasks) {
				assert.GreaterOrEqual(t, p.X, 0.0)
				assert.LessOrEqual(t, p.X, 100.0)
				assert.GreaterOrEqual(t, p.Y, 0.0)
				assert.LessOrEqual(t, p.Y, 100.0)
			}
		}
	}
}

func TestPlaceEmpty(t *testing.T) {
	placed := New().Place(nil)
	assert.NotNil(t, placed)
	assert.Empty(t, placed)
}
