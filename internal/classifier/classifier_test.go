package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seismic-monitor/internal/models"
)

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAmplitudeQuietBelowBothThresholds(t *testing.T) {
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	label, confidence := c.Classify(flat(256, 0.01))
	assert.Equal(t, models.LabelNoise, label)
	assert.Equal(t, noiseConfidence, confidence)
}

func TestAmplitudeTremorBand(t *testing.T) {
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	label, confidence := c.Classify(flat(256, 0.03))
	assert.Equal(t, models.LabelTremor, label)
	assert.InDelta(t, 0.70+0.03*5.0, confidence, 1e-9)
}

func TestAmplitudeTremorClamp(t *testing.T) {
	// 0.70 + 0.049*5 = 0.945 < 1, без ограничения;
	// сразу под верхним порогом полосы clamp не срабатывает
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	_, confidence := c.Classify(flat(8, 0.049))
	assert.Less(t, confidence, 1.0)
}

func TestAmplitudeQuakeBand(t *testing.T) {
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	label, confidence := c.Classify(flat(256, 0.06))
	assert.Equal(t, models.LabelEarthquake, label)
	assert.InDelta(t, 0.85+0.06*2.0, confidence, 1e-9)
}

func TestAmplitudeQuakeConfidenceClamped(t *testing.T) {
	// 0.85 + 0.08*2 = 1.01 > 1 — уверенность ограничивается 0.98
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	label, confidence := c.Classify(flat(256, 0.08))
	assert.Equal(t, models.LabelEarthquake, label)
	assert.Equal(t, quakeConfidenceClamp, confidence)
}

func TestAmplitudeNegativeValuesUseAbs(t *testing.T) {
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	label, _ := c.Classify(flat(64, -0.08))
	assert.Equal(t, models.LabelEarthquake, label)
}

func TestAmplitudeEmptyWindow(t *testing.T) {
	c := NewAmplitude(DefaultTremorThreshold, DefaultQuakeThreshold)

	label, confidence := c.Classify(nil)
	assert.Equal(t, models.LabelNoise, label)
	assert.Zero(t, confidence)
}

func TestAmplitudeInvalidThresholdsFallBack(t *testing.T) {
	c := NewAmplitude(0.5, 0.1)

	label, _ := c.Classify(flat(16, 0.08))
	assert.Equal(t, models.LabelEarthquake, label)
}
