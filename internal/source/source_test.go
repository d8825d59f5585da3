package source

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoltageFromADC(t *testing.T) {
	assert.Zero(t, VoltageFromADC(0))
	assert.InDelta(t, 3.3, VoltageFromADC(4095), 1e-9)
	assert.InDelta(t, 1.65, VoltageFromADC(2047), 0.01)
}

func TestVelocityFromVoltage(t *testing.T) {
	// Сигнал в центре шкалы — нулевая скорость
	assert.InDelta(t, 0, VelocityFromVoltage(1.65), 1e-9)

	// Смещение на чувствительность — ровно 1 м/с... но шкала АЦП
	// столько не вместит; проверяем малое смещение
	assert.InDelta(t, 0.1/SensitivityVPerMS, VelocityFromVoltage(1.75), 1e-9)
	assert.Negative(t, VelocityFromVoltage(1.55))
}

func TestPlausible(t *testing.T) {
	assert.True(t, Plausible(0))
	assert.True(t, Plausible(-0.5))
	assert.False(t, Plausible(1.5))
	assert.False(t, Plausible(math.NaN()))
}

// fixedSource источник с постоянным значением
type fixedSource struct {
	value float64
	err   error
	reads int
}

func (f *fixedSource) Read() (float64, error) {
	f.reads++
	return f.value, f.err
}

func TestAveragingReadCount(t *testing.T) {
	inner := &fixedSource{value: 0.04}
	avg := NewAveraging(inner, 8)

	v, err := avg.Read()
	require.NoError(t, err)
	assert.InDelta(t, 0.04, v, 1e-9)
	assert.Equal(t, 8, inner.reads)
}

func TestAveragingPropagatesError(t *testing.T) {
	inner := &fixedSource{err: errors.New("adc fault")}
	avg := NewAveraging(inner, 4)

	_, err := avg.Read()
	assert.Error(t, err)
}

func TestSyntheticNoiseOnly(t *testing.T) {
	s := NewSynthetic(0.001, 42)

	var sum float64
	for i := 0; i < 256; i++ {
		v, err := s.Read()
		require.NoError(t, err)
		sum += math.Abs(v)
	}
	// Средняя амплитуда чистого шума много ниже порога tremor
	assert.Less(t, sum/256, 0.02)
}

func TestSyntheticEventAmplitude(t *testing.T) {
	s := NewSynthetic(0.0005, 42)
	s.SetEventAmplitude(0.08)

	var sum float64
	for i := 0; i < 256; i++ {
		v, err := s.Read()
		require.NoError(t, err)
		sum += math.Abs(v)
	}
	// Средняя абсолютная амплитуда сходится к инжектированной
	assert.InDelta(t, 0.08, sum/256, 0.01)

	s.SetEventAmplitude(0)
	assert.Zero(t, s.EventAmplitude())
}

func TestSyntheticNegativeAmplitudeClamped(t *testing.T) {
	s := NewSynthetic(0.001, 1)
	s.SetEventAmplitude(-1)
	assert.Zero(t, s.EventAmplitude())
}
