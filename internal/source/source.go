package source

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
)

// Source интерфейс источника отсчетов: одно калиброванное скалярное
// измерение (скорость грунта, м/с) за вызов. Ошибка чтения означает,
// что значение недоступно и тик должен быть пропущен.
type Source interface {
	Read() (float64, error)
}

// Характеристики геофона SM-24 и АЦП исходного устройства
const (
	// SensitivityVPerMS чувствительность SM-24, В/(м/с)
	SensitivityVPerMS = 28.8
	// VRef опорное напряжение АЦП
	VRef = 3.3
	// adcMax 12-битный АЦП (0-4095)
	adcMax = 4095
	// MaxPlausibleVelocity физически правдоподобный предел скорости, м/с.
	// Значения за пределом считаются недоступными, как и ошибки чтения.
	MaxPlausibleVelocity = 1.0
)

// VoltageFromADC преобразует сырое значение 12-битного АЦП в напряжение
func VoltageFromADC(raw uint32) float64 {
	return float64(raw) * VRef / adcMax
}

// VelocityFromVoltage преобразует напряжение в скорость грунта.
// SM-24 выдает биполярный сигнал с центром Vcc/2.
func VelocityFromVoltage(voltage float64) float64 {
	center := VRef / 2.0
	return (voltage - center) / SensitivityVPerMS
}

// Plausible проверяет физическую правдоподобность значения
func Plausible(velocity float64) bool {
	return !math.IsNaN(velocity) && math.Abs(velocity) <= MaxPlausibleVelocity
}

// Averaging усредняющая обертка источника: N под-чтений на один отсчет
// для подавления шума, как усреднение АЦП в исходном устройстве.
// Любая ошибка под-чтения делает весь отсчет недоступным.
type Averaging struct {
	inner Source
	n     int
}

// DefaultAveragingReads число под-чтений по умолчанию
const DefaultAveragingReads = 64

// NewAveraging создает усредняющую обертку
func NewAveraging(inner Source, n int) *Averaging {
	if n < 1 {
		n = DefaultAveragingReads
	}
	return &Averaging{inner: inner, n: n}
}

// Read возвращает среднее N под-чтений
func (a *Averaging) Read() (float64, error) {
	var sum float64
	for i := 0; i < a.n; i++ {
		v, err := a.inner.Read()
		if err != nil {
			return 0, fmt.Errorf("averaging sub-read %d/%d: %w", i+1, a.n, err)
		}
		sum += v
	}
	return sum / float64(a.n), nil
}

// Synthetic синтетический геофон: гауссов фоновый шум плюс
// инжектируемая амплитуда события. Амплитуда пишется из HTTP goroutine
// и читается циклом планировщика, поэтому хранится атомарно.
type Synthetic struct {
	noise    float64
	eventAmp atomic.Uint64
	rng      *rand.Rand
}

// NewSynthetic создает синтетический источник с заданным уровнем шума
func NewSynthetic(noise float64, seed int64) *Synthetic {
	if noise < 0 {
		noise = 0
	}
	return &Synthetic{
		noise: noise,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// SetEventAmplitude задает амплитуду инжектируемого события
// (0 — только фоновый шум)
func (s *Synthetic) SetEventAmplitude(amp float64) {
	if amp < 0 {
		amp = 0
	}
	s.eventAmp.Store(math.Float64bits(amp))
}

// EventAmplitude возвращает текущую инжектируемую амплитуду
func (s *Synthetic) EventAmplitude() float64 {
	return math.Float64frombits(s.eventAmp.Load())
}

// Read возвращает очередной синтетический отсчет: гауссов шум плюс
// постоянное смещение события. Смещение переживает усреднение
// под-чтений, средняя абсолютная амплитуда окна сходится к заданной.
func (s *Synthetic) Read() (float64, error) {
	return s.rng.NormFloat64()*s.noise + s.EventAmplitude(), nil
}
