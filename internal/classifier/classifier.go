package classifier

import (
	"math"

	"seismic-monitor/internal/models"
)

// Classifier интерфейс классификатора сейсмического окна.
// Реализация обязана быть чистой функцией снимка окна (без скрытого
// состояния), возвращать метку из закрытого множества и уверенность
// в [0,1] — тогда ее можно заменить, не трогая остальные компоненты.
type Classifier interface {
	Classify(samples []float64) (models.Label, float64)
}

// Amplitude пороговый классификатор-заглушка по средней амплитуде.
// Стоит на месте будущей CNN-LSTM модели: считает среднее абсолютное
// значение окна и отображает его через два порога в одну из трех меток,
// уверенность — аффинная функция амплитуды с ограничением внутри полосы.
type Amplitude struct {
	tremorThreshold float64
	quakeThreshold  float64
}

// Пороги и ограничения уверенности полосовой классификации
const (
	DefaultTremorThreshold = 0.02
	DefaultQuakeThreshold  = 0.05

	quakeConfidenceBase  = 0.85
	quakeConfidenceGain  = 2.0
	quakeConfidenceClamp = 0.98

	tremorConfidenceBase  = 0.70
	tremorConfidenceGain  = 5.0
	tremorConfidenceClamp = 0.85

	noiseConfidence = 0.95
)

// NewAmplitude создает пороговый классификатор.
// Неположительные или перевернутые пороги заменяются значениями
// по умолчанию.
func NewAmplitude(tremorThreshold, quakeThreshold float64) *Amplitude {
	if tremorThreshold <= 0 || quakeThreshold <= tremorThreshold {
		tremorThreshold = DefaultTremorThreshold
		quakeThreshold = DefaultQuakeThreshold
	}
	return &Amplitude{
		tremorThreshold: tremorThreshold,
		quakeThreshold:  quakeThreshold,
	}
}

// Classify классифицирует окно по средней абсолютной амплитуде
func (a *Amplitude) Classify(samples []float64) (models.Label, float64) {
	if len(samples) == 0 {
		return models.LabelNoise, 0
	}

	var sum float64
	for _, v := range samples {
		sum += math.Abs(v)
	}
	avg := sum / float64(len(samples))

	switch {
	case avg > a.quakeThreshold:
		confidence := quakeConfidenceBase + avg*quakeConfidenceGain
		if confidence > 1.0 {
			confidence = quakeConfidenceClamp
		}
		return models.LabelEarthquake, confidence

	case avg > a.tremorThreshold:
		confidence := tremorConfidenceBase + avg*tremorConfidenceGain
		if confidence > 1.0 {
			confidence = tremorConfidenceClamp
		}
		return models.LabelTremor, confidence

	default:
		return models.LabelNoise, noiseConfidence
	}
}
