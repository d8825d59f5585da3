package policy

import (
	"log"

	"seismic-monitor/internal/metrics"
	"seismic-monitor/internal/models"
	"seismic-monitor/internal/sink"
)

// Severity уровень серьезности обнаруженного события
type Severity string

const (
	// SeverityNone тихая классификация, событие отброшено
	SeverityNone Severity = "none"
	// SeverityAdvisory событие с низкой уверенностью
	SeverityAdvisory Severity = "advisory"
	// SeverityElevated событие с высокой уверенностью
	SeverityElevated Severity = "elevated"
	// SeverityCritical событие с очень высокой уверенностью
	SeverityCritical Severity = "critical"
)

// Пороги уверенности по умолчанию
const (
	DefaultElevatedConfidence = 0.85
	DefaultCriticalConfidence = 0.95
)

// Patterns шаблоны оповещения одного уровня по каналам
type Patterns struct {
	Visual  sink.Pattern `yaml:"visual"`
	Audible sink.Pattern `yaml:"audible"`
}

// PatternTable таблица шаблонов оповещения по уровням серьезности.
// Принадлежит политике: ядро выбирает шаблон, внешний sink его рендерит.
type PatternTable struct {
	Advisory Patterns `yaml:"advisory"`
	Elevated Patterns `yaml:"elevated"`
	Critical Patterns `yaml:"critical"`
}

// DefaultPatternTable возвращает шаблоны исходного устройства
func DefaultPatternTable() PatternTable {
	return PatternTable{
		Advisory: Patterns{
			Visual: sink.Pattern{Pulses: 2, PulseMs: 200},
		},
		Elevated: Patterns{
			Visual:  sink.Pattern{Pulses: 5, PulseMs: 100},
			Audible: sink.Pattern{Pulses: 3, PulseMs: 150},
		},
		Critical: Patterns{
			Visual:  sink.Pattern{Pulses: 10, PulseMs: 50},
			Audible: sink.Pattern{Pulses: 5, PulseMs: 100},
		},
	}
}

// Decision результат оценки классификации политикой
type Decision struct {
	Severity Severity
	Quiet    bool
}

// Policy отображает (метка, уверенность) в уровень серьезности и вызовы
// alert sink, ведет накопительные счетчики. Звуковые оповещения
// дополнительно гасятся флагом silence; визуальные и удерживаемые — нет:
// оператор должен видеть состояние даже в беззвучном режиме.
type Policy struct {
	elevatedMin float64
	criticalMin float64
	patterns    PatternTable
	sinks       sink.Sink
	counters    models.AlertCounters
	silenced    bool
	latched     bool
}

// New создает политику оповещений. Перевернутые или выходящие за [0,1]
// пороги заменяются значениями по умолчанию.
func New(elevatedMin, criticalMin float64, patterns PatternTable, sinks sink.Sink) *Policy {
	if elevatedMin <= 0 || criticalMin > 1 || criticalMin <= elevatedMin {
		elevatedMin = DefaultElevatedConfidence
		criticalMin = DefaultCriticalConfidence
	}
	return &Policy{
		elevatedMin: elevatedMin,
		criticalMin: criticalMin,
		patterns:    patterns,
		sinks:       sinks,
	}
}

// Evaluate оценивает результат классификации: тихие метки отбрасываются
// без какого-либо I/O, остальные тарифицируются по убыванию порога
// (>= на обеих границах, чтобы ровно 0.85 и 0.95 попадали в верхний
// уровень). Счетчики изменяются на месте; результат не сохраняется.
func (p *Policy) Evaluate(result models.ClassificationResult) Decision {
	// Защитное ограничение: подключенный классификатор может вернуть
	// уверенность вне [0,1], это не должно ронять цикл
	confidence := result.Confidence
	if confidence < 0 || confidence > 1 {
		log.Printf("classifier returned out-of-range confidence %.4f, clamping", confidence)
		confidence = clamp01(confidence)
	}

	if result.Label.Quiet() {
		return Decision{Severity: SeverityNone, Quiet: true}
	}

	p.counters.Total++

	var severity Severity
	switch {
	case confidence >= p.criticalMin:
		severity = SeverityCritical
		p.counters.Tier2++
		p.fire(sink.ChannelVisual, p.patterns.Critical.Visual)
		p.setLatch(true)
		if !p.silenced {
			p.fire(sink.ChannelAudible, p.patterns.Critical.Audible)
		}

	case confidence >= p.elevatedMin:
		severity = SeverityElevated
		p.counters.Tier1++
		p.fire(sink.ChannelVisual, p.patterns.Elevated.Visual)
		if !p.silenced {
			p.fire(sink.ChannelAudible, p.patterns.Elevated.Audible)
		}

	default:
		severity = SeverityAdvisory
		p.fire(sink.ChannelVisual, p.patterns.Advisory.Visual)
	}

	metrics.EventsDetected.WithLabelValues(string(severity)).Inc()
	metrics.EventCounters.WithLabelValues("total").Set(float64(p.counters.Total))
	metrics.EventCounters.WithLabelValues("tier1").Set(float64(p.counters.Tier1))
	metrics.EventCounters.WithLabelValues("tier2").Set(float64(p.counters.Tier2))

	log.Printf("SEISMIC EVENT: label=%s confidence=%.2f severity=%s inference=%dms total=%d tier1=%d tier2=%d",
		result.Label, confidence, severity, result.InferenceTime,
		p.counters.Total, p.counters.Tier1, p.counters.Tier2)

	return Decision{Severity: severity}
}

// SetSilenced устанавливает флаг беззвучного режима
func (p *Policy) SetSilenced(silenced bool) {
	p.silenced = silenced
	if silenced {
		metrics.AlertsSilenced.Set(1)
	} else {
		metrics.AlertsSilenced.Set(0)
	}
}

// Silenced возвращает текущее состояние беззвучного режима
func (p *Policy) Silenced() bool {
	return p.silenced
}

// Counters возвращает копию накопительных счетчиков
func (p *Policy) Counters() models.AlertCounters {
	return p.counters
}

// Latched сообщает, удерживается ли критический индикатор
func (p *Policy) Latched() bool {
	return p.latched
}

// ResetLatch сбрасывает удерживаемый критический индикатор
func (p *Policy) ResetLatch() {
	p.setLatch(false)
}

// Feedback запрашивает короткий подтверждающий шаблон на визуальном
// канале (используется переключателем silence: 1 импульс — включено,
// 3 импульса — выключено)
func (p *Policy) Feedback(pulses, pulseMs int) {
	p.fire(sink.ChannelVisual, sink.Pattern{Pulses: pulses, PulseMs: pulseMs})
}

func (p *Policy) fire(channel sink.Channel, pattern sink.Pattern) {
	if p.sinks == nil || pattern.Pulses == 0 {
		return
	}
	metrics.SinkFires.WithLabelValues(string(channel)).Inc()
	p.sinks.Fire(channel, pattern)
}

func (p *Policy) setLatch(on bool) {
	if p.sinks == nil {
		return
	}
	p.latched = on
	p.sinks.SetLatch(on)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
