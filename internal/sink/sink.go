package sink

import "log"

// Channel канал вывода оповещения
type Channel string

const (
	// ChannelVisual визуальный канал (светодиод / индикатор)
	ChannelVisual Channel = "visual"
	// ChannelAudible звуковой канал (зуммер)
	ChannelAudible Channel = "audible"
)

// Pattern шаблон оповещения: число импульсов и длительность импульса.
// Выбор шаблона принадлежит политике, рендеринг — реализации sink.
type Pattern struct {
	Pulses  int `json:"pulses" yaml:"pulses"`
	PulseMs int `json:"pulse_ms" yaml:"pulse_ms"`
}

// Sink интерфейс выходного канала оповещений.
// Fire работает по принципу fire-and-forget: без возвращаемого значения,
// без блокировки дольше собственной длительности шаблона. SetLatch
// управляет удерживаемым критическим индикатором.
type Sink interface {
	Fire(channel Channel, p Pattern)
	SetLatch(on bool)
}

// Log рендерит оповещения в журнал процесса
type Log struct{}

// NewLog создает журнальный sink
func NewLog() *Log {
	return &Log{}
}

// Fire пишет строку оповещения в журнал
func (s *Log) Fire(channel Channel, p Pattern) {
	log.Printf("[ALERT] channel=%s pulses=%d pulse_ms=%d", channel, p.Pulses, p.PulseMs)
}

// SetLatch пишет состояние удерживаемого индикатора в журнал
func (s *Log) SetLatch(on bool) {
	if on {
		log.Println("[ALERT] latch ON")
	} else {
		log.Println("[ALERT] latch cleared")
	}
}

// Multi рассылает оповещения во все вложенные sink
type Multi struct {
	sinks []Sink
}

// NewMulti создает составной sink
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Fire передает вызов всем вложенным sink
func (m *Multi) Fire(channel Channel, p Pattern) {
	for _, s := range m.sinks {
		if s != nil {
			s.Fire(channel, p)
		}
	}
}

// SetLatch передает состояние удержания всем вложенным sink
func (m *Multi) SetLatch(on bool) {
	for _, s := range m.sinks {
		if s != nil {
			s.SetLatch(on)
		}
	}
}
