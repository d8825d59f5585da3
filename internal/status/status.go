package status

import (
	"log"

	"seismic-monitor/internal/metrics"
	"seismic-monitor/internal/models"
)

// Reporter интерфейс потребителя периодического статуса.
// Чисто наблюдательный: без побочных эффектов для ядра.
type Reporter interface {
	Report(snapshot models.StatusSnapshot)
}

// Log пишет однострочный отчет в журнал процесса
type Log struct{}

// NewLog создает журнальный reporter
func NewLog() *Log {
	return &Log{}
}

// Report пишет снимок состояния в журнал
func (r *Log) Report(s models.StatusSnapshot) {
	buffer := "filling"
	if s.Ready {
		buffer = "ready"
	}
	alerts := "enabled"
	if s.Silenced {
		alerts = "silenced"
	}
	log.Printf("STATUS: buffer=%s samples=%d events=%d high=%d critical=%d alerts=%s uptime=%ds",
		buffer, s.Samples, s.Counters.Total, s.Counters.Tier1, s.Counters.Tier2,
		alerts, s.UptimeMs/1000)
}

// Metrics обновляет Prometheus gauges по снимку состояния
type Metrics struct{}

// NewMetrics создает metrics reporter
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Report переносит снимок состояния в gauges
func (r *Metrics) Report(s models.StatusSnapshot) {
	if s.Ready {
		metrics.WindowReady.Set(1)
	} else {
		metrics.WindowReady.Set(0)
	}
	if s.Silenced {
		metrics.AlertsSilenced.Set(1)
	} else {
		metrics.AlertsSilenced.Set(0)
	}
	metrics.EventCounters.WithLabelValues("total").Set(float64(s.Counters.Total))
	metrics.EventCounters.WithLabelValues("tier1").Set(float64(s.Counters.Tier1))
	metrics.EventCounters.WithLabelValues("tier2").Set(float64(s.Counters.Tier2))
}

// Multi рассылает снимок всем вложенным reporter
type Multi struct {
	reporters []Reporter
}

// NewMulti создает составной reporter
func NewMulti(reporters ...Reporter) *Multi {
	return &Multi{reporters: reporters}
}

// Report передает снимок всем вложенным reporter
func (m *Multi) Report(s models.StatusSnapshot) {
	for _, r := range m.reporters {
		if r != nil {
			r.Report(s)
		}
	}
}
