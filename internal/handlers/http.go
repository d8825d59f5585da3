package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"seismic-monitor/internal/metrics"
	"seismic-monitor/internal/models"
	"seismic-monitor/internal/silence"
	"seismic-monitor/internal/source"
)

// Monitor источник снимков состояния для HTTP API
type Monitor interface {
	Snapshot() models.StatusSnapshot
}

// Pinger проверка доступности внешнего sink (Redis)
type Pinger interface {
	Ping() error
}

// Handler обработчик HTTP запросов монитора
type Handler struct {
	monitor   Monitor
	button    *silence.PressInput
	synthetic *source.Synthetic
	sinkPing  Pinger
}

// NewHandler создает новый обработчик. synthetic и sinkPing опциональны.
func NewHandler(monitor Monitor, button *silence.PressInput, synthetic *source.Synthetic, sinkPing Pinger) *Handler {
	return &Handler{
		monitor:   monitor,
		button:    button,
		synthetic: synthetic,
		sinkPing:  sinkPing,
	}
}

// GetStatus обрабатывает GET /status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(r.Method, "/status").Observe(time.Since(start).Seconds())
	}()

	if r.Method != http.MethodGet {
		metrics.RequestsTotal.WithLabelValues(r.Method, "/status", "405").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	metrics.RequestsTotal.WithLabelValues(r.Method, "/status", "200").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.monitor.Snapshot())
}

// HealthCheck обрабатывает GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snapshot := h.monitor.Snapshot()

	status := "healthy"
	httpStatus := http.StatusOK

	sinkOK := true
	if h.sinkPing != nil {
		sinkOK = h.sinkPing.Ping() == nil
		if !sinkOK {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       status,
		"window_ready": snapshot.Ready,
		"alert_sink":   sinkOK,
		"timestamp":    time.Now(),
	})
}

// PressSilence обрабатывает POST /silence — кнопка оператора.
// Антидребезг и рефрактерный период остаются за ядром; здесь только
// установка флага нажатия.
func (h *Handler) PressSilence(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(r.Method, "/silence").Observe(time.Since(start).Seconds())
	}()

	if r.Method != http.MethodPost {
		metrics.RequestsTotal.WithLabelValues(r.Method, "/silence", "405").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.button.Press()

	metrics.RequestsTotal.WithLabelValues(r.Method, "/silence", "202").Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "pressed",
	})
}

// InjectEvent обрабатывает POST /inject?amplitude=0.08 — задает
// амплитуду синтетического события (только с синтетическим источником)
func (h *Handler) InjectEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(r.Method, "/inject").Observe(time.Since(start).Seconds())
	}()

	if r.Method != http.MethodPost {
		metrics.RequestsTotal.WithLabelValues(r.Method, "/inject", "405").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.synthetic == nil {
		metrics.RequestsTotal.WithLabelValues(r.Method, "/inject", "404").Inc()
		http.Error(w, "Synthetic source not configured", http.StatusNotFound)
		return
	}

	amplitude, err := strconv.ParseFloat(r.URL.Query().Get("amplitude"), 64)
	if err != nil || amplitude < 0 {
		metrics.RequestsTotal.WithLabelValues(r.Method, "/inject", "400").Inc()
		http.Error(w, "amplitude must be a non-negative number", http.StatusBadRequest)
		return
	}

	h.synthetic.SetEventAmplitude(amplitude)

	metrics.RequestsTotal.WithLabelValues(r.Method, "/inject", "200").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "injected",
		"amplitude": amplitude,
	})
}
