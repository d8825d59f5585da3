package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SamplesAcquired принятые отсчеты геофона
	SamplesAcquired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geophone_samples_acquired_total",
			Help: "Total number of geophone samples pushed into the window",
		},
	)

	// SampleReadErrors ошибки чтения источника (тик пропущен)
	SampleReadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geophone_sample_read_errors_total",
			Help: "Total number of sample source read failures (tick skipped)",
		},
	)

	// ClassificationsTotal выполненные классификации по меткам
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total number of window classifications by label",
		},
		[]string{"label"},
	)

	// InferenceDuration длительность классификации
	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inference_duration_seconds",
			Help:    "Classifier inference duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// EventsDetected обнаруженные события по уровням серьезности
	EventsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seismic_events_detected_total",
			Help: "Total number of non-quiet classifications by severity",
		},
		[]string{"severity"},
	)

	// SinkFires вызовы alert sink по каналам
	SinkFires = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_sink_fires_total",
			Help: "Total number of alert sink fire calls by channel",
		},
		[]string{"channel"},
	)

	// WindowReady готовность окна (gauge 0/1)
	WindowReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sample_window_ready",
			Help: "Whether the sample window has been filled at least once",
		},
	)

	// AlertsSilenced состояние флага silence (gauge 0/1)
	AlertsSilenced = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alerts_silenced",
			Help: "Whether audible alerting is currently silenced",
		},
	)

	// EventCounters текущие значения накопительных счетчиков
	EventCounters = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_counters",
			Help: "Lifetime event counters by tier",
		},
		[]string{"tier"},
	)

	// Heartbeat пульс планировщика
	Heartbeat = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_heartbeat_total",
			Help: "Scheduler heartbeat ticks (one per second while running)",
		},
	)

	// RedisOperations операции с Redis
	RedisOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total number of Redis operations",
		},
		[]string{"operation", "status"},
	)

	// RequestsTotal общее количество HTTP запросов
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration продолжительность HTTP запросов
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)
