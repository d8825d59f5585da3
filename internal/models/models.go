package models

// Label — закрытое множество меток классификации
type Label int

const (
	// LabelNoise фоновый шум, событие отсутствует
	LabelNoise Label = iota
	// LabelTremor слабое сейсмическое событие
	LabelTremor
	// LabelEarthquake сильное сейсмическое событие
	LabelEarthquake
)

// String возвращает текстовое имя метки
func (l Label) String() string {
	switch l {
	case LabelNoise:
		return "noise"
	case LabelTremor:
		return "tremor"
	case LabelEarthquake:
		return "earthquake"
	default:
		return "unknown"
	}
}

// Quiet сообщает, является ли метка "тихой" (без события)
func (l Label) Quiet() bool {
	return l == LabelNoise
}

// Sample представляет одно калиброванное измерение геофона
type Sample struct {
	Velocity   float64 `json:"velocity_m_s"`
	RawVoltage float64 `json:"raw_voltage,omitempty"`
	RawADC     uint32  `json:"raw_adc,omitempty"`
	Timestamp  int64   `json:"timestamp_ms"`
}

// ClassificationResult результат одного цикла классификации
type ClassificationResult struct {
	Label         Label   `json:"-"`
	LabelName     string  `json:"label"`
	Confidence    float64 `json:"confidence"`
	InferenceTime int64   `json:"inference_time_ms"`
	Timestamp     int64   `json:"timestamp_ms"`
}

// AlertCounters накопительные счетчики событий за время жизни процесса
type AlertCounters struct {
	Total uint64 `json:"total"`
	Tier1 uint64 `json:"tier1"`
	Tier2 uint64 `json:"tier2"`
}

// StatusSnapshot снимок состояния монитора для status reporter и HTTP API
type StatusSnapshot struct {
	Ready          bool          `json:"ready"`
	Silenced       bool          `json:"silenced"`
	Counters       AlertCounters `json:"counters"`
	Samples        uint64        `json:"samples"`
	LastSample     Sample        `json:"last_sample"`
	LastLabel      string        `json:"last_label,omitempty"`
	LastConfidence float64       `json:"last_confidence,omitempty"`
	UptimeMs       int64         `json:"uptime_ms"`
}
