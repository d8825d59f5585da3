package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"seismic-monitor/internal/policy"
)

// RedisConfig настройки Redis alert sink
type RedisConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Addr             string `yaml:"addr"`
	Password         string `yaml:"password"`
	DB               int    `yaml:"db"`
	RetentionMinutes int    `yaml:"retention_minutes"`
}

// Config конфигурация монитора. Значения по умолчанию повторяют
// константы исходного устройства; файл и environment их переопределяют.
type Config struct {
	ServerPort string `yaml:"server_port"`

	WindowSize        int `yaml:"window_size"`
	SamplePeriodMs    int `yaml:"sample_period_ms"`
	StatusPeriodMs    int `yaml:"status_period_ms"`
	HeartbeatPeriodMs int `yaml:"heartbeat_period_ms"`

	ElevatedConfidence float64 `yaml:"elevated_confidence"`
	CriticalConfidence float64 `yaml:"critical_confidence"`

	SilenceRefractoryMs int `yaml:"silence_refractory_ms"`

	TremorThreshold float64 `yaml:"tremor_threshold"`
	QuakeThreshold  float64 `yaml:"quake_threshold"`

	NoiseLevel     float64 `yaml:"noise_level"`
	AveragingReads int     `yaml:"averaging_reads"`

	Redis RedisConfig `yaml:"redis"`

	Patterns policy.PatternTable `yaml:"patterns"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		ServerPort:          "8080",
		WindowSize:          256,
		SamplePeriodMs:      10,
		StatusPeriodMs:      30000,
		HeartbeatPeriodMs:   1000,
		ElevatedConfidence:  policy.DefaultElevatedConfidence,
		CriticalConfidence:  policy.DefaultCriticalConfidence,
		SilenceRefractoryMs: 500,
		TremorThreshold:     0.02,
		QuakeThreshold:      0.05,
		NoiseLevel:          0.001,
		AveragingReads:      64,
		Redis: RedisConfig{
			Addr:             "localhost:6379",
			RetentionMinutes: 60,
		},
		Patterns: policy.DefaultPatternTable(),
	}
}

// Load собирает конфигурацию: умолчания, затем yaml файл из
// MONITOR_CONFIG (если задан), затем environment variables
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("MONITOR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.WindowSize = getEnvAsInt("WINDOW_SIZE", cfg.WindowSize)
	cfg.SamplePeriodMs = getEnvAsInt("SAMPLE_PERIOD_MS", cfg.SamplePeriodMs)
	cfg.StatusPeriodMs = getEnvAsInt("STATUS_PERIOD_MS", cfg.StatusPeriodMs)
	cfg.ElevatedConfidence = getEnvAsFloat("ELEVATED_CONFIDENCE", cfg.ElevatedConfidence)
	cfg.CriticalConfidence = getEnvAsFloat("CRITICAL_CONFIDENCE", cfg.CriticalConfidence)
	cfg.SilenceRefractoryMs = getEnvAsInt("SILENCE_REFRACTORY_MS", cfg.SilenceRefractoryMs)
	cfg.TremorThreshold = getEnvAsFloat("TREMOR_THRESHOLD", cfg.TremorThreshold)
	cfg.QuakeThreshold = getEnvAsFloat("QUAKE_THRESHOLD", cfg.QuakeThreshold)
	cfg.NoiseLevel = getEnvAsFloat("NOISE_LEVEL", cfg.NoiseLevel)
	cfg.AveragingReads = getEnvAsInt("AVERAGING_READS", cfg.AveragingReads)
	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", cfg.Redis.Enabled)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.RetentionMinutes = getEnvAsInt("REDIS_RETENTION_MINUTES", cfg.Redis.RetentionMinutes)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c Config) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("window_size must be positive, got %d", c.WindowSize)
	}
	if c.SamplePeriodMs < 1 {
		return fmt.Errorf("sample_period_ms must be positive, got %d", c.SamplePeriodMs)
	}
	if c.StatusPeriodMs < 1 {
		return fmt.Errorf("status_period_ms must be positive, got %d", c.StatusPeriodMs)
	}
	if c.ElevatedConfidence <= 0 || c.CriticalConfidence > 1 ||
		c.CriticalConfidence <= c.ElevatedConfidence {
		return fmt.Errorf("confidence thresholds must satisfy 0 < elevated < critical <= 1, got %.2f/%.2f",
			c.ElevatedConfidence, c.CriticalConfidence)
	}
	if c.QuakeThreshold <= c.TremorThreshold || c.TremorThreshold <= 0 {
		return fmt.Errorf("classifier thresholds must satisfy 0 < tremor < quake, got %.3f/%.3f",
			c.TremorThreshold, c.QuakeThreshold)
	}
	return nil
}

// ClassifyPeriodMs период классификации: время полного заполнения окна,
// чтобы каждый цикл потреблял существенно обновленное окно
func (c Config) ClassifyPeriodMs() int64 {
	return int64(c.WindowSize) * int64(c.SamplePeriodMs)
}

// RedisRetention возвращает TTL событий в Redis
func (c Config) RedisRetention() time.Duration {
	return time.Duration(c.Redis.RetentionMinutes) * time.Minute
}

// getEnv получает environment variable или возвращает default
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt получает environment variable как int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat получает environment variable как float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value float64
	if _, err := fmt.Sscanf(valueStr, "%f", &value); err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool получает environment variable как bool
func getEnvAsBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultValue
	}
}
