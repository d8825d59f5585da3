package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seismic-monitor/internal/classifier"
	"seismic-monitor/internal/config"
	"seismic-monitor/internal/handlers"
	"seismic-monitor/internal/policy"
	"seismic-monitor/internal/scheduler"
	"seismic-monitor/internal/silence"
	"seismic-monitor/internal/sink"
	"seismic-monitor/internal/source"
	"seismic-monitor/internal/status"
	"seismic-monitor/internal/window"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.Println("Starting Seismic Monitoring Service...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config: window=%d sample=%dms classify=%dms status=%dms",
		cfg.WindowSize, cfg.SamplePeriodMs, cfg.ClassifyPeriodMs(), cfg.StatusPeriodMs)

	// Выходные каналы оповещений: журнал всегда, Redis по конфигурации
	logSink := sink.NewLog()
	sinks := []sink.Sink{logSink}

	var redisSink *sink.Redis
	if cfg.Redis.Enabled {
		redisSink, err = sink.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.RedisRetention())
		if err != nil {
			// Sink — не причина не запускаться: монитор важнее оповещений
			log.Printf("Redis sink unavailable, continuing without it: %v", err)
		} else {
			defer redisSink.Close()
			sinks = append(sinks, redisSink)
			log.Println("Connected to Redis alert sink")
		}
	}
	alertSink := sink.NewMulti(sinks...)

	// Источник: синтетический геофон с усреднением под-чтений,
	// как усреднение АЦП исходного устройства
	synthetic := source.NewSynthetic(cfg.NoiseLevel, time.Now().UnixNano())
	sampleSource := source.NewAveraging(synthetic, cfg.AveragingReads)

	sampleWindow := window.New(cfg.WindowSize)
	amplitudeClassifier := classifier.NewAmplitude(cfg.TremorThreshold, cfg.QuakeThreshold)
	alertPolicy := policy.New(cfg.ElevatedConfidence, cfg.CriticalConfidence, cfg.Patterns, alertSink)

	button := silence.NewPressInput()
	toggle := silence.NewToggle(button, int64(cfg.SilenceRefractoryMs))

	reporter := status.NewMulti(status.NewLog(), status.NewMetrics())

	sched := scheduler.New(scheduler.Config{
		SamplePeriodMs:    int64(cfg.SamplePeriodMs),
		ClassifyPeriodMs:  cfg.ClassifyPeriodMs(),
		StatusPeriodMs:    int64(cfg.StatusPeriodMs),
		HeartbeatPeriodMs: int64(cfg.HeartbeatPeriodMs),
	}, nil, sampleSource, sampleWindow, amplitudeClassifier, alertPolicy, toggle, reporter)

	// Стартовый подтверждающий шаблон
	alertSink.Fire(sink.ChannelVisual, sink.Pattern{Pulses: 3, PulseMs: 200})

	// Настройка HTTP router
	var sinkPing handlers.Pinger
	if redisSink != nil {
		sinkPing = redisSink
	}
	handler := handlers.NewHandler(sched, button, synthetic, sinkPing)

	mux := http.NewServeMux()
	mux.HandleFunc("/status", handler.GetStatus)
	mux.HandleFunc("/health", handler.HealthCheck)
	mux.HandleFunc("/silence", handler.PressSilence)
	mux.HandleFunc("/inject", handler.InjectEvent)

	// Prometheus metrics endpoint
	mux.Handle("/prometheus", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Цикл монитора
	loopDone := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(loopDone)
	}()

	go func() {
		log.Printf("Server listening on port %s\n", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()
	<-loopDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Monitor stopped gracefully")
}
