package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"seismic-monitor/internal/metrics"
)

// Redis публикует оповещения во внешний Redis: событие уходит в
// pub/sub канал для подписчиков и кратковременно сохраняется с TTL
// для операторских панелей. Запись выполняется в отдельной goroutine,
// поэтому медленный или недоступный Redis никогда не блокирует тик
// планировщика. Состояние ядра из Redis не читается.
type Redis struct {
	client  *redis.Client
	ctx     context.Context
	channel string
	ttl     time.Duration
}

// alertEvent сериализуемое событие оповещения
type alertEvent struct {
	Channel   Channel `json:"channel"`
	Pulses    int     `json:"pulses"`
	PulseMs   int     `json:"pulse_ms"`
	Timestamp int64   `json:"timestamp_unix_ms"`
}

// NewRedis создает Redis sink и проверяет подключение
func NewRedis(addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		Password:   password,
		DB:         db,
		PoolSize:   10,
		MaxRetries: 3,
	})

	ctx := context.Background()

	// Проверяем подключение
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{
		client:  client,
		ctx:     ctx,
		channel: "seismic:alerts",
		ttl:     ttl,
	}, nil
}

// Fire публикует оповещение (асинхронно, не блокируем цикл)
func (r *Redis) Fire(channel Channel, p Pattern) {
	event := alertEvent{
		Channel:   channel,
		Pulses:    p.Pulses,
		PulseMs:   p.PulseMs,
		Timestamp: time.Now().UnixMilli(),
	}

	go func() {
		jsonData, err := json.Marshal(event)
		if err != nil {
			metrics.RedisOperations.WithLabelValues("publish_alert", "error").Inc()
			return
		}

		key := fmt.Sprintf("alert:%s:%d", channel, event.Timestamp)

		pipe := r.client.Pipeline()
		pipe.Set(r.ctx, key, jsonData, r.ttl)
		pipe.Publish(r.ctx, r.channel, jsonData)

		if _, err := pipe.Exec(r.ctx); err != nil {
			metrics.RedisOperations.WithLabelValues("publish_alert", "error").Inc()
		} else {
			metrics.RedisOperations.WithLabelValues("publish_alert", "success").Inc()
		}
	}()
}

// SetLatch сохраняет состояние удерживаемого индикатора
func (r *Redis) SetLatch(on bool) {
	go func() {
		value := "0"
		if on {
			value = "1"
		}
		if err := r.client.Set(r.ctx, "alert:latch", value, 0).Err(); err != nil {
			metrics.RedisOperations.WithLabelValues("set_latch", "error").Inc()
		} else {
			metrics.RedisOperations.WithLabelValues("set_latch", "success").Inc()
		}
	}()
}

// Ping проверяет доступность Redis
func (r *Redis) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

// Close закрывает соединение с Redis
func (r *Redis) Close() error {
	return r.client.Close()
}
