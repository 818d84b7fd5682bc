package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса.
// Источники (по возрастанию приоритета): config.toml, файл .env, переменные окружения.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Outbox     OutboxConfig     `toml:"outbox"`
	Tracing    TracingConfig    `toml:"tracing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// SchedulingConfig параметры расчёта слотов
type SchedulingConfig struct {
	// Длительность, если услуга не найдена
	DefaultServiceDurationMinutes int `toml:"default_service_duration_minutes" env:"SCHEDULING_DEFAULT_SERVICE_DURATION"`
	// Часовой пояс тенанта, если он не задан в таблице tenants
	DefaultTimeZone string `toml:"default_time_zone" env:"SCHEDULING_DEFAULT_TIME_ZONE"`
}

// Location загруженный часовой пояс по умолчанию
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.DefaultTimeZone)
}

// RedisConfig подключение к Redis (пустой адрес - Redis не используется)
type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

// RateLimitConfig ограничение частоты запросов к публичным эндпоинтам
type RateLimitConfig struct {
	Enabled       bool `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	Requests      int  `toml:"requests" env:"RATE_LIMIT_REQUESTS"`
	WindowSeconds int  `toml:"window_seconds" env:"RATE_LIMIT_WINDOW_SECONDS"`
	FailOpen      bool `toml:"fail_open" env:"RATE_LIMIT_FAIL_OPEN"`
}

// KafkaConfig брокеры через запятую (пусто - relay outbox выключен)
type KafkaConfig struct {
	Brokers string `toml:"brokers" env:"KAFKA_BROKERS"`
}

// OutboxConfig параметры relay outbox -> Kafka
type OutboxConfig struct {
	Enabled        bool `toml:"enabled" env:"OUTBOX_ENABLED"`
	PollIntervalMs int  `toml:"poll_interval_ms" env:"OUTBOX_POLL_INTERVAL_MS"`
	BatchSize      int  `toml:"batch_size" env:"OUTBOX_BATCH_SIZE"`
}

// TracingConfig экспорт трейсов OpenTelemetry
type TracingConfig struct {
	Enabled     bool    `toml:"enabled" env:"OTEL_ENABLED"`
	Endpoint    string  `toml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio float64 `toml:"sample_ratio" env:"OTEL_SAMPLING_RATIO"`
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling-service",
		},
		Scheduling: SchedulingConfig{
			DefaultServiceDurationMinutes: 30,
			DefaultTimeZone:               "UTC",
		},
		RateLimit: RateLimitConfig{
			Requests:      30,
			WindowSeconds: 60,
			FailOpen:      true,
		},
		Outbox: OutboxConfig{
			PollIntervalMs: 1000,
			BatchSize:      100,
		},
		Tracing: TracingConfig{
			Endpoint:    "localhost:4317",
			SampleRatio: 1,
		},
	}
}

// Validate проверяет значения после применения всех источников
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Scheduling.DefaultServiceDurationMinutes <= 0 {
		return fmt.Errorf("%w: scheduling.default_service_duration_minutes must be positive", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.default_time_zone: %v", ErrInvalidConfig, err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit.requests and rate_limit.window_seconds must be positive", ErrInvalidConfig)
	}
	if c.Outbox.Enabled && (c.Outbox.PollIntervalMs <= 0 || c.Outbox.BatchSize <= 0) {
		return fmt.Errorf("%w: outbox.poll_interval_ms and outbox.batch_size must be positive", ErrInvalidConfig)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("%w: tracing.sample_ratio must be in [0, 1]", ErrInvalidConfig)
	}
	return nil
}
