package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	CapacityAPI CapacityAPIConfig `toml:"capacity_api"`
	Schedule    ScheduleConfig    `toml:"schedule"`
	Cache       CacheConfig       `toml:"cache"`
	RabbitMQ    RabbitMQConfig    `toml:"rabbitmq"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Sessions    SessionsConfig    `toml:"sessions"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
	MigrateOnStart  bool   `toml:"migrate_on_start" env:"DB_MIGRATE_ON_START"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
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

// CapacityAPIConfig настройки backend вместимости
type CapacityAPIConfig struct {
	URL     string `toml:"url" env:"CAPACITY_API_URL"`
	Timeout int    `toml:"timeout" env:"CAPACITY_API_TIMEOUT"` // секунды
}

// ScheduleConfig настройки сетки расписания
type ScheduleConfig struct {
	Timezone       string `toml:"timezone" env:"SCHEDULE_TIMEZONE"`
	CatalogVersion string `toml:"catalog_version" env:"SCHEDULE_CATALOG_VERSION"`
}

// CacheConfig настройки кэша списков вместимости
type CacheConfig struct {
	Enabled bool `toml:"enabled" env:"CACHE_ENABLED"`
	Size    int  `toml:"size" env:"CACHE_SIZE"`
	TTL     int  `toml:"ttl" env:"CACHE_TTL"` // секунды
}

// RabbitMQConfig настройки событий об изменении вместимости
type RabbitMQConfig struct {
	Enabled    bool   `toml:"enabled" env:"RABBITMQ_ENABLED"`
	URL        string `toml:"url" env:"RABBITMQ_URL"`
	Exchange   string `toml:"exchange" env:"RABBITMQ_EXCHANGE"`
	InstanceID string `toml:"instance_id" env:"RABBITMQ_INSTANCE_ID"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `toml:"burst" env:"RATE_LIMIT_BURST"`
}

// SessionsConfig хранение завершенных сессий бронирования (в секундах)
type SessionsConfig struct {
	Retention       int `toml:"retention" env:"SESSIONS_RETENTION"`
	CleanupInterval int `toml:"cleanup_interval" env:"SESSIONS_CLEANUP_INTERVAL"`
}

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения.
// Отсутствующий файл не ошибка: конфигурацию можно задать только окружением.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "capacity_service",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-capacity-service",
		},
		CapacityAPI: CapacityAPIConfig{
			Timeout: 10,
		},
		Schedule: ScheduleConfig{
			Timezone:       "Asia/Ho_Chi_Minh",
			CatalogVersion: "2",
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    256,
			TTL:     30,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "capacity.events",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Sessions: SessionsConfig{
			Retention:       7 * 24 * 3600,
			CleanupInterval: 3600,
		},
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil || c.Schedule.Timezone == "" {
		return fmt.Errorf("%w: schedule.timezone %q", ErrInvalidConfig, c.Schedule.Timezone)
	}
	if c.CapacityAPI.URL == "" {
		return fmt.Errorf("%w: capacity_api.url is required", ErrInvalidConfig)
	}
	if c.CapacityAPI.Timeout <= 0 {
		return fmt.Errorf("%w: capacity_api.timeout must be positive", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Cache.Enabled && (c.Cache.Size <= 0 || c.Cache.TTL <= 0) {
		return fmt.Errorf("%w: cache.size and cache.ttl must be positive", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if c.Sessions.Retention <= 0 || c.Sessions.CleanupInterval <= 0 {
		return fmt.Errorf("%w: sessions.retention and sessions.cleanup_interval must be positive", ErrInvalidConfig)
	}
	return nil
}
