package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	Backend  BackendConfig  `toml:"backend"`
	Booking  BookingConfig  `toml:"booking"`
	Session  SessionConfig  `toml:"session"`
	Flows    FlowsConfig    `toml:"flows"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пустая строка - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// BackendConfig адрес удаленного Kelale API
type BackendConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig параметры сценария бронирования
type BookingConfig struct {
	// DefaultTotalSeats используется, когда ни у расписания, ни у маршрута нет данных об автобусе
	DefaultTotalSeats    int    `toml:"default_total_seats"`
	DefaultPaymentMethod string `toml:"default_payment_method"`
}

// SessionConfig параметры чтения сессии клиента
type SessionConfig struct {
	// JWTSecret если задан, подпись токена проверяется (HMAC). Иначе проверяется только срок действия
	JWTSecret  string `toml:"jwt_secret"`
	UserHeader string `toml:"user_header"`
}

// FlowsConfig параметры реестра открытых flow
type FlowsConfig struct {
	IdleTTLMinutes       int `toml:"idle_ttl_minutes"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

func (f FlowsConfig) IdleTTL() time.Duration {
	return time.Duration(f.IdleTTLMinutes) * time.Minute
}

func (f FlowsConfig) SweepInterval() time.Duration {
	return time.Duration(f.SweepIntervalSeconds) * time.Second
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "kelale-booking-portal",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Backend: BackendConfig{
			URL:     "http://localhost:5000",
			Timeout: 10,
		},
		Booking: BookingConfig{
			DefaultTotalSeats:    50,
			DefaultPaymentMethod: "cash",
		},
		Session: SessionConfig{
			UserHeader: "X-Kelale-User",
		},
		Flows: FlowsConfig{
			IdleTTLMinutes:       30,
			SweepIntervalSeconds: 60,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Backend.URL == "" {
		return fmt.Errorf("%w: backend.url is required", ErrInvalidConfig)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalidConfig)
	}
	if c.Booking.DefaultTotalSeats <= 0 {
		return fmt.Errorf("%w: booking.default_total_seats must be positive", ErrInvalidConfig)
	}
	switch c.Booking.DefaultPaymentMethod {
	case "cash", "card", "mobile":
	default:
		return fmt.Errorf("%w: booking.default_payment_method must be one of cash, card, mobile", ErrInvalidConfig)
	}
	if c.Session.UserHeader == "" {
		return fmt.Errorf("%w: session.user_header is required", ErrInvalidConfig)
	}
	if c.Flows.IdleTTLMinutes <= 0 || c.Flows.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("%w: flows.idle_ttl_minutes and flows.sweep_interval_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
