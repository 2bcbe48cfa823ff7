package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Драйверы хранилища документов
const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Store    StoreConfig    `toml:"store"`
	Database DatabaseConfig `toml:"database"`
	Pool     PoolConfig     `toml:"pool"`
	Retry    RetryConfig    `toml:"retry"`
	Jobs     JobsConfig     `toml:"jobs"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования. Пустой File означает stdout.
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StoreConfig выбор и настройки хранилища документов
type StoreConfig struct {
	Driver          string `toml:"driver"`
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
	CredentialsJSON string `toml:"credentials_json"`
	SeedFile        string `toml:"seed_file"`
}

// DatabaseConfig подключение к PostgreSQL для драйвера postgres
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

// PoolConfig размеры пула воркеров хранилища
type PoolConfig struct {
	Workers    int `toml:"workers"`
	QueueDepth int `toml:"queue_depth"`
}

// RetryConfig повтор чтений при недоступности хранилища, интервалы в миллисекундах
type RetryConfig struct {
	MaxAttempts       uint `toml:"max_attempts"`
	InitialIntervalMs int  `toml:"initial_interval_ms"`
	MaxIntervalMs     int  `toml:"max_interval_ms"`
}

func (r RetryConfig) InitialInterval() time.Duration {
	return time.Duration(r.InitialIntervalMs) * time.Millisecond
}

func (r RetryConfig) MaxInterval() time.Duration {
	return time.Duration(r.MaxIntervalMs) * time.Millisecond
}

// JobsConfig фоновые задачи
type JobsConfig struct {
	OverdueEnabled  bool   `toml:"overdue_enabled"`
	OverdueSchedule string `toml:"overdue_schedule"` // cron с секундами
	OverdueTimeout  int    `toml:"overdue_timeout"`  // секунды
}

// BookingConfig ограничения бронирования
type BookingConfig struct {
	MaxAdvanceDays int `toml:"max_advance_days"` // 0 - без ограничения
}

// Load читает TOML файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overrideWithEnv переопределяет значения из переменных окружения
func (c *Config) overrideWithEnv() error {
	setString("STORE_DRIVER", &c.Store.Driver)
	setString("FIRESTORE_PROJECT_ID", &c.Store.ProjectID)
	setString("GOOGLE_APPLICATION_CREDENTIALS", &c.Store.CredentialsFile)
	setString("FIREBASE_CREDENTIALS_JSON", &c.Store.CredentialsJSON)
	setString("STORE_SEED_FILE", &c.Store.SeedFile)

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("DB_SSLMODE", &c.Database.SSLMode)

	setString("LOG_LEVEL", &c.Logs.Level)
	setString("LOG_FILE", &c.Logs.File)

	if err := setInt("HTTP_PORT", &c.Server.HTTPPort); err != nil {
		return err
	}
	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	return nil
}

func setString(key string, dst *string) {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		*dst = val
	}
}

func setInt(key string, dst *int) error {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, val)
	}
	*dst = n
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "car_rental"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Jobs.OverdueSchedule == "" {
		c.Jobs.OverdueSchedule = "0 0 * * * *"
	}
	if c.Jobs.OverdueTimeout == 0 {
		c.Jobs.OverdueTimeout = 60
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: invalid http port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Store.Driver {
	case DriverFirestore:
		if c.Store.ProjectID == "" {
			return fmt.Errorf("%w: store.project_id is required for the firestore driver", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("%w: database host, dbname and user are required for the postgres driver", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if c.Pool.Workers < 0 || c.Pool.QueueDepth < 0 {
		return fmt.Errorf("%w: pool sizes must not be negative", ErrInvalidConfig)
	}
	if c.Booking.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: booking.max_advance_days must not be negative", ErrInvalidConfig)
	}
	return nil
}
