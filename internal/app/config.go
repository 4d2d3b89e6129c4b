package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/bandit-backend/internal/data/db"
	"github.com/yungbote/bandit-backend/internal/http/middleware"
	"github.com/yungbote/bandit-backend/internal/observability"
	"github.com/yungbote/bandit-backend/internal/platform/envutil"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
	"github.com/yungbote/bandit-backend/internal/realtime/bus"
)

type Config struct {
	Port                   int      `yaml:"port"`
	LogMode                string   `yaml:"log_mode"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
	CORSAllowedOrigins     []string `yaml:"cors_allowed_origins"`

	DB    DBConfig    `yaml:"db"`
	Redis RedisConfig `yaml:"redis"`
	Otel  OtelConfig  `yaml:"otel"`
}

type DBConfig struct {
	Driver       string         `yaml:"driver"`
	SQLitePath   string         `yaml:"sqlite_path"`
	MaxOpenConns int            `yaml:"max_open_conns"`
	SlowQueryMS  int            `yaml:"slow_query_ms"`
	Postgres     PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig is optional; an empty Addr disables event publishing.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	Environment string  `yaml:"environment"`
}

func DefaultConfig() Config {
	return Config{
		Port:                   8000,
		LogMode:                "development",
		ShutdownTimeoutSeconds: 10,
		CORSAllowedOrigins:     append([]string(nil), middleware.DefaultOrigins...),
		DB: DBConfig{
			Driver:      db.DriverSQLite,
			SQLitePath:  "./sql_app.db",
			SlowQueryMS: 200,
			Postgres: PostgresConfig{
				Host: "localhost",
				Port: "5432",
			},
		},
		Redis: RedisConfig{Channel: bus.DefaultChannel},
		Otel:  OtelConfig{SampleRatio: 0.1},
	}
}

// LoadConfig layers defaults, then the YAML file named by CONFIG_FILE, then the environment.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()
	if path := envutil.String("CONFIG_FILE", "", log); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	cfg.applyEnv(log)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(log *logger.Logger) {
	c.Port = envutil.Int("PORT", c.Port, log)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode, log)
	c.ShutdownTimeoutSeconds = envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", c.ShutdownTimeoutSeconds, log)
	c.CORSAllowedOrigins = envutil.CSV("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)

	c.DB.Driver = strings.ToLower(envutil.String("DB_DRIVER", c.DB.Driver, log))
	c.DB.SQLitePath = envutil.String("SQLITE_PATH", c.DB.SQLitePath, log)
	c.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", c.DB.MaxOpenConns, log)
	c.DB.SlowQueryMS = envutil.Int("DB_SLOW_QUERY_MS", c.DB.SlowQueryMS, log)
	c.DB.Postgres.Host = envutil.String("POSTGRES_HOST", c.DB.Postgres.Host, log)
	c.DB.Postgres.Port = envutil.String("POSTGRES_PORT", c.DB.Postgres.Port, log)
	c.DB.Postgres.User = envutil.String("POSTGRES_USER", c.DB.Postgres.User, log)
	c.DB.Postgres.Password = envutil.String("POSTGRES_PASSWORD", c.DB.Postgres.Password, log)
	c.DB.Postgres.Name = envutil.String("POSTGRES_NAME", c.DB.Postgres.Name, log)
	c.DB.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", c.DB.Postgres.SSLMode, log)

	c.Redis.Addr = envutil.String("REDIS_ADDR", c.Redis.Addr, log)
	c.Redis.Password = envutil.String("REDIS_PASSWORD", c.Redis.Password, log)
	c.Redis.DB = envutil.Int("REDIS_DB", c.Redis.DB, log)
	c.Redis.Channel = envutil.String("REDIS_CHANNEL", c.Redis.Channel, log)

	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint, log)
	c.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers, log)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure)
	c.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", c.Otel.SampleRatio, log)
	c.Otel.Environment = envutil.String("APP_ENV", c.Otel.Environment, log)
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	switch c.DB.Driver {
	case db.DriverSQLite:
	case db.DriverPostgres:
		if c.DB.Postgres.Host == "" || c.DB.Postgres.Name == "" {
			return fmt.Errorf("postgres driver requires POSTGRES_HOST and POSTGRES_NAME")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) StoreConfig() db.Config {
	return db.Config{
		Driver:        c.DB.Driver,
		SQLitePath:    c.DB.SQLitePath,
		MaxOpenConns:  c.DB.MaxOpenConns,
		SlowThreshold: time.Duration(c.DB.SlowQueryMS) * time.Millisecond,
		Postgres: db.PostgresConfig{
			Host:     c.DB.Postgres.Host,
			Port:     c.DB.Postgres.Port,
			User:     c.DB.Postgres.User,
			Password: c.DB.Postgres.Password,
			Name:     c.DB.Postgres.Name,
			SSLMode:  c.DB.Postgres.SSLMode,
		},
	}
}

func (c Config) BusConfig() bus.RedisConfig {
	return bus.RedisConfig{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		Channel:  c.Redis.Channel,
	}
}

func (c Config) TracingConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: observability.DefaultServiceName,
		Environment: c.Otel.Environment,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
