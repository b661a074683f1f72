package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Lock      LockConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Business  BusinessConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LockConfig selects how pledge mutations are serialised.
type LockConfig struct {
	Backend string // "redis" or "local"
	TTL     time.Duration
	Wait    time.Duration
}

type SchedulerConfig struct {
	SweepSpec string
	Timezone  string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type BusinessConfig struct {
	MaxPrincipal    string
	MaxInterestRate string
}

type HealthConfig struct {
	Timeout time.Duration
}

const (
	LockBackendRedis = "redis"
	LockBackendLocal = "local"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")

	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOCK_BACKEND", LockBackendRedis)
	v.SetDefault("LOCK_TTL", "10s")
	v.SetDefault("LOCK_WAIT", "3s")

	v.SetDefault("SCHEDULER_SWEEP_SPEC", "@every 5m")
	v.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MAX_PRINCIPAL", "10000000")
	v.SetDefault("MAX_INTEREST_RATE", "36")

	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")
}

// Load reads configuration from the environment, a .env file and an
// optional config file named by CONFIG_FILE.
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	config := fromViper(v)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetString("DATABASE_PORT"),
			Name:            v.GetString("DATABASE_NAME"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DATABASE_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Lock: LockConfig{
			Backend: v.GetString("LOCK_BACKEND"),
			TTL:     v.GetDuration("LOCK_TTL"),
			Wait:    v.GetDuration("LOCK_WAIT"),
		},
		Scheduler: SchedulerConfig{
			SweepSpec: v.GetString("SCHEDULER_SWEEP_SPEC"),
			Timezone:  v.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Business: BusinessConfig{
			MaxPrincipal:    v.GetString("MAX_PRINCIPAL"),
			MaxInterestRate: v.GetString("MAX_INTEREST_RATE"),
		},
		Health: HealthConfig{
			Timeout: v.GetDuration("HEALTH_CHECK_TIMEOUT"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return errors.New("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New("SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be positive durations")
	}

	if c.Health.Timeout <= 0 {
		return errors.New("HEALTH_CHECK_TIMEOUT must be a positive duration")
	}

	switch c.Lock.Backend {
	case LockBackendRedis, LockBackendLocal:
	default:
		return fmt.Errorf("LOCK_BACKEND must be %q or %q, got %q", LockBackendRedis, LockBackendLocal, c.Lock.Backend)
	}
	if c.Lock.TTL <= 0 || c.Lock.Wait <= 0 {
		return errors.New("LOCK_TTL and LOCK_WAIT must be positive durations")
	}

	maxPrincipal, err := decimal.NewFromString(c.Business.MaxPrincipal)
	if err != nil {
		return fmt.Errorf("MAX_PRINCIPAL must be a valid decimal: %w", err)
	}
	if !maxPrincipal.IsPositive() {
		return errors.New("MAX_PRINCIPAL must be greater than 0")
	}
	if _, err := decimal.NewFromString(c.Business.MaxInterestRate); err != nil {
		return fmt.Errorf("MAX_INTEREST_RATE must be a valid decimal: %w", err)
	}

	if _, err := cron.ParseStandard(c.Scheduler.SweepSpec); err != nil {
		return fmt.Errorf("SCHEDULER_SWEEP_SPEC must be a valid cron spec: %w", err)
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Logging.Format)
	}

	return nil
}

// DSN returns the postgres connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Addr returns the redis host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// GetMaxPrincipal returns the largest principal a new pledge may carry.
func (c *Config) GetMaxPrincipal() decimal.Decimal {
	amount, _ := decimal.NewFromString(c.Business.MaxPrincipal)
	return amount
}

// GetMaxInterestRate returns the upper bound for a pledge's monthly rate.
func (c *Config) GetMaxInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.MaxInterestRate)
	return rate
}

// GetLocation returns the scheduler time zone, falling back to UTC.
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
