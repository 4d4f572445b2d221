package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // часовые пояса без системной базы tzdata

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix префикс переменных окружения, например SALON_DATABASE_PASSWORD
const envPrefix = "SALON"

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig        `toml:"server"`
	Database       DatabaseConfig      `toml:"database"`
	Logs           LogsConfig          `toml:"logs"`
	Metrics        MetricsConfig       `toml:"metrics"`
	CatalogService ServiceClientConfig `toml:"catalog_service"`
	Notifier       NotifierConfig      `toml:"notifier"`
	Broker         BrokerConfig        `toml:"broker"`
	Scheduler      SchedulerConfig     `toml:"scheduler"`
	BusinessHours  BusinessHoursConfig `toml:"business_hours"`
	Reschedule     RescheduleConfig    `toml:"reschedule"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Timezone        string `toml:"timezone"`
}

// DatabaseConfig параметры подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceClientConfig адрес внешнего сервиса, таймаут в секундах
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotifierConfig параметры email канала, ключ SendGrid берется только из окружения
type NotifierConfig struct {
	SendGridAPIKey string `toml:"-"`
	SendGridHost   string `toml:"sendgrid_host"`
	FromEmail      string `toml:"from_email"`
	FromName       string `toml:"from_name"`
}

type BrokerConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// SchedulerConfig параметры периодических проходов, значения в минутах
type SchedulerConfig struct {
	Enabled                  bool  `toml:"enabled"`
	ReminderIntervalMinutes  int   `toml:"reminder_interval_minutes"`
	ReminderBandMinutes      int   `toml:"reminder_band_minutes"`
	ReminderLookaheadMinutes []int `toml:"reminder_lookahead_minutes"`
	MissedIntervalMinutes    int   `toml:"missed_interval_minutes"`
	GraceMinutes             int   `toml:"grace_minutes"`
}

func (c SchedulerConfig) ReminderInterval() time.Duration {
	return time.Duration(c.ReminderIntervalMinutes) * time.Minute
}

func (c SchedulerConfig) ReminderBand() time.Duration {
	return time.Duration(c.ReminderBandMinutes) * time.Minute
}

func (c SchedulerConfig) MissedInterval() time.Duration {
	return time.Duration(c.MissedIntervalMinutes) * time.Minute
}

func (c SchedulerConfig) Grace() time.Duration {
	return time.Duration(c.GraceMinutes) * time.Minute
}

func (c SchedulerConfig) Lookaheads() []time.Duration {
	result := make([]time.Duration, 0, len(c.ReminderLookaheadMinutes))
	for _, m := range c.ReminderLookaheadMinutes {
		result = append(result, time.Duration(m)*time.Minute)
	}
	return result
}

// BusinessHoursConfig часы салона, если в базе нет настроек
type BusinessHoursConfig struct {
	StartHour int `toml:"start_hour"`
	EndHour   int `toml:"end_hour"`
}

// RescheduleConfig параметры ссылки на перенос, секрет берется только из окружения
type RescheduleConfig struct {
	Secret        string `toml:"-"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	URL           string `toml:"url"`
}

func (c RescheduleConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// secrets переменные окружения, перекрывающие файл
type secrets struct {
	DatabaseHost     string `envconfig:"DATABASE_HOST"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD"`
	SendGridAPIKey   string `envconfig:"SENDGRID_API_KEY"`
	BrokerURL        string `envconfig:"BROKER_URL"`
	RescheduleSecret string `envconfig:"RESCHEDULE_SECRET"`
	LogLevel         string `envconfig:"LOG_LEVEL"`
}

// Load читает файл конфигурации, применяет переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	var env secrets
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	cfg.applySecrets(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			Timezone:        "UTC",
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
			ServiceName: "salon_service",
		},
		CatalogService: ServiceClientConfig{Timeout: 5},
		Broker:         BrokerConfig{Exchange: "salon.notifications"},
		Scheduler: SchedulerConfig{
			Enabled:                  true,
			ReminderIntervalMinutes:  10,
			ReminderBandMinutes:      10,
			ReminderLookaheadMinutes: []int{24 * 60, 60},
			MissedIntervalMinutes:    15,
			GraceMinutes:             10,
		},
		BusinessHours: BusinessHoursConfig{StartHour: 9, EndHour: 18},
		Reschedule:    RescheduleConfig{TokenTTLHours: 72},
	}
}

func (c *Config) applySecrets(env secrets) {
	if env.DatabaseHost != "" {
		c.Database.Host = env.DatabaseHost
	}
	if env.DatabasePassword != "" {
		c.Database.Password = env.DatabasePassword
	}
	if env.SendGridAPIKey != "" {
		c.Notifier.SendGridAPIKey = env.SendGridAPIKey
	}
	if env.BrokerURL != "" {
		c.Broker.URL = env.BrokerURL
	}
	if env.RescheduleSecret != "" {
		c.Reschedule.Secret = env.RescheduleSecret
	}
	if env.LogLevel != "" {
		c.Logs.Level = env.LogLevel
	}
}

// Location часовой пояс салона
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Server.Timezone, err)
	}
	return loc, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Server.HTTPPort > 0 && c.Server.HTTPPort <= 65535, "server.http_port %d out of range", c.Server.HTTPPort)
	check(c.Server.ReadTimeout > 0 && c.Server.WriteTimeout > 0 && c.Server.IdleTimeout > 0 && c.Server.ShutdownTimeout > 0,
		"server timeouts must be positive")
	check(c.Database.Port > 0, "database.port must be positive")
	check(c.CatalogService.URL != "", "catalog_service.url is required")
	check(c.CatalogService.Timeout > 0, "catalog_service.timeout must be positive")

	h := c.BusinessHours
	check(h.StartHour >= 0 && h.EndHour <= 24 && h.StartHour < h.EndHour,
		"business_hours %d..%d must satisfy 0 <= start < end <= 24", h.StartHour, h.EndHour)

	s := c.Scheduler
	if s.Enabled {
		check(s.ReminderIntervalMinutes > 0 && s.MissedIntervalMinutes > 0, "scheduler intervals must be positive")
		check(s.ReminderBandMinutes > 0, "scheduler.reminder_band_minutes must be positive")
		check(s.ReminderBandMinutes <= s.ReminderIntervalMinutes,
			"scheduler.reminder_band_minutes %d is wider than reminder_interval_minutes %d",
			s.ReminderBandMinutes, s.ReminderIntervalMinutes)
		check(s.GraceMinutes >= 0, "scheduler.grace_minutes must not be negative")
		for _, m := range s.ReminderLookaheadMinutes {
			check(m > 0, "scheduler.reminder_lookahead_minutes must be positive, got %d", m)
		}
	}

	check(c.Reschedule.Secret != "", "reschedule secret is required (%s_RESCHEDULE_SECRET)", envPrefix)
	check(c.Reschedule.TokenTTLHours > 0, "reschedule.token_ttl_hours must be positive")
	check(!c.Broker.Enabled || c.Broker.URL != "", "broker.url is required when broker is enabled")

	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
