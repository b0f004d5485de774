package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnsupportedDriver           = errors.New("unsupported database driver")
	ErrInvalidDailyTime            = errors.New("invalid daily broadcast time")
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	Telegram  Telegram  `mapstructure:"telegram"`  // bot API section
	DB        DB        `mapstructure:"database"`  // database configuration section
	Schedule  Schedule  `mapstructure:"schedule"`  // daily broadcast trigger
	Broadcast Broadcast `mapstructure:"broadcast"` // broadcast fan-out
	Wiki      Wiki      `mapstructure:"wiki"`      // article source
	History   History   `mapstructure:"history"`
	HTTP      HTTP      `mapstructure:"http"`
}

// Telegram contains bot API parameters.
type Telegram struct {
	Token         string `mapstructure:"-"`               // bot token loaded from environment
	RatePerSecond int    `mapstructure:"rate_per_second"` // outbound message budget
	Debug         bool   `mapstructure:"debug"`
}

// DB contains database-related configuration parameters.
type DB struct {
	Driver          string        `mapstructure:"driver"`            // postgres or sqlite
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	SQLitePath      string        `mapstructure:"sqlite_path"`       // database file for the sqlite driver
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Schedule configures the daily broadcast.
type Schedule struct {
	DailyAt  string `mapstructure:"daily_at"` // wall-clock time, "HH:MM"
	Timezone string `mapstructure:"timezone"` // IANA name or "Local"
}

// Location resolves the configured timezone.
func (s Schedule) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// CronSpec converts DailyAt into a standard five-field cron expression.
func (s Schedule) CronSpec() (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s.DailyAt))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDailyTime, s.DailyAt)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// Broadcast configures daily fan-out.
type Broadcast struct {
	Workers int `mapstructure:"workers"`
}

// Wiki configures the random article source.
type Wiki struct {
	RandomURL    string        `mapstructure:"random_url"`
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SummaryLimit int           `mapstructure:"summary_limit"` // in runes
}

// History configures the /history command.
type History struct {
	Limit int `mapstructure:"limit"`
}

// HTTP configures the status endpoint.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN", "TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.Token = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("telegram.rate_per_second", 25)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.sqlite_path", "./data/wiki_bot.db")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("schedule.daily_at", "06:00")
	v.SetDefault("schedule.timezone", "Local")
	v.SetDefault("broadcast.workers", 4)
	v.SetDefault("wiki.random_url", "https://ru.wikipedia.org/wiki/Special:Random")
	v.SetDefault("wiki.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("wiki.timeout", "10s")
	v.SetDefault("wiki.summary_limit", 500)
	v.SetDefault("history.limit", 5)
	v.SetDefault("http.addr", ":8080")
}

// Validate checks required values and cross-field constraints.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	switch c.DB.Driver {
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("%w: database.sqlite_path", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DB.Driver)
	}

	if _, err := c.Schedule.CronSpec(); err != nil {
		return err
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Schedule.Timezone, err)
	}

	return nil
}
