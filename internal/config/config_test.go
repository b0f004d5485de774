package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "test-token")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Telegram.Token != "test-token" {
		t.Errorf("Expected token test-token, got %q", cfg.Telegram.Token)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Errorf("Expected driver sqlite, got %q", cfg.DB.Driver)
	}
	if cfg.DB.SQLitePath != "./data/wiki_bot.db" {
		t.Errorf("Unexpected sqlite path %q", cfg.DB.SQLitePath)
	}
	if cfg.Schedule.DailyAt != "06:00" {
		t.Errorf("Expected daily_at 06:00, got %q", cfg.Schedule.DailyAt)
	}
	if cfg.History.Limit != 5 {
		t.Errorf("Expected history limit 5, got %d", cfg.History.Limit)
	}
	if cfg.Wiki.Timeout != 10*time.Second {
		t.Errorf("Expected wiki timeout 10s, got %v", cfg.Wiki.Timeout)
	}
	if cfg.Wiki.SummaryLimit != 500 {
		t.Errorf("Expected summary limit 500, got %d", cfg.Wiki.SummaryLimit)
	}
}

func TestLoad_LegacyTokenVariable(t *testing.T) {
	t.Setenv("TOKEN", "legacy-token")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.Telegram.Token != "legacy-token" {
		t.Errorf("Expected token legacy-token, got %q", cfg.Telegram.Token)
	}
}

func TestLoad_ScheduleOverride(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "test-token")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SCHEDULE_DAILY_AT", "09:30")
	t.Setenv("SCHEDULE_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	spec, err := cfg.Schedule.CronSpec()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if spec != "30 9 * * *" {
		t.Errorf("Expected cron spec '30 9 * * *', got %q", spec)
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("Expected UTC location, got %v", loc)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("TOKEN", "")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	_, err := Load()
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("Expected ErrMissingEnvironmentVariables, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Telegram: Telegram{Token: "token"},
			DB:       DB{Driver: DriverPostgres, URL: "postgres://localhost/wiki"},
			Schedule: Schedule{DailyAt: "06:00", Timezone: "Local"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.DB.URL = "" }, wantErr: ErrMissingEnvironmentVariables},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: ErrUnsupportedDriver},
		{name: "bad daily time", mutate: func(c *Config) { c.Schedule.DailyAt = "25:99" }, wantErr: ErrInvalidDailyTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}
