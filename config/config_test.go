package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080, Environment: "development"},
		JWT:    JWTConfig{Secret: "secret"},
		Email:  EmailConfig{BatchSize: 10},
		Scheduler: SchedulerConfig{
			Enabled:         true,
			Timezone:        "Asia/Taipei",
			MonthlyReportAt: "5 0 1 * *",
			GoalRefreshAt:   "0 1 * * *",
			EmailCleanupAt:  "30 3 * * *",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Server.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000",
		},
		{
			name: "default secret in production",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.JWT.Secret = "change-me-in-production"
			},
			wantErr:     true,
			errorString: "JWT_SECRET",
		},
		{
			name:        "non positive batch size",
			mutate:      func(c *Config) { c.Email.BatchSize = 0 },
			wantErr:     true,
			errorString: "batch size",
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" },
			wantErr:     true,
			errorString: "timezone",
		},
		{
			name:        "empty cleanup spec",
			mutate:      func(c *Config) { c.Scheduler.EmailCleanupAt = "" },
			wantErr:     true,
			errorString: "cron specs",
		},
		{
			name: "disabled scheduler skips cron checks",
			mutate: func(c *Config) {
				c.Scheduler.Enabled = false
				c.Scheduler.MonthlyReportAt = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "")
		cfg := Load()

		if cfg.Server.Port != 8080 {
			t.Errorf("expected default port 8080 when value is not numeric, got %d", cfg.Server.Port)
		}
		if cfg.Scheduler.Timezone != "Asia/Taipei" {
			t.Errorf("expected Asia/Taipei, got %s", cfg.Scheduler.Timezone)
		}
		if cfg.Scheduler.MonthlyReportAt != "5 0 1 * *" {
			t.Errorf("unexpected monthly cron spec %q", cfg.Scheduler.MonthlyReportAt)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("REDIS_CACHE_TTL", "2m")
		t.Setenv("SCHEDULER_ENABLED", "false")
		cfg := Load()

		if cfg.Server.Port != 9090 {
			t.Errorf("expected 9090, got %d", cfg.Server.Port)
		}
		if cfg.Redis.CacheTTL != 2*time.Minute {
			t.Errorf("expected 2m, got %s", cfg.Redis.CacheTTL)
		}
		if cfg.Scheduler.Enabled {
			t.Error("expected scheduler to be disabled")
		}
	})
}

func TestSchedulerConfig_Location(t *testing.T) {
	if loc := (SchedulerConfig{Timezone: "Asia/Taipei"}).Location(); loc.String() != "Asia/Taipei" {
		t.Errorf("expected Asia/Taipei, got %s", loc)
	}
	if loc := (SchedulerConfig{Timezone: "nope"}).Location(); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %s", loc)
	}
}
