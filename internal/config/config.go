package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		App
		HTTP
		Global
		Database
		Log
	}

	App struct {
		Env      string // "development" or "production"
		ReadOnly bool   // Block all write requests with 403
	}
	HTTP struct {
		Port         int32
		Host         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		CORSOrigins  []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver       string // "sqlite" or "postgres"
		Path         string // SQLite file path
		DSN          string // Postgres connection string
		BusyTimeout  time.Duration
		MaxOpenConns int
		QueryTimeout time.Duration // Deadline applied to every store call
		LogLevel     string        // gorm logger level: silent, error, warn, info
	}
	Log struct {
		Level  string
		Format string // "json", "console" or empty
	}
)

// IsProduction reports whether internal error details must be hidden from clients.
func (a App) IsProduction() bool {
	return strings.EqualFold(a.Env, EnvProduction)
}

func NewConfig() *Config {
	// A missing .env file is fine, the process environment still applies
	_ = godotenv.Load(DefaultEnvFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvDevelopment)
	v.SetDefault("read_only", false)

	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("read_timeout", "10s")
	v.SetDefault("write_timeout", "10s")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_busy_timeout", "5s")
	v.SetDefault("database_max_open_conns", 10)
	v.SetDefault("query_timeout", "5s")
	v.SetDefault("db_log_level", "warn")

	// Logging defaults
	v.SetDefault("log_level", "info")
	// empty format picks console in development and JSON elsewhere
	v.SetDefault("log_format", "")

	return &Config{
		App: App{
			Env:      v.GetString("APP_ENV"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		HTTP: HTTP{
			Port:         v.GetInt32("PORT"),
			Host:         v.GetString("HOST"),
			ReadTimeout:  v.GetDuration("READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("WRITE_TIMEOUT"),
			CORSOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:         v.GetString("DATABASE_PATH"),
			DSN:          v.GetString("DATABASE_DSN"),
			BusyTimeout:  v.GetDuration("DATABASE_BUSY_TIMEOUT"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			QueryTimeout: v.GetDuration("QUERY_TIMEOUT"),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// splitList turns a comma-separated value into a trimmed slice, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
