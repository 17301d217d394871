package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type StoreDriver string

const (
	StoreDriverMongo  StoreDriver = "mongo"  // MongoDB at MONGO_URL (default)
	StoreDriverSQLite StoreDriver = "sqlite" // Local sqlite file at DATABASE_PATH
)

type (
	Config struct {
		HTTP
		Global
		Store
		Seed
		Log
	}

	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Store struct {
		Driver        StoreDriver
		MongoURL      string
		DatabasePath  string
		ProbeInterval time.Duration
		ProbeTimeout  time.Duration
	}
	Seed struct {
		ResetDatabase bool // Wipe and re-seed authors and books at startup
	}
	Log struct {
		Level  string
		Format string // json or console
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("cors_allowed_origins", "*")

	v.SetDefault("store_driver", string(StoreDriverMongo))
	v.SetDefault("mongo_url", DefaultMongoURL)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("store_probe_interval", "5s")
	v.SetDefault("store_probe_timeout", "2s")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Store: Store{
			Driver:        StoreDriver(strings.ToLower(v.GetString("STORE_DRIVER"))),
			MongoURL:      v.GetString("MONGO_URL"),
			DatabasePath:  v.GetString("DATABASE_PATH"),
			ProbeInterval: v.GetDuration("STORE_PROBE_INTERVAL"),
			ProbeTimeout:  v.GetDuration("STORE_PROBE_TIMEOUT"),
		},
		Seed: Seed{
			// Any non-empty value enables the reset, "false" included.
			ResetDatabase: v.GetString("RESET_DATABASE") != "",
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
