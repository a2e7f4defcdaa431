package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the client configuration. Everything has a default so the
// binary runs against a local server with no config file at all.
type Config struct {
	ServerURL            string `mapstructure:"server_url"`
	UploadTimeoutSeconds int    `mapstructure:"upload_timeout_seconds"`
	PageSize             int    `mapstructure:"page_size"`
	DashboardLimit       int    `mapstructure:"dashboard_limit"`
	LogLevel             string `mapstructure:"log_level"`

	// AuthScheme is a placeholder: only the cookie session is
	// implemented. A bearer-token path would hang off this knob.
	AuthScheme string `mapstructure:"auth_scheme"`
}

// UploadTimeout is the per-call deadline applied to the upload requests.
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}

// Load reads config.yaml (optional), an optional .env, and environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is fine; it only exists for local development.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.library-client")

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("upload_timeout_seconds", 30)
	viper.SetDefault("page_size", 10)
	viper.SetDefault("dashboard_limit", 5)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("auth_scheme", "cookie")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	viper.AutomaticEnv()
	_ = viper.BindEnv("server_url", "LIBRARY_SERVER_URL")
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
