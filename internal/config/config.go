// Package config loads the server configuration from file, environment, and
// defaults via viper.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the server configuration.
type Config struct {
	// Mode is the gin mode: "release" or "debug".
	Mode string `mapstructure:"mode"`

	// Port is the HTTP listen port.
	Port int `mapstructure:"port"`

	// DBPath is the SQLite database file path.
	DBPath string `mapstructure:"db_path"`

	// StaticPath is the directory the UI is served from.
	StaticPath string `mapstructure:"static_path"`
}

// Load reads config/config.<env>.yaml (env from CONFIG_ENV, default "dev"),
// overlaid with SITEPAY_* environment variables, falling back to defaults.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("SITEPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "./data/sitepay.db")
	v.SetDefault("static_path", "./web")

	if err := v.ReadInConfig(); err != nil {
		slog.Debug("Config file not found, using defaults", "file", fileName)
	} else {
		slog.Info("Loaded config file", "file", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
