package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envAliases maps configuration keys to the bare environment variable names
// the deployment contract also accepts, in addition to the TASKIN_-prefixed
// forms. The encryption values in particular are conventionally provided as
// ENCRYPTION_ALGORITHM, ENCRYPTION_KEY and ENCRYPTION_IV.
var envAliases = map[string][]string{
	"database.url":         {"DATABASE_URL"},
	"encryption.algorithm": {"ENCRYPTION_ALGORITHM"},
	"encryption.key":       {"ENCRYPTION_KEY"},
	"encryption.iv":        {"ENCRYPTION_IV"},
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about, so required
	// values without defaults are bound explicitly, prefixed form first.
	for key, aliases := range envAliases {
		prefixed := "TASKIN_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		vars := append([]string{key, prefixed}, aliases...)
		if err := v.BindEnv(vars...); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine; the environment is the primary source.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
