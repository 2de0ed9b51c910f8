package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep the server bootable with nothing but a database URI and
	// JWT secret supplied through the environment.
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.name", "tuitionNetworkDB")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("payment.client_base_url", "http://localhost:5173")
	v.SetDefault("payment.server_base_url", "http://localhost:5000")

	// Keys without a meaningful default still need to be registered so that
	// AutomaticEnv can surface them through Unmarshal.
	for _, key := range []string{
		"database.uri",
		"auth.jwt_secret",
		"email.api_key",
		"email.from",
		"payment.store_id",
		"payment.store_password",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("payment.live", false)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables use the TUITION_ prefix with underscores for
	// nesting, e.g. TUITION_DATABASE_URI, TUITION_AUTH_JWT_SECRET.
	v.SetEnvPrefix("TUITION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
