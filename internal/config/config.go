package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Email    EmailConfig    `mapstructure:"email"`
	Payment  PaymentConfig  `mapstructure:"payment" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// EmailConfig contains settings for the outbound notification provider.
// When APIKey is empty the application uses a no-op sender, so notifications
// stay optional in local development.
type EmailConfig struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
}

// PaymentConfig contains settings for the external payment gateway and the
// frontend URLs the gateway redirects back to after a transaction.
type PaymentConfig struct {
	StoreID       string `mapstructure:"store_id"`
	StorePassword string `mapstructure:"store_password"`
	Live          bool   `mapstructure:"live"`
	ClientBaseURL string `mapstructure:"client_base_url" validate:"required,url"`
	ServerBaseURL string `mapstructure:"server_base_url" validate:"required,url"`
}
