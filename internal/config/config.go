package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Identity Identity `mapstructure:"identity"`
	Payments Payments `mapstructure:"payments"`
	Plans    []Plan   `mapstructure:"plans"`
}

// Server holds the configuration for the HTTP API.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Identity holds the settings for validating identity-provider tokens.
type Identity struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Payments holds the configuration for the payment-provider client.
// An empty APIKey disables the provider cross-checks.
type Payments struct {
	APIKey         string  `mapstructure:"api_key"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Plan is a catalog entry seeded into the plans table on startup.
type Plan struct {
	Name        string  `mapstructure:"name"`
	Code        string  `mapstructure:"code"`
	AccountSize int64   `mapstructure:"account_size"`
	Price       float64 `mapstructure:"price"`
	StripeLink  string  `mapstructure:"stripe_link"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.dsn", "veilon.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("payments.rate_limit", 20)      // requests per second
	viper.SetDefault("payments.rate_limit_burst", 5) // burst size

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
