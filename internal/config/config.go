package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all settings the service needs at startup. Values come from a
// .env file in the given path (optional) overridden by environment variables.
type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	ClientOrigin  string `mapstructure:"CLIENT_ORIGIN"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32  `mapstructure:"DB_MAX_CONNS"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	PlacesAPIKey  string `mapstructure:"PLACES_API_KEY"`
	PlacesBaseURL string `mapstructure:"PLACES_BASE_URL"`
	AWSRegion     string `mapstructure:"AWS_REGION"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
}

// IsProduction reports whether error details should be hidden from clients.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// LoadConfig reads configuration from .env in path and the environment.
// A missing .env file is not an error; a missing JWT secret or database URL is.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	viper.SetDefault("DB_MAX_CONNS", 25)
	viper.SetDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place")
	viper.SetDefault("AWS_REGION", "us-east-1")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET is required")
	}

	return cfg, nil
}
