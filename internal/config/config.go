package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"DATABASE_"`
	JWT      JWT      `envPrefix:"JWT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Database contains database connection parameters.
type Database struct {
	DSN string `env:"DSN,required,notEmpty"`
}

// JWT contains token signing parameters. The secret is mandatory: the
// service refuses to start without it.
type JWT struct {
	Secret          string `env:"SECRET,required,notEmpty"`
	Issuer          string `env:"ISSUER" envDefault:"provider-server"`
	Audience        string `env:"AUDIENCE" envDefault:"https://localhost"`
	ExpirationHours int    `env:"EXPIRATION_HOURS" envDefault:"2"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
