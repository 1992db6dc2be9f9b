package config

import (
	"github.com/caarlos0/env/v8"
)

// Config holds all environment configuration. Defaults match the docker
// compose development setup.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"9446"`

	PostgresAddress  string `env:"POSTGRES_ADDRESS" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5433"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"postgres"`
	PostgresUsername string `env:"POSTGRES_USERNAME" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"testpassword"`

	// SessionSecret verifies session tokens issued by the auth provider.
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-only-secret"`
	SessionCookie string `env:"SESSION_COOKIE" envDefault:"duitku_session"`
	GuestCookie   string `env:"GUEST_COOKIE" envDefault:"duitku_guest"`
}

func ProcessEnvironmentVariables() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PostgresDSN builds the connection string for lib/pq.
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
