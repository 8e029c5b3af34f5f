package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the application configuration, loaded from the environment.
type Config struct {
	Port              int    `env:"PORT"                envDefault:"4000"`
	MongoURI          string `env:"MONGODB_URI"`
	MongoDatabase     string `env:"MONGODB_DATABASE"    envDefault:"collab-nest"`
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	AppPasswordResetURL string        `env:"APP_PASSWORD_RESET_URL" envDefault:"http://localhost:3000/reset-password"`
	ResetTokenSecret    string        `env:"RESET_TOKEN_SECRET"`
	ResetTokenExpiresIn time.Duration `env:"RESET_TOKEN_EXPIRES_IN" envDefault:"1h"`
	TokenIssuer         string        `env:"TOKEN_ISSUER"           envDefault:"collabnest-api"`
}

// Load reads the configuration from a .env file (when present) and the
// process environment. Missing required values are fatal.
func Load(logger *zerolog.Logger) *Config {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	return &cfg
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}
	if c.ResetTokenSecret == "" {
		return fmt.Errorf("missing RESET_TOKEN_SECRET environment variable")
	}

	return nil
}
