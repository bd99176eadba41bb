package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds every runtime setting, loaded once at startup.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	JWTSecret       string `envconfig:"JWT_SECRET" default:"your-super-secret-key-change-in-production"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"24"`

	GroqAPIKey string `envconfig:"GROQ_API_KEY"`
	GroqModel  string `envconfig:"GROQ_MODEL" default:"llama-3.1-8b-instant"`

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	return &cfg, nil
}

func (c *Config) Address() string {
	return ":" + c.Port
}
