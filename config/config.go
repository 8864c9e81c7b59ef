package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port           string   `env:"PORT" env-default:"8080"`
	DatabaseURL    string   `env:"DB_URL"`
	Auth0Domain    string   `env:"AUTH0_DOMAIN"`
	Auth0Audience  string   `env:"AUTH0_AUDIENCE" env-default:"flashdeck-api"`
	JWTSecret      string   `env:"JWT_SECRET_KEY"`
	AnthropicModel string   `env:"ANTHROPIC_MODEL" env-default:"claude-sonnet-4-5"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

// Load reads configuration from the environment. godotenv has already
// populated the environment from .env by the time this runs locally.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DevMode reports whether token validation should fall back to the local
// HS256 secret instead of the Auth0 JWKS endpoint.
func (c Config) DevMode() bool {
	return c.Auth0Domain == ""
}
