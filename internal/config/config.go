package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the process configuration, parsed from environment variables.
type Config struct {
	AppPort     string `env:"APP_PORT" envDefault:"8001"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	MongoURI    string `env:"MONGO_URI,required,notEmpty"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"elysian"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	RedirectURI string `env:"REDIRECT_URI" envDefault:"http://127.0.0.1:8001/auth"`

	MessageServiceURL string        `env:"MESSAGE_SERVICE_URL" envDefault:"http://127.0.0.1:3000/message"`
	MessageTimeout    time.Duration `env:"MESSAGE_TIMEOUT" envDefault:"10s"`

	NatsURL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`

	Google struct {
		ClientID     string `env:"GOOGLE_CLIENT_ID"`
		ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	}

	Facebook struct {
		AppID     string `env:"FACEBOOK_APP_ID"`
		AppSecret string `env:"FACEBOOK_APP_SECRET"`
	}
}

// Load reads the .env file when present (dev convenience) and parses the
// environment into a Config.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &cfg, nil
}
