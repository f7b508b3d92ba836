package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// FrontendURL is where Google-login callbacks redirect the browser.
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`

	// AutoVerifyFallback marks new accounts verified when SMTP is not
	// configured, instead of stranding them unverifiable.
	AutoVerifyFallback bool `env:"AUTO_VERIFY_FALLBACK, default=true"`

	ResetTicketTTL time.Duration `env:"RESET_TICKET_TTL, default=15m"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Google GoogleConfig
	LastFM LastFMConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=beatbridge"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig is optional; an empty Host disables outbound mail and engages
// the auto-verify fallback policy.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	TLS      bool   `env:"SMTP_TLS,  default=true"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=noreply@beatbridge.app"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL, default=http://localhost:8080/api/google-login/callback"`
}

type LastFMConfig struct {
	APIKey string `env:"LASTFM_API_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
