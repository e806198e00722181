package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/xavierca1/qrleads/internal/util"
)

const MinJWTSecretLength = 32

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     int    `env:"PORT" envDefault:"8080"`
	AppURL   string `env:"APP_URL" envDefault:"http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL   string `env:"DATABASE_URL,required"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// RabbitMQ é opcional; sem ele as notificações ficam para o sweeper.
	RabbitMQURL string `env:"RABBITMQ_URL"`

	RedisURL     string        `env:"REDIS_URL"`
	PageCacheTTL time.Duration `env:"PAGE_CACHE_TTL" envDefault:"10m"`

	MailHost        string `env:"MAIL_HOST"`
	MailPort        int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser        string `env:"MAIL_USER"`
	MailPass        string `env:"MAIL_PASS"`
	MailFrom        string `env:"MAIL_FROM" envDefault:"noreply@localhost"`
	ConsultantEmail string `env:"CONSULTANT_EMAIL"`

	JWTSecret         string `env:"JWT_SECRET,required"`
	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// Kommo CRM export, off when either value is empty.
	KommoBaseURL  string `env:"KOMMO_BASE_URL"`
	KommoToken    string `env:"KOMMO_API_TOKEN"`
	KommoStatusID int    `env:"KOMMO_STATUS_ID"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Proxies (CIDR ou IP) cujos X-Forwarded-For / X-Real-IP são aceitos.
	// Vazio: os headers de encaminhamento são ignorados.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	proxies        util.TrustedProxies

	LeadRateLimit float64       `env:"LEAD_RATE_LIMIT" envDefault:"0.2"`
	LeadRateBurst int           `env:"LEAD_RATE_BURST" envDefault:"5"`
	SweepInterval time.Duration `env:"NOTIFICATION_SWEEP_INTERVAL" envDefault:"1m"`
	SweepGrace    time.Duration `env:"NOTIFICATION_SWEEP_GRACE" envDefault:"2m"`
}

func (c Config) IsDevelopment() bool { return c.Env == "development" }

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) UseRabbitMQ() bool { return c.RabbitMQURL != "" }

func (c Config) UseRedis() bool { return c.RedisURL != "" }

func (c Config) MailEnabled() bool { return c.MailHost != "" }

func (c Config) KommoEnabled() bool { return c.KommoBaseURL != "" && c.KommoToken != "" }

// Proxies returns TRUSTED_PROXIES as parsed by Validate.
func (c Config) Proxies() util.TrustedProxies { return c.proxies }

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return Parse(env.Options{})
}

func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d", MinJWTSecretLength, len(c.JWTSecret))
	}
	if c.AdminEmail == "" || (c.AdminPassword == "" && c.AdminPasswordHash == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH) are required")
	}
	if c.LeadRateLimit <= 0 || c.LeadRateBurst <= 0 {
		return errors.New("LEAD_RATE_LIMIT and LEAD_RATE_BURST must be positive")
	}
	proxies, err := util.ParseTrustedProxies(c.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	c.proxies = proxies
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	return nil
}

// NewLogger builds the process logger: text in development, JSON otherwise.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
