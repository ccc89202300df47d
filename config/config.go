package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Black-And-White-Club/party-bracket/pkg/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	AuthCallout   AuthCalloutConfig   `yaml:"auth_callout"`
	HTTP          HTTPConfig          `yaml:"http"`
	Tournament    TournamentConfig    `yaml:"tournament"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// AuthCalloutConfig holds NATS auth callout configuration.
type AuthCalloutConfig struct {
	Enabled bool   `yaml:"enabled"`
	Subject string `yaml:"subject"`
	// IssuerNKey is the account seed the callout signs user JWTs with.
	IssuerNKey string `yaml:"issuer_nkey"`
	// Account is the account user JWTs are placed in.
	Account string `yaml:"account"`
}

// HTTPConfig holds the HTTP API settings.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

// TournamentConfig tunes lobby housekeeping.
type TournamentConfig struct {
	StaleLobbyAfter time.Duration `yaml:"stale_lobby_after"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
	DisableQueue    bool          `yaml:"disable_queue"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	Version     string `yaml:"version"`
}

// Defaults applied after loading.
const (
	DefaultJWTTTL          = 24 * time.Hour
	DefaultHTTPAddress     = ":8080"
	DefaultRateLimitRPS    = 5
	DefaultRateLimitBurst  = 10
	DefaultStaleLobbyAfter = 2 * time.Hour
	DefaultSweepInterval   = 10 * time.Minute
	DefaultCalloutSubject  = "$SYS.REQ.USER.AUTH"
)

// LoadConfig loads the configuration from a YAML file, then applies environment overrides.
// A missing file falls back to environment-only configuration.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		cfg.JWT.Audience = v
	}
	if err := envDuration("JWT_DEFAULT_TTL", &cfg.JWT.DefaultTTL); err != nil {
		return err
	}
	if v := os.Getenv("AUTH_CALLOUT_ENABLED"); v != "" {
		cfg.AuthCallout.Enabled = v == "true"
	}
	if v := os.Getenv("AUTH_CALLOUT_SUBJECT"); v != "" {
		cfg.AuthCallout.Subject = v
	}
	if v := os.Getenv("AUTH_CALLOUT_ISSUER_NKEY"); v != "" {
		cfg.AuthCallout.IssuerNKey = v
	}
	if v := os.Getenv("AUTH_CALLOUT_ACCOUNT"); v != "" {
		cfg.AuthCallout.Account = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT_RPS value: %v", err)
		}
		cfg.HTTP.RateLimitRPS = f
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT_BURST value: %v", err)
		}
		cfg.HTTP.RateLimitBurst = n
	}
	if err := envDuration("STALE_LOBBY_AFTER", &cfg.Tournament.StaleLobbyAfter); err != nil {
		return err
	}
	if err := envDuration("SWEEP_INTERVAL", &cfg.Tournament.SweepInterval); err != nil {
		return err
	}
	if v := os.Getenv("DISABLE_QUEUE"); v != "" {
		cfg.Tournament.DisableQueue = v == "true"
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.DefaultTTL <= 0 {
		cfg.JWT.DefaultTTL = DefaultJWTTTL
	}
	if cfg.AuthCallout.Subject == "" {
		cfg.AuthCallout.Subject = DefaultCalloutSubject
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = DefaultHTTPAddress
	}
	if cfg.HTTP.RateLimitRPS <= 0 {
		cfg.HTTP.RateLimitRPS = DefaultRateLimitRPS
	}
	if cfg.HTTP.RateLimitBurst <= 0 {
		cfg.HTTP.RateLimitBurst = DefaultRateLimitBurst
	}
	if cfg.Tournament.StaleLobbyAfter <= 0 {
		cfg.Tournament.StaleLobbyAfter = DefaultStaleLobbyAfter
	}
	if cfg.Tournament.SweepInterval <= 0 {
		cfg.Tournament.SweepInterval = DefaultSweepInterval
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %v", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName: "party-bracket",
		Environment: appCfg.Observability.Environment,
		Version:     appCfg.Observability.Version,
		LogLevel:    appCfg.Observability.LogLevel,
	}
}
