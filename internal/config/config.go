package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway. It is built once
// in main and passed explicitly to every constructor; nothing reads the
// environment after startup.
type Config struct {
	App      AppConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	CORS     CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	// ExposeUpstreamErrors attaches raw upstream error payloads to 5xx
	// responses. Forced off in production regardless of the env value.
	ExposeUpstreamErrors bool
}

// SupabaseConfig holds the upstream identity provider and ticket store
// endpoints plus the credential tiers the gateway may present.
type SupabaseConfig struct {
	URL        string
	AnonKey    string
	ServiceKey string
	// JWTSecret verifies caller access tokens locally. When empty the
	// gateway falls back to an identity-provider round trip per request.
	JWTSecret string

	TicketsTable  string
	ProfilesTable string
	SectorsTable  string
	StatusesTable string

	DefaultStatusID int
}

// RedisConfig holds Redis connection values for the reference-data cache.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	ReferenceTTLSec int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CORSConfig lists origins allowed to call the gateway.
type CORSConfig struct {
	AllowedOrigins string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			ExposeUpstreamErrors:  getEnvAsBool("EXPOSE_UPSTREAM_ERRORS", true),
		},
		Supabase: SupabaseConfig{
			URL:             strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			AnonKey:         os.Getenv("SUPABASE_ANON_KEY"),
			ServiceKey:      os.Getenv("SUPABASE_SERVICE_KEY"),
			JWTSecret:       os.Getenv("SUPABASE_JWT_SECRET"),
			TicketsTable:    getEnv("TICKETS_TABLE", "Chamados"),
			ProfilesTable:   getEnv("PROFILES_TABLE", "usuarios"),
			SectorsTable:    getEnv("SECTORS_TABLE", "setores"),
			StatusesTable:   getEnv("STATUSES_TABLE", "status_chamado"),
			DefaultStatusID: getEnvAsInt("DEFAULT_STATUS_ID", 1),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			ReferenceTTLSec: getEnvAsInt("REFERENCE_CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if strings.EqualFold(cfg.App.Env, "production") {
		cfg.App.ExposeUpstreamErrors = false
	}

	if cfg.Supabase.URL == "" {
		return nil, errors.New("SUPABASE_URL is required")
	}
	if cfg.Supabase.AnonKey == "" {
		return nil, errors.New("SUPABASE_ANON_KEY is required")
	}
	if cfg.Supabase.ServiceKey == "" {
		return nil, errors.New("SUPABASE_SERVICE_KEY is required")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ReferenceTTL returns how long cached sector/status lists stay fresh.
func (r RedisConfig) ReferenceTTL() time.Duration {
	if r.ReferenceTTLSec <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.ReferenceTTLSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
