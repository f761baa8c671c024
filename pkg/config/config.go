package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const devJWTSecret = "dev_secret"

// ErrInsecureJWTSecret is returned when production runs without a provider secret.
var ErrInsecureJWTSecret = errors.New("AUTH_JWT_SECRET must be set to the auth provider secret in production")

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Matcher  MatcherConfig
	Stats    StatsConfig
	Cohorts  CohortConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig describes how tokens minted by the external auth provider are verified.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MatcherConfig configures the chat-completions endpoint used to match form submissions.
type MatcherConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	SiteURL   string
	SiteTitle string
}

// StatsConfig governs caching of the public cohort statistics.
type StatsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// CohortConfig holds cohort defaults.
type CohortConfig struct {
	DefaultCapacity int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("AUTH_JWT_SECRET"),
		Issuer:    v.GetString("AUTH_JWT_ISSUER"),
		Audience:  v.GetString("AUTH_JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxTokens := v.GetInt("OPENROUTER_MAX_TOKENS")
	if maxTokens <= 0 {
		maxTokens = 100
	}
	cfg.Matcher = MatcherConfig{
		APIKey:    v.GetString("OPENROUTER_API_KEY"),
		BaseURL:   strings.TrimRight(v.GetString("OPENROUTER_BASE_URL"), "/"),
		Model:     v.GetString("OPENROUTER_MODEL"),
		MaxTokens: maxTokens,
		Timeout:   parseDuration(v.GetString("OPENROUTER_TIMEOUT"), 30*time.Second),
		SiteURL:   v.GetString("SITE_URL"),
		SiteTitle: v.GetString("SITE_TITLE"),
	}

	cfg.Stats = StatsConfig{
		CacheEnabled: v.GetBool("STATS_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("STATS_CACHE_TTL"), time.Minute),
	}

	capacity := v.GetInt("DEFAULT_COHORT_CAPACITY")
	if capacity <= 0 {
		capacity = 30
	}
	cfg.Cohorts = CohortConfig{DefaultCapacity: capacity}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Env != EnvProduction {
		return nil
	}
	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if secret == "" || secret == devJWTSecret {
		return ErrInsecureJWTSecret
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "kairos")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_JWT_SECRET", devJWTSecret)
	v.SetDefault("AUTH_JWT_ISSUER", "")
	v.SetDefault("AUTH_JWT_AUDIENCE", "authenticated")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("OPENROUTER_API_KEY", "")
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("OPENROUTER_MODEL", "google/gemini-2.0-flash-001")
	v.SetDefault("OPENROUTER_MAX_TOKENS", 100)
	v.SetDefault("OPENROUTER_TIMEOUT", "30s")
	v.SetDefault("SITE_URL", "https://kairostranscultural.ifrim.tech")
	v.SetDefault("SITE_TITLE", "Kairos Transcultural")

	v.SetDefault("STATS_CACHE_ENABLED", true)
	v.SetDefault("STATS_CACHE_TTL", "1m")
	v.SetDefault("DEFAULT_COHORT_CAPACITY", 30)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
