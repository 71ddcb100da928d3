package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSummarizerURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Summarizer SummarizerConfig
	Infra      InfraConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
	TokenTTL  time.Duration
}

type SummarizerConfig struct {
	APIKey    string
	URL       string
	MinLength int
	MaxLength int
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// InfraConfig holds optional collaborators. An empty URL disables the integration.
type InfraConfig struct {
	NatsURL      string
	RedisURL     string
	OtelEnabled  bool
	OtelEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Summarizer: SummarizerConfig{
			APIKey:    getEnv("HF_API_KEY", ""),
			URL:       getEnv("SUMMARIZER_URL", defaultSummarizerURL),
			MinLength: getEnvAsInt("SUMMARIZER_MIN_LENGTH", 40),
			MaxLength: getEnvAsInt("SUMMARIZER_MAX_LENGTH", 120),
			Timeout:   getEnvAsDuration("SUMMARIZER_TIMEOUT", 20*time.Second),
			CacheTTL:  getEnvAsDuration("SUMMARY_CACHE_TTL", time.Hour),
		},
		Infra: InfraConfig{
			NatsURL:      getEnv("NATS_URL", ""),
			RedisURL:     getEnv("REDIS_URL", ""),
			OtelEnabled:  getEnv("OTEL_ENABLED", "") == "true",
			OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Connection == "" {
		missing = append(missing, "DB_CONNECTION_STRING")
	}
	if c.Auth.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", ")))
	}
	if c.Summarizer.MinLength > c.Summarizer.MaxLength {
		errs = append(errs, fmt.Errorf("SUMMARIZER_MIN_LENGTH (%d) exceeds SUMMARIZER_MAX_LENGTH (%d)",
			c.Summarizer.MinLength, c.Summarizer.MaxLength))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
