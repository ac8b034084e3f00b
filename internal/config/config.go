package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Blob         BlobConfig
	Countries    CountriesConfig
	Upload       UploadConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds connection values for the record store backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BlobConfig holds S3-compatible blob storage values. An empty Bucket
// disables picture uploads.
type BlobConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// CountriesConfig points at the public country directory.
type CountriesConfig struct {
	Endpoint        string
	TimeoutSeconds  int
	CacheTTLMinutes int
}

// UploadConfig constrains profile picture uploads.
type UploadConfig struct {
	MaxSizeBytes int64
	KeyPrefix    string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxUpload, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE_BYTES", "5000000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE_BYTES: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "profile-registry"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Blob: BlobConfig{
			Endpoint:      os.Getenv("BLOB_ENDPOINT"),
			Region:        getEnv("BLOB_REGION", "us-east-1"),
			Bucket:        os.Getenv("BLOB_BUCKET"),
			AccessKey:     os.Getenv("BLOB_ACCESS_KEY"),
			SecretKey:     os.Getenv("BLOB_SECRET_KEY"),
			PublicBaseURL: os.Getenv("BLOB_PUBLIC_BASE_URL"),
		},
		Countries: CountriesConfig{
			Endpoint:        getEnv("COUNTRIES_ENDPOINT", "https://restcountries.com/v3.1/all?fields=name"),
			TimeoutSeconds:  getEnvAsInt("COUNTRIES_TIMEOUT_SECONDS", 10),
			CacheTTLMinutes: getEnvAsInt("COUNTRIES_CACHE_TTL_MINUTES", 60),
		},
		Upload: UploadConfig{
			MaxSizeBytes: maxUpload,
			KeyPrefix:    getEnv("UPLOAD_KEY_PREFIX", "profile/"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
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

// Timeout returns the directory fetch timeout.
func (c CountriesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the directory cache expiration.
func (c CountriesConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
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
