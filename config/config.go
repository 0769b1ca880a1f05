package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultJWTSecret is only acceptable outside production.
	DefaultJWTSecret = "your-secret-key"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis is optional; rate limiting is disabled without it
	RedisURL string

	// Token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Image storage
	StorageBackend string
	MediaRoot      string
	MediaURL       string
	S3BucketName   string
	AWSRegion      string
	S3Endpoint     string
	S3PresignTTL   time.Duration

	CORSAllowedOrigins []string
	LogLevel           string
}

// LoadConfig creates a new Config instance from environment variables, Docker secrets and
// an optional .env file, in that order of precedence.
func LoadConfig() (*Config, error) {
	// A missing .env file is the normal case in containers.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{Environment: env}

	cfg.ServerHost = lookup("SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = lookup("SERVER_PORT", "8080")

	cfg.DBDriver = strings.ToLower(lookup("DB_DRIVER", DriverPostgres))
	cfg.DBHost = lookup("DB_HOST", "localhost")
	cfg.DBPort = lookup("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD", "postgres")
	cfg.DBName = lookup("DB_NAME", "recipes")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "disable")
	cfg.SQLitePath = lookup("SQLITE_PATH", "recipes.db")

	cfg.RedisURL = lookup("REDIS_URL", "")

	cfg.JWTSecret = lookup("JWT_SECRET", DefaultJWTSecret)
	ttl, err := lookupDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	cfg.StorageBackend = strings.ToLower(lookup("STORAGE_BACKEND", StorageLocal))
	cfg.MediaRoot = lookup("MEDIA_ROOT", "vol/web/media")
	cfg.MediaURL = lookup("MEDIA_URL", "/media")
	cfg.S3BucketName = lookup("S3_BUCKET_NAME", "")
	cfg.AWSRegion = lookup("AWS_REGION", "us-east-1")
	cfg.S3Endpoint = lookup("S3_ENDPOINT", "")
	presign, err := lookupDuration("S3_PRESIGN_TTL", 0)
	if err != nil {
		return nil, err
	}
	cfg.S3PresignTTL = presign

	cfg.CORSAllowedOrigins = splitList(lookup("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://frontend:5173"))
	cfg.LogLevel = lookup("LOG_LEVEL", "info")

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the gorm connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup reads an environment variable, falling back to a Docker secret of the same name in
// lower case and finally to def.
func lookup(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

func lookupDuration(key string, def time.Duration) (time.Duration, error) {
	raw := lookup(key, "")
	if raw == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	// Plain integers are seconds.
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", raw)}
	}
	return time.Duration(secs) * time.Second, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
