package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	AppEnv   string
	Port     string
	Database DatabaseConfig
	Upload   UploadConfig
	ETL      ETLConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir       string
	MaxSizeMB int64
}

// ETLConfig holds import pipeline configuration
type ETLConfig struct {
	// FileDelay is the pause between files within a job. It is a throttle
	// bounding load on the database, not a retry backoff.
	FileDelay time.Duration
	// Workers bounds how many jobs may run concurrently. Files within a
	// single job are always processed sequentially.
	Workers int
	// QueueSize is the capacity of the job submission queue.
	QueueSize int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "empowerfresh"),
		},
		Upload: UploadConfig{
			Dir:       getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeMB: getEnvInt64("UPLOAD_MAX_SIZE_MB", 64),
		},
		ETL: ETLConfig{
			FileDelay: time.Duration(getEnvInt64("ETL_FILE_DELAY_MS", 1000)) * time.Millisecond,
			Workers:   int(getEnvInt64("ETL_WORKERS", 2)),
			QueueSize: int(getEnvInt64("ETL_QUEUE_SIZE", 32)),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 gets an integer environment variable with default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
