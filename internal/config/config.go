package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Push      PushConfig
	Storage   StorageConfig
	Ai        AIConfig
	Lifecycle LifecycleConfig
	Reminder  ReminderConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string // public front-end origin used in links
	Environment        string
	LogFilePath        string
	EventLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DefaultTimezone    string
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Driver          string // "postgres" or "memory"
	Connection      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type AuthConfig struct {
	JwtSecret      string
	CollabSecret   string
	CollabTokenTTL time.Duration
	CronSecret     string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type PushConfig struct {
	VapidPublicKey  string
	VapidPrivateKey string
	Subject         string
	TTL             int
	Timeout         time.Duration
}

type StorageConfig struct {
	Driver    string // "local" or "s3"
	LocalDir  string
	PublicURL string // base URL for objects in S3-compatible storage
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type AIConfig struct {
	LLMProvider   string // "gemini" or "ollama"
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OllamaBaseURL string
	OllamaModel   string
	CacheTTL      time.Duration
	Timeout       time.Duration
}

type LifecycleConfig struct {
	MaxDepth int
}

type ReminderConfig struct {
	SweepSchedule string // robfig/cron spec, empty disables the in-process sweep
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          strings.TrimRight(getEnv("APP_URL", "http://localhost:5173"), "/"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			EventLogFilePath:   getEnv("EVENT_LOG_FILE_PATH", "logs/events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			DefaultTimezone:    getEnv("DEFAULT_TIMEZONE", "UTC"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Connection:      getEnv("DB_CONNECTION_STRING", ""),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			JwtSecret:      getEnv("JWT_SECRET", ""),
			CollabSecret:   getEnv("COLLAB_SECRET", ""),
			CollabTokenTTL: getEnvAsDuration("COLLAB_TOKEN_TTL", 10*time.Minute),
			CronSecret:     getEnv("CRON_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CollabNote"),
		},
		Push: PushConfig{
			VapidPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			VapidPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subject:         getEnv("VAPID_SUBJECT", "mailto:admin@example.com"),
			TTL:             getEnvAsInt("PUSH_TTL", 60),
			Timeout:         getEnvAsDuration("PUSH_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicURL: strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("LLM_MODEL", "llama3"),
			CacheTTL:      getEnvAsDuration("AI_CACHE_TTL", time.Hour),
			Timeout:       getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
		},
		Lifecycle: LifecycleConfig{
			MaxDepth: getEnvAsInt("LIFECYCLE_MAX_DEPTH", 64),
		},
		Reminder: ReminderConfig{
			SweepSchedule: getEnv("REMINDER_SWEEP_SCHEDULE", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "collabnote-backend"),
		},
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
