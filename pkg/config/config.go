package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	// AI provider
	AIProvider    string
	GroqAPIKey    string
	GroqModel     string
	GroqBaseURL   string
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string

	// Storage
	DBDriver      string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	// SMTP
	SMTPHost        string
	SMTPPort        int
	SMTPSecure      bool
	SMTPUser        string
	SMTPPass        string
	SMTPFrom        string
	SMTPTLSInsecure bool

	// Uploads
	UploadTempDir  string
	MaxUploadBytes int64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		AIProvider:    strings.ToLower(getEnv("AI_PROVIDER", "groq")),
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		GroqModel:     getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mongo")),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "meeting_notes"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPSecure:      getEnvBool("SMTP_SECURE", false),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPass:        getEnv("SMTP_PASS", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		SMTPTLSInsecure: getEnvBool("SMTP_TLS_INSECURE", false),

		UploadTempDir:  getEnv("UPLOAD_TEMP_DIR", filepath.Join(os.TempDir(), "meeting-notes-uploads")),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
	}
}

// Validate returns an error for settings the process cannot start without.
// Settings that only disable one feature are reported by Warnings instead.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "mongo":
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when DB_DRIVER=mongo"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DB_DRIVER=postgres"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q (want mongo, postgres or memory)", c.DBDriver))
	}

	switch c.AIProvider {
	case "groq", "gemini", "ollama":
	default:
		errs = append(errs, fmt.Errorf("unknown AI_PROVIDER %q (want groq, gemini or ollama)", c.AIProvider))
	}

	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

// Warnings lists settings whose absence disables a single feature.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.AIProvider == "groq" && c.GroqAPIKey == "" {
		warnings = append(warnings, "GROQ_API_KEY not set: summary generation will fail")
	}
	if c.AIProvider == "gemini" && c.GeminiAPIKey == "" {
		warnings = append(warnings, "GEMINI_API_KEY not set: summary generation will fail")
	}
	if c.SMTPHost == "" || c.SMTPUser == "" || c.SMTPPass == "" {
		warnings = append(warnings, "SMTP_HOST, SMTP_USER or SMTP_PASS not set: sharing summaries by email is disabled")
	}
	return warnings
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
