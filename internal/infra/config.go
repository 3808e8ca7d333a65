package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiVisionModel string
	GeminiBaseURL     string
	GeminiTimeout     time.Duration
	CORSOrigins       []string
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
	MaxUploadBytes    int64
}

// LoadConfig loads configuration from environment variables and applies
// defaults. Nothing is mandatory: the prompt library needs DATABASE_URL and
// the text/image structuring endpoints need a Gemini key, both are optional.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8001"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiVisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-2.5-pro"),
		GeminiBaseURL:     strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		GeminiTimeout:     time.Second * time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 60)),
		CORSOrigins:       getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 90)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.GeminiTimeout <= 0 {
		cfg.GeminiTimeout = 60 * time.Second
	}
	return cfg, nil
}

// LibraryEnabled reports whether a database is configured.
func (c *Config) LibraryEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
