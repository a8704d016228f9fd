package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RemoteConfig holds settings for the remote employee/document API.
type RemoteConfig struct {
	BaseURL    string
	TimeoutSec int
}

// FormConfig holds upload form behavior settings.
type FormConfig struct {
	PlaceholderName string
	LoginPath       string
	ResultsPath     string
	RedirectDelayMs int
	MaxUploadMB     int
	FormTTLMin      int
}

// RedirectDelay returns the delay between a successful upload and navigation.
func (f FormConfig) RedirectDelay() time.Duration {
	return time.Duration(f.RedirectDelayMs) * time.Millisecond
}

// FormTTL returns how long an untouched form is kept in memory.
func (f FormConfig) FormTTL() time.Duration {
	return time.Duration(f.FormTTLMin) * time.Minute
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Timezone    string
	CORSOrigins string
	Swagger     bool
	Remote      RemoteConfig
	Form        FormConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		Swagger:     getEnvBool("SWAGGER_ENABLED", true),
		Remote: RemoteConfig{
			BaseURL:    strings.TrimRight(getEnv("REMOTE_API_BASE_URL", "https://servocci-backend.onrender.com"), "/"),
			TimeoutSec: getEnvInt("REMOTE_API_TIMEOUT_SEC", 30),
		},
		Form: FormConfig{
			PlaceholderName: getEnv("FORM_PLACEHOLDER_NAME", "Student"),
			LoginPath:       getEnv("FORM_LOGIN_PATH", "/"),
			ResultsPath:     getEnv("FORM_RESULTS_PATH", "/admin-dashboard/employees"),
			RedirectDelayMs: getEnvInt("FORM_REDIRECT_DELAY_MS", 2000),
			MaxUploadMB:     getEnvInt("FORM_MAX_UPLOAD_MB", 20),
			FormTTLMin:      getEnvInt("FORM_TTL_MIN", 60),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
