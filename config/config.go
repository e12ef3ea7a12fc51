package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Settings holds everything read from the environment. Load validates the
// required values once at startup so a misconfigured deployment fails
// immediately rather than on first use.
type Settings struct {
	// Identity provider
	SupabaseURL        string
	SupabaseKey        string
	SupabaseServiceKey string
	JWTSecret          string

	// Database
	DBHost     string
	DBPort     string
	DBUsername string
	DBPassword string
	DBDatabase string
	DBSSLMode  string

	// HTTP server
	ServerPort     string
	APIPrefix      string
	AllowedOrigins []string
	Environment    string
	Debug          bool
	DebugSQL       bool

	// File storage
	UploadPath string

	// SMTP notifications (optional; the mailer no-ops when unset)
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	SMTPSkipTLSVerify bool
}

// Load reads the settings from the environment.
func Load() (*Settings, error) {
	s := &Settings{
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseKey:        os.Getenv("SUPABASE_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		JWTSecret:          os.Getenv("JWT_SECRET"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBDatabase: os.Getenv("DB_DATABASE"),
		DBSSLMode:  getEnv("DB_SSLMODE", "require"),

		ServerPort:  getEnv("SERVER_PORT", "8000"),
		APIPrefix:   getEnv("API_PREFIX", "/api"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvBool("DEBUG", true),
		DebugSQL:    getEnvBool("DEBUG_SQL", false),

		UploadPath: getEnv("UPLOAD_PATH", "uploads"),

		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
		SMTPSkipTLSVerify: getEnvBool("SMTP_SKIP_TLS_VERIFY", false),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5000")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			s.AllowedOrigins = append(s.AllowedOrigins, origin)
		}
	}

	var missing []string
	for name, value := range map[string]string{
		"SUPABASE_URL": s.SupabaseURL,
		"SUPABASE_KEY": s.SupabaseKey,
		"JWT_SECRET":   s.JWTSecret,
		"DB_HOST":      s.DBHost,
		"DB_USERNAME":  s.DBUsername,
		"DB_DATABASE":  s.DBDatabase,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return s, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
