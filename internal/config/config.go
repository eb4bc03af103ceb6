package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL            string
	DBMaxOpenConns         int
	DBMaxIdleConns         int
	JWTSecret              string
	JWTIssuer              string
	AccessTTLSeconds       int64
	Port                   string
	CorsOrigins            []string
	Env                    string
	LogDir                 string
	LogLevel               string
	LogRetentionDays       int
	MigrationsDir          string
	DefaultPageSize        int
	MaxPageSize            int
	RatingRequiresResolved bool
	AuthRequired           bool
}

func Load() Config {
	return Config{
		DatabaseURL:            mustEnv("DATABASE_URL"),
		DBMaxOpenConns:         envOrInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:         envOrInt("DB_MAX_IDLE_CONNS", 5),
		JWTSecret:              mustEnv("JWT_SECRET"),
		JWTIssuer:              envOr("JWT_ISSUER", "civicreport"),
		AccessTTLSeconds:       int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		Port:                   envOr("PORT", "8080"),
		CorsOrigins:            parseCSV(envOr("CORS_ORIGINS", "")),
		Env:                    envOr("ENV", "production"),
		LogDir:                 envOr("LOG_DIR", "storage/logs"),
		LogLevel:               envOr("LOG_LEVEL", "info"),
		LogRetentionDays:       clamp(envOrInt("LOG_RETENTION_DAYS", 7), 1, 7),
		MigrationsDir:          envOr("MIGRATIONS_DIR", "migrations"),
		DefaultPageSize:        envOrInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:            envOrInt("MAX_PAGE_SIZE", 100),
		RatingRequiresResolved: envOrBool("RATING_REQUIRES_RESOLVED", false),
		AuthRequired:           envOrBool("AUTH_REQUIRED", false),
	}
}

func (c Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
