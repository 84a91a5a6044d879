package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"listings-api/pkg/logger"
)

type Config struct {
	HTTPPort       string
	Env            string
	AllowedOrigins []string
	DB             DBConfig
	Identity       IdentityConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// IdentityConfig points at the external identity service. BaseURL is
// mandatory: this service has no local authentication and every request is
// verified remotely.
type IdentityConfig struct {
	BaseURL         string
	IntrospectPath  string
	UserInfoPath    string
	AuthTimeout     time.Duration
	UserInfoTimeout time.Duration
	InternalSecret  string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		AllowedOrigins: splitCSV(getEnv("ALLOW_ORIGINS", "http://localhost:5173")),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "listings"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Identity: IdentityConfig{
			BaseURL:         strings.TrimRight(getEnv("IDENTITY_SERVICE_URL", ""), "/"),
			IntrospectPath:  getEnv("IDENTITY_INTROSPECT_PATH", "/api/auth/introspect"),
			UserInfoPath:    getEnv("IDENTITY_USER_INFO_PATH", "/api/v1/auth/admin/users"),
			AuthTimeout:     getEnvDuration("IDENTITY_AUTH_TIMEOUT", 5*time.Second),
			UserInfoTimeout: getEnvDuration("IDENTITY_USER_INFO_TIMEOUT", 10*time.Second),
			InternalSecret:  getEnv("INTERNAL_API_SECRET", ""),
		},
	}

	if cfg.Identity.BaseURL == "" {
		return Config{}, fmt.Errorf("IDENTITY_SERVICE_URL is required: authentication is fully delegated to the identity service")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
