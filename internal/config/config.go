package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	JWTSecret           string
	AuthEnabled         bool
	APIClientID         string
	APIClientSecretHash string

	EphemerisURL          string
	EphemerisTimeout      time.Duration
	EphemerisRetries      int
	EphemerisRetryBackoff time.Duration
	EphemerisCacheSize    int
	EphemerisCacheDB      string

	DigestSchedule   string
	DigestTimezone   string
	DigestLatitude   float64
	DigestLongitude  float64
	DigestRecipients []string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		APIClientID:         getEnv("API_CLIENT_ID", "kundli"),
		APIClientSecretHash: getEnv("API_CLIENT_SECRET_HASH", ""),
		EphemerisURL:        getEnv("EPHEMERIS_URL", "http://localhost:8090/ephemeris.asmx"),
		EphemerisCacheDB:    getEnv("EPHEMERIS_CACHE_DB", ""),
		DigestSchedule:      getEnv("DIGEST_SCHEDULE", "0 5 * * *"),
		DigestTimezone:      getEnv("DIGEST_TIMEZONE", "Asia/Kolkata"),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", "panchang@localhost"),
		DigestRecipients:    splitList(getEnv("DIGEST_RECIPIENTS", "")),
	}

	var err error
	if cfg.AuthEnabled, err = strconv.ParseBool(getEnv("AUTH_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("invalid AUTH_ENABLED: %w", err)
	}
	if cfg.EphemerisTimeout, err = time.ParseDuration(getEnv("EPHEMERIS_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("invalid EPHEMERIS_TIMEOUT: %w", err)
	}
	if cfg.EphemerisRetries, err = strconv.Atoi(getEnv("EPHEMERIS_RETRIES", "2")); err != nil {
		return nil, fmt.Errorf("invalid EPHEMERIS_RETRIES: %w", err)
	}
	if cfg.EphemerisRetryBackoff, err = time.ParseDuration(getEnv("EPHEMERIS_RETRY_BACKOFF", "200ms")); err != nil {
		return nil, fmt.Errorf("invalid EPHEMERIS_RETRY_BACKOFF: %w", err)
	}
	if cfg.EphemerisCacheSize, err = strconv.Atoi(getEnv("EPHEMERIS_CACHE_SIZE", "4096")); err != nil {
		return nil, fmt.Errorf("invalid EPHEMERIS_CACHE_SIZE: %w", err)
	}
	if cfg.DigestLatitude, err = strconv.ParseFloat(getEnv("DIGEST_LATITUDE", "28.6139"), 64); err != nil {
		return nil, fmt.Errorf("invalid DIGEST_LATITUDE: %w", err)
	}
	if cfg.DigestLongitude, err = strconv.ParseFloat(getEnv("DIGEST_LONGITUDE", "77.2090"), 64); err != nil {
		return nil, fmt.Errorf("invalid DIGEST_LONGITUDE: %w", err)
	}

	if cfg.EphemerisURL == "" {
		return nil, fmt.Errorf("EPHEMERIS_URL is required")
	}
	if cfg.EphemerisTimeout <= 0 {
		return nil, fmt.Errorf("EPHEMERIS_TIMEOUT must be positive")
	}
	if cfg.EphemerisRetries < 0 {
		return nil, fmt.Errorf("EPHEMERIS_RETRIES must not be negative")
	}
	if cfg.EphemerisCacheSize <= 0 {
		return nil, fmt.Errorf("EPHEMERIS_CACHE_SIZE must be positive")
	}
	if cfg.DigestLatitude < -90 || cfg.DigestLatitude > 90 {
		return nil, fmt.Errorf("DIGEST_LATITUDE must be within [-90, 90]")
	}
	if cfg.DigestLongitude < -180 || cfg.DigestLongitude > 180 {
		return nil, fmt.Errorf("DIGEST_LONGITUDE must be within [-180, 180]")
	}
	if _, err := time.LoadLocation(cfg.DigestTimezone); err != nil {
		return nil, fmt.Errorf("invalid DIGEST_TIMEZONE: %w", err)
	}
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		if cfg.APIClientSecretHash == "" {
			return nil, fmt.Errorf("API_CLIENT_SECRET_HASH is required when AUTH_ENABLED is set")
		}
	}

	return cfg, nil
}

// DigestEnabled reports whether the daily panchang should be mailed
func (c *Config) DigestEnabled() bool {
	return c.SMTPHost != "" && len(c.DigestRecipients) > 0
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
