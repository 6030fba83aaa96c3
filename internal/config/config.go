package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration

	CredentialsFile string
	TokenFile       string

	DrivePageSize  int64
	DriveRateLimit float64
	DriveBurst     int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	APIPassphraseHash string
	JWTSecret         string
	JWTAccessTTL      time.Duration

	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int

	StreamMaxDuration time.Duration
	StreamIdleTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 120*time.Second),
		CredentialsFile:         getEnv("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		TokenFile:               getEnv("GOOGLE_TOKEN_FILE", "./token.json"),
		DrivePageSize:           getInt64("DRIVE_PAGE_SIZE", 1000),
		DriveRateLimit:          getFloat("DRIVE_RATE_LIMIT_QPS", 8),
		DriveBurst:              getInt("DRIVE_RATE_BURST", 16),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 4)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		APIPassphraseHash:       strings.TrimSpace(os.Getenv("API_PASSPHRASE_HASH")),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAccessTTL:            getDuration("JWT_ACCESS_TTL", 12*time.Hour),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 120),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		StreamMaxDuration:       getDuration("STREAM_MAX_DURATION", 30*time.Minute),
		StreamIdleTimeout:       getDuration("STREAM_IDLE_TIMEOUT", 2*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if strings.TrimSpace(c.CredentialsFile) == "" {
		return fmt.Errorf("GOOGLE_CREDENTIALS_FILE cannot be empty")
	}

	if strings.TrimSpace(c.TokenFile) == "" {
		return fmt.Errorf("GOOGLE_TOKEN_FILE cannot be empty")
	}

	if c.DrivePageSize <= 0 || c.DrivePageSize > 1000 {
		return fmt.Errorf("DRIVE_PAGE_SIZE must be between 1 and 1000")
	}

	if c.DriveRateLimit <= 0 {
		return fmt.Errorf("DRIVE_RATE_LIMIT_QPS must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	// Login is optional for local use, but a passphrase without a signing
	// secret (or the reverse) is a misconfiguration.
	if (c.APIPassphraseHash == "") != (c.JWTSecret == "") {
		return fmt.Errorf("API_PASSPHRASE_HASH and JWT_SECRET must be set together")
	}

	return nil
}

func (c *Config) AuthEnabled() bool {
	return c.APIPassphraseHash != "" && c.JWTSecret != ""
}

func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
