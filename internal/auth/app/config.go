package app

import (
	"os"
	"strconv"
	"time"
)

// Insecure fallbacks, acceptable only outside production. Startup logs a
// warning whenever the default secret is in use.
const (
	DefaultSecretKey = "insecure-dev-secret-do-not-use-in-production"
	DefaultIssuer    = "clinic-auth"
	DefaultAudience  = "clinic-api"
)

type Config struct {
	SecretKey string // Signing key for access tokens
	Issuer    string // iss claim minted and expected
	Audience  string // aud claim minted and expected

	TokenTTL       time.Duration // Access token lifetime (default: 60m)
	OtpTTL         time.Duration // OTP validity window (default: 2m)
	OtpCodeLength  int           // OTP digits (default: 4)
	OtpBypassLogin bool          // Empty-phone admin login shortcut (default: false)

	DatabaseFile  string // Path to SQLite database file (default: ./auth.db)
	RedisAddr     string // OTP cache address (default: localhost:6379)
	RedisPassword string // Optional

	SMSGatewayURL string // Unset means codes are logged instead of sent
	SMSAPIKey     string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SecretKey: getEnvOrDefault("AUTH_SECRET_KEY", DefaultSecretKey),
		Issuer:    getEnvOrDefault("AUTH_ISSUER", DefaultIssuer),
		Audience:  getEnvOrDefault("AUTH_AUDIENCE", DefaultAudience),

		TokenTTL:       getEnvDurationOrDefault("AUTH_TOKEN_TTL", 60*time.Minute),
		OtpTTL:         getEnvDurationOrDefault("AUTH_OTP_TTL", 2*time.Minute),
		OtpCodeLength:  getEnvIntOrDefault("AUTH_OTP_CODE_LENGTH", 4),
		OtpBypassLogin: getEnvBoolOrDefault("AUTH_OTP_BYPASS_LOGIN", false),

		DatabaseFile:  getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMSGatewayURL: os.Getenv("SMS_GATEWAY_URL"),
		SMSAPIKey:     os.Getenv("SMS_API_KEY"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration syntax ("2m", "90s") first, integer minutes second.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
