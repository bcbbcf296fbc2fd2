package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearConfigEnv blanks every variable LoadConfig reads so a host
// environment cannot leak into the assertions.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AUTH_SECRET_KEY", "AUTH_ISSUER", "AUTH_AUDIENCE",
		"AUTH_TOKEN_TTL", "AUTH_OTP_TTL", "AUTH_OTP_CODE_LENGTH", "AUTH_OTP_BYPASS_LOGIN",
		"AUTH_DATABASE_FILE", "REDIS_ADDR", "REDIS_PASSWORD",
		"SMS_GATEWAY_URL", "SMS_API_KEY",
		"ENV", "LOG_LEVEL", "LOG_FORMAT", "PORT", "SHUTDOWN_GRACE_PERIOD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := LoadConfig()

	require.Equal(t, DefaultSecretKey, cfg.SecretKey)
	require.Equal(t, DefaultIssuer, cfg.Issuer)
	require.Equal(t, DefaultAudience, cfg.Audience)
	require.Equal(t, 60*time.Minute, cfg.TokenTTL)
	require.Equal(t, 2*time.Minute, cfg.OtpTTL)
	require.Equal(t, 4, cfg.OtpCodeLength)
	require.False(t, cfg.OtpBypassLogin)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AUTH_SECRET_KEY", "prod-secret")
	t.Setenv("AUTH_TOKEN_TTL", "15m")
	t.Setenv("AUTH_OTP_TTL", "5") // bare integer reads as minutes
	t.Setenv("AUTH_OTP_CODE_LENGTH", "6")
	t.Setenv("AUTH_OTP_BYPASS_LOGIN", "true")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()

	require.Equal(t, "prod-secret", cfg.SecretKey)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, 5*time.Minute, cfg.OtpTTL)
	require.Equal(t, 6, cfg.OtpCodeLength)
	require.True(t, cfg.OtpBypassLogin)
	require.Equal(t, 9090, cfg.Port)
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AUTH_TOKEN_TTL", "soon")
	t.Setenv("AUTH_OTP_CODE_LENGTH", "four")
	t.Setenv("AUTH_OTP_BYPASS_LOGIN", "yes please")

	cfg := LoadConfig()

	require.Equal(t, 60*time.Minute, cfg.TokenTTL)
	require.Equal(t, 4, cfg.OtpCodeLength)
	require.False(t, cfg.OtpBypassLogin)
}
