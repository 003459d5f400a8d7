package config

import (
	"encoding/hex"
	"fmt"
	"os"
)

// Config menampung seluruh environment yang dibutuhkan proses.
// Validasi dilakukan sekali di startup: secret yang hilang/salah format
// adalah fatal error, bukan 500 per request.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	SessionSecret string // >= 32 chars, HMAC untuk CSRF token
	EncryptionKey string // 64 hex chars (32 bytes) untuk secretbox

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// FrontendURL adalah basis redirect pasca-OAuth; default relative
	// untuk deployment satu origin.
	FrontendURL string

	CookieSecure bool
}

const (
	minSessionSecretLen = 32
	encryptionKeyHexLen = 64
)

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		EncryptionKey:      os.Getenv("ENCRYPTION_KEY"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:   os.Getenv("OAUTH_REDIRECT_URL"),
		FrontendURL:        getEnv("FRONTEND_URL", ""),
		CookieSecure:       os.Getenv("COOKIE_SECURE") == "true",
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, val := range map[string]string{
		"DB_HOST":     c.DBHost,
		"DB_USER":     c.DBUser,
		"DB_PASSWORD": c.DBPassword,
		"DB_NAME":     c.DBName,
	} {
		if val == "" {
			return fmt.Errorf("config: %s is required", name)
		}
	}

	if len(c.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d characters", minSessionSecretLen)
	}

	if len(c.EncryptionKey) != encryptionKeyHexLen {
		return fmt.Errorf("config: ENCRYPTION_KEY must be exactly %d hex characters", encryptionKeyHexLen)
	}
	if _, err := hex.DecodeString(c.EncryptionKey); err != nil {
		return fmt.Errorf("config: ENCRYPTION_KEY must be valid hex: %w", err)
	}

	// OAuth bersifat opsional, tapi kalau diisi harus lengkap
	if (c.GoogleClientID == "") != (c.GoogleClientSecret == "") {
		return fmt.Errorf("config: GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set together")
	}
	if c.GoogleClientID != "" && c.OAuthRedirectURL == "" {
		return fmt.Errorf("config: OAUTH_REDIRECT_URL is required when OAuth is enabled")
	}

	return nil
}

// OAuthEnabled menandakan provider Google sudah dikonfigurasi.
func (c *Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
