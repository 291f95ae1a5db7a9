package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/security"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	SecretKey    []byte
	CookieSecure bool
	Location     *time.Location

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	FirstUser     string
	FirstUserPass string

	ValkeyAddr string

	Engine engine.Config
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("BASALT_PORT", "8080"),
		DBPath:          getEnv("BASALT_DB_PATH", filepath.Join("data", "basalt.db")),
		SecretKey:       loadSecretKey(),
		CookieSecure:    getEnv("BASALT_COOKIE_SECURE", "false") == "true",
		Location:        loadLocation(getEnv("TZ", "UTC")),
		AccessTokenTTL:  time.Duration(getEnvInt("BASALT_ACCESS_TOKEN_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("BASALT_REFRESH_TOKEN_DAYS", 7)) * 24 * time.Hour,
		FirstUser:       getEnv("BASALT_FIRST_USER", ""),
		FirstUserPass:   getEnv("BASALT_FIRST_USER_PASS", ""),
		ValkeyAddr:      getEnv("BASALT_VALKEY_ADDR", ""),
		Engine:          engine.DefaultConfig(),
	}
}

// loadSecretKey falls back to an ephemeral random key so a dev instance
// starts without setup. Tokens then stop surviving restarts, which is the
// reminder to set BASALT_SECRET_KEY before deploying.
func loadSecretKey() []byte {
	if value := os.Getenv("BASALT_SECRET_KEY"); value != "" {
		return []byte(value)
	}
	generated, err := security.RandomString(48)
	if err != nil {
		log.Fatalf("generate fallback secret key: %v", err)
	}
	log.Printf("BASALT_SECRET_KEY not set, using an ephemeral key; sessions will not survive restarts")
	return []byte(generated)
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid %s %q, falling back to %d", key, raw, fallback)
		return fallback
	}
	return parsed
}
