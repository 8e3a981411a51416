// Package config reads the web server settings from the environment.
package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"paintcompany/internal/paintapi"
)

// TLS modes.
const (
	TLSOff        = "off"
	TLSSelfSigned = "self-signed"
	TLSAutocert   = "autocert"
)

type Config struct {
	Port    string
	GinMode string

	APIBaseURL    string
	APITimeout    time.Duration
	UploadTimeout time.Duration

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool

	// RandomSecret is set when SESSION_SECRET is missing and the key only
	// lives as long as this process.
	RandomSecret bool

	SaveModalSeconds int
	CatalogPageSize  int
	CatalogFetchSize int

	SecurityLog string

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	NotifyEmail string

	TLSMode     string
	TLSDomain   string
	TLSCacheDir string
}

// Load builds the configuration from environment variables. Call
// godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:             env("PORT", "8082"),
		GinMode:          env("GIN_MODE", "release"),
		APIBaseURL:       strings.TrimRight(env("API_BASE_URL", paintapi.DefaultBaseURL), "/"),
		SecurityLog:      env("SECURITY_LOG", "security.log"),
		SMTPHost:         env("SMTP_HOST", "smtp.gmail.com"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		NotifyEmail:      os.Getenv("NOTIFY_EMAIL"),
		TLSMode:          env("TLS_MODE", TLSOff),
		TLSDomain:        os.Getenv("TLS_DOMAIN"),
		TLSCacheDir:      env("TLS_CACHE_DIR", "certs"),
		CatalogFetchSize: 100,
	}

	var err error
	if cfg.APITimeout, err = durationEnv("API_TIMEOUT", 15*time.Second); err != nil {
		return cfg, err
	}
	if cfg.UploadTimeout, err = durationEnv("UPLOAD_TIMEOUT", 30*time.Second); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", false); err != nil {
		return cfg, err
	}
	if cfg.SaveModalSeconds, err = intEnv("SAVE_MODAL_SECONDS", 3); err != nil {
		return cfg, err
	}
	if cfg.CatalogPageSize, err = intEnv("CATALOG_PAGE_SIZE", 8); err != nil {
		return cfg, err
	}
	if cfg.SMTPPort, err = intEnv("SMTP_PORT", 587); err != nil {
		return cfg, err
	}

	switch cfg.TLSMode {
	case TLSOff, TLSSelfSigned:
	case TLSAutocert:
		if cfg.TLSDomain == "" {
			return cfg, fmt.Errorf("config: TLS_MODE=autocert needs TLS_DOMAIN")
		}
	default:
		return cfg, fmt.Errorf("config: unknown TLS_MODE %q", cfg.TLSMode)
	}

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		log.Println("SESSION_SECRET not set, using a random key; admin sessions end on restart")
		cfg.RandomSecret = true
		cfg.SessionSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.SessionSecret); err != nil {
			return cfg, fmt.Errorf("config: session key: %w", err)
		}
	}
	return cfg, nil
}

// MailEnabled reports whether SMTP credentials are configured.
func (c Config) MailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", key, v)
	}
	return b, nil
}
