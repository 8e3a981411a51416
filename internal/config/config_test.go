package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcompany/internal/paintapi"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_BASE_URL", "SESSION_SECRET", "TLS_MODE", "SMTP_USER", "SMTP_PASS", "CATALOG_PAGE_SIZE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, paintapi.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.UploadTimeout)
	assert.Equal(t, 3, cfg.SaveModalSeconds)
	assert.Equal(t, 8, cfg.CatalogPageSize)
	assert.Len(t, cfg.SessionSecret, 32)
	assert.True(t, cfg.RandomSecret)
	assert.Equal(t, TLSOff, cfg.TLSMode)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SMTP_USER", "shop@example.com")
	t.Setenv("SMTP_PASS", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.SessionSecret)
	assert.False(t, cfg.RandomSecret)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.MailEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"API_TIMEOUT":        "soon",
		"SAVE_MODAL_SECONDS": "-1",
		"COOKIE_SECURE":      "maybe",
		"TLS_MODE":           "acme",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("autocert without domain", func(t *testing.T) {
		t.Setenv("TLS_MODE", TLSAutocert)
		t.Setenv("TLS_DOMAIN", "")
		_, err := Load()
		assert.Error(t, err)
	})
}
