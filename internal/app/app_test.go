package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcompany/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		APIBaseURL:       "http://127.0.0.1:1",
		APITimeout:       time.Second,
		UploadTimeout:    time.Second,
		SessionSecret:    []byte("secret"),
		SessionTTL:       time.Hour,
		SaveModalSeconds: 3,
		CatalogPageSize:  8,
		CatalogFetchSize: 100,
	}
}

func TestNewServesStaticAndHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(testConfig())
	require.NoError(t, err)
	defer a.Close()

	for target, want := range map[string]int{
		"/healthz":                    http.StatusOK,
		"/static/css/site.css":        http.StatusOK,
		"/static/img/placeholder.svg": http.StatusOK,
		"/admin":                      http.StatusSeeOther,
		"/admin/products":             http.StatusSeeOther,
		"/admin/login":                http.StatusOK,
		"/admin/docs":                 http.StatusOK,
		"/find-store":                 http.StatusOK,
		"/missing":                    http.StatusFound,
	} {
		w := httptest.NewRecorder()
		a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, want, w.Code, target)
	}
}

func TestLoginAttemptsShareTheAppLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(testConfig())
	require.NoError(t, err)
	defer a.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("username=admin&password=wrong"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.Engine.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, a.Logins.Len())
	a.Logins.Reset("192.0.2.1")
	assert.Zero(t, a.Logins.Len())
}
