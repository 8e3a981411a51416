package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func contextWithCookies(cookies []*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, w
}

func TestStartThenLoad(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour, false)

	c, w := contextWithCookies(nil)
	started, err := m.Start(c, "admin", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, started.User.Role)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.True(t, ck.HttpOnly)
	}

	c, _ = contextWithCookies(cookies)
	loaded, ok := m.Load(c)
	require.True(t, ok)
	assert.Equal(t, started.ID, loaded.ID)
	assert.Equal(t, "admin", loaded.User.Username)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.True(t, loaded.Authenticated)
}

func TestLoadRejectsForgedAndPartialSessions(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour, false)
	c, w := contextWithCookies(nil)
	_, err := m.Start(c, "admin", "tok")
	require.NoError(t, err)
	cookies := w.Result().Cookies()

	other := NewManager([]byte("other"), time.Hour, false)
	c, _ = contextWithCookies(cookies)
	_, ok := other.Load(c)
	assert.False(t, ok, "signature from another secret")

	var authOnly []*http.Cookie
	for _, ck := range cookies {
		if ck.Name == AuthCookie {
			authOnly = append(authOnly, ck)
		}
	}
	c, _ = contextWithCookies(authOnly)
	_, ok = m.Load(c)
	assert.False(t, ok, "token cookie missing")

	c, _ = contextWithCookies([]*http.Cookie{{Name: AuthCookie, Value: "garbage"}, {Name: TokenCookie, Value: "tok"}})
	_, ok = m.Load(c)
	assert.False(t, ok)
}

func TestExpiredSession(t *testing.T) {
	m := NewManager([]byte("secret"), -time.Minute, false)
	c, w := contextWithCookies(nil)
	_, err := m.Start(c, "admin", "tok")
	require.NoError(t, err)

	// The browser would drop these cookies; replay them anyway.
	var replay []*http.Cookie
	for _, ck := range w.Result().Cookies() {
		replay = append(replay, &http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	c, _ = contextWithCookies(replay)
	_, ok := m.Load(c)
	assert.False(t, ok)
}

func TestClearExpiresBothCookies(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour, false)
	c, w := contextWithCookies(nil)
	m.Clear(c)

	names := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		assert.Equal(t, "", ck.Value)
		assert.True(t, ck.MaxAge < 0)
		names[ck.Name] = true
	}
	assert.Equal(t, map[string]bool{AuthCookie: true, TokenCookie: true}, names)
}

func TestContextRoundTrip(t *testing.T) {
	c, _ := contextWithCookies(nil)
	_, ok := FromContext(c)
	assert.False(t, ok)

	Set(c, Admin{ID: "x", Authenticated: true})
	s, ok := FromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "x", s.ID)
}
