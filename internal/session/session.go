// Package session keeps the admin session in two cookies: a signed
// "adminAuth" cookie that gates the admin routes and an "authToken" cookie
// with the API bearer token.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"paintcompany/internal/models"
)

const (
	AuthCookie  = "adminAuth"
	TokenCookie = "authToken"
	contextKey  = "admin_session"
)

// RoleAdmin is the only role the back-office knows.
const RoleAdmin = "admin"

// Admin is the typed admin session.
type Admin struct {
	ID            string
	User          models.AdminUser
	Authenticated bool
	Token         string
	ExpiresAt     time.Time
}

type authClaims struct {
	IsAuthenticated bool             `json:"isAuthenticated"`
	User            models.AdminUser `json:"user"`
	jwt.RegisteredClaims
}

// Manager issues, reads and clears admin sessions.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager signs session cookies with secret; they live for ttl.
func NewManager(secret []byte, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: secret, ttl: ttl, secure: secure}
}

// Start stores a fresh session for username after a successful login.
func (m *Manager) Start(c *gin.Context, username, token string) (Admin, error) {
	now := time.Now()
	s := Admin{
		ID:            uuid.New().String(),
		User:          models.AdminUser{Username: username, Role: RoleAdmin},
		Authenticated: true,
		Token:         token,
		ExpiresAt:     now.Add(m.ttl),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		IsAuthenticated: true,
		User:            s.User,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}).SignedString(m.secret)
	if err != nil {
		return Admin{}, fmt.Errorf("sign session: %w", err)
	}

	maxAge := int(m.ttl / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookie, signed, maxAge, "/", "", m.secure, true)
	c.SetCookie(TokenCookie, token, maxAge, "/", "", m.secure, true)
	return s, nil
}

// Load reads the session from the request cookies. A missing, tampered or
// expired auth cookie, or a missing token, means there is no session.
func (m *Manager) Load(c *gin.Context) (Admin, bool) {
	raw, err := c.Cookie(AuthCookie)
	if err != nil || raw == "" {
		return Admin{}, false
	}
	token, err := c.Cookie(TokenCookie)
	if err != nil || token == "" {
		return Admin{}, false
	}

	var claims authClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !claims.IsAuthenticated {
		return Admin{}, false
	}

	s := Admin{
		ID:            claims.ID,
		User:          claims.User,
		Authenticated: true,
		Token:         token,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, true
}

// Clear removes both cookies.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookie, "", -1, "/", "", m.secure, true)
	c.SetCookie(TokenCookie, "", -1, "/", "", m.secure, true)
}

// Set attaches s to the request context for the handlers behind the gate.
func Set(c *gin.Context, s Admin) {
	c.Set(contextKey, s)
}

// FromContext returns the session attached by Set.
func FromContext(c *gin.Context) (Admin, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Admin{}, false
	}
	s, ok := v.(Admin)
	return s, ok
}
