package paintapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"paintcompany/internal/models"
)

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}
	data, err := c.send(ctx, request{
		method:      http.MethodPost,
		target:      "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: login response has no access_token", ErrMalformed)
	}
	return resp.AccessToken, nil
}

// ResetPassword changes the password of the logged-in admin.
func (c *Client) ResetPassword(ctx context.Context, r models.PasswordReset) error {
	return c.sendJSON(ctx, http.MethodPost, "/admin/password/reset-password", r, nil)
}

// AdminReset resets an admin password with the superadmin key. It needs no
// session.
func (c *Client) AdminReset(ctx context.Context, r models.AdminReset) error {
	return c.sendJSON(ctx, http.MethodPost, "/admin/password/admin-reset", r, nil)
}
