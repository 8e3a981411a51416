package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/models"
	"paintcompany/internal/paintapi"
	"paintcompany/internal/session"
)

const (
	msgInvalidLogin     = "Invalid username or password"
	msgMissingLogin     = "Please enter both username and password"
	msgTooManyAttempts  = "Too many login attempts. Please wait a minute and try again."
	msgPasswordMismatch = "New password and verify password do not match"
	msgPasswordShort    = "Password must be at least 8 characters long"
	msgPasswordReset    = "Password reset successfully!"
	msgLoggedIn         = "Login successful! Redirecting to dashboard..."
)

// AuthMiddleware gates the admin routes behind a valid session.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := h.sessions.Load(c)
		if !ok || !s.Authenticated {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}
		session.Set(c, s)
		c.Next()
	}
}

func (h *Handler) AdminIndex(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (h *Handler) AdminLoginPage(c *gin.Context) {
	if _, ok := h.sessions.Load(c); ok {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}
	h.renderAdmin(c, http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
	})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	ip := c.ClientIP()

	fail := func(status int, msg string) {
		h.renderAdmin(c, status, "login.html", gin.H{
			"title":    "Admin Login",
			"error":    msg,
			"username": username,
		})
	}

	if username == "" || password == "" {
		fail(http.StatusBadRequest, msgMissingLogin)
		return
	}
	if !h.logins.Allow(ip) {
		h.security.LogSecurityEvent("LOGIN_RATE_LIMITED", "username="+username, ip)
		fail(http.StatusTooManyRequests, msgTooManyAttempts)
		return
	}

	token, err := h.api.Login(c.Request.Context(), username, password)
	if err != nil {
		log.Printf("Login failed for user %s: %v", username, err)
		if errors.Is(err, paintapi.ErrUnauthorized) {
			h.security.LogSecurityEvent("LOGIN_FAILED", "username="+username, ip)
			fail(http.StatusUnauthorized, msgInvalidLogin)
			return
		}
		fail(http.StatusBadGateway, paintapi.Message(err, "log in"))
		return
	}

	s, err := h.sessions.Start(c, username, token)
	if err != nil {
		log.Printf("Could not start session for %s: %v", username, err)
		fail(http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}
	h.logins.Reset(ip)
	log.Printf("Login successful for user: %s", username)

	h.workspaces.Get(s.ID).Notify(saveTitle, msgLoggedIn)
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *Handler) AdminLogout(c *gin.Context) {
	h.endSession(c)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// checkNewPassword applies the rules shared by both password forms.
func checkNewPassword(newPassword, verify string) string {
	if newPassword != verify {
		return msgPasswordMismatch
	}
	if len(newPassword) < models.MinPasswordLength {
		return msgPasswordShort
	}
	return ""
}

func (h *Handler) PasswordPage(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, "password.html", gin.H{
		"title": "Change Password",
	})
}

// ResetPassword changes the password of the logged-in admin.
func (h *Handler) ResetPassword(c *gin.Context) {
	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")
	verify := c.PostForm("verify_password")

	render := func(status int, data gin.H) {
		data["title"] = "Change Password"
		h.renderAdmin(c, status, "password.html", data)
	}

	if oldPassword == "" {
		render(http.StatusBadRequest, gin.H{"error": "Please enter your current password"})
		return
	}
	if msg := checkNewPassword(newPassword, verify); msg != "" {
		render(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	err := h.adminAPI(c).ResetPassword(c.Request.Context(), models.PasswordReset{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		msg, loggedOut := h.apiFailure(c, err, "reset password")
		if loggedOut {
			return
		}
		render(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	ws, _ := h.workspaceOf(c)
	ws.Notify(saveTitle, msgPasswordReset)
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *Handler) ForgotPasswordPage(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, "forgot_password.html", gin.H{
		"title": "Forgot Password",
	})
}

// ForgotPassword resets an admin password with the superadmin key.
func (h *Handler) ForgotPassword(c *gin.Context) {
	form := models.AdminReset{
		AdminUsername: strings.TrimSpace(c.PostForm("admin_username")),
		NewPassword:   c.PostForm("new_password"),
		SuperadminKey: c.PostForm("superadmin_key"),
	}
	verify := c.PostForm("verify_password")

	render := func(status int, data gin.H) {
		data["title"] = "Forgot Password"
		data["username"] = form.AdminUsername
		h.renderAdmin(c, status, "forgot_password.html", data)
	}

	if form.AdminUsername == "" || form.SuperadminKey == "" {
		render(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}
	if msg := checkNewPassword(form.NewPassword, verify); msg != "" {
		render(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.api.AdminReset(c.Request.Context(), form); err != nil {
		log.Printf("Admin reset failed for %s: %v", form.AdminUsername, err)
		h.security.LogSecurityEvent("ADMIN_RESET_FAILED", "username="+form.AdminUsername, c.ClientIP())
		msg := paintapi.Message(err, "reset password")
		if errors.Is(err, paintapi.ErrUnauthorized) {
			msg = "Invalid superadmin key"
		}
		render(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	h.security.LogSecurityEvent("ADMIN_RESET", "username="+form.AdminUsername, c.ClientIP())
	h.renderAdmin(c, http.StatusOK, "login.html", gin.H{
		"title":    "Admin Login",
		"success":  msgPasswordReset,
		"username": form.AdminUsername,
	})
}

func (h *Handler) DashboardPage(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, "dashboard.html", gin.H{
		"title": "Dashboard",
	})
}

func (h *Handler) DocsPage(c *gin.Context) {
	h.renderAdmin(c, http.StatusOK, "docs.html", gin.H{
		"title": "Documentation",
	})
}
