package models

// Admin password rules shared by the reset and forgot flows.
const MinPasswordLength = 8

// AdminUser is the identity kept in the admin session.
type AdminUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PasswordReset is the body of POST /admin/password/reset-password.
type PasswordReset struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AdminReset is the body of POST /admin/password/admin-reset.
type AdminReset struct {
	AdminUsername string `json:"admin_username"`
	NewPassword   string `json:"new_password"`
	SuperadminKey string `json:"superadmin_key"`
}
