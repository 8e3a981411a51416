// Package app assembles the web server: collaborators, templates and routes.
package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/config"
	"paintcompany/internal/content"
	"paintcompany/internal/handlers"
	"paintcompany/internal/paintapi"
	"paintcompany/internal/services"
	"paintcompany/internal/session"
	"paintcompany/internal/workspace"
	"paintcompany/web"
)

// App is a configured server. Close releases the workspaces and the
// security log.
type App struct {
	Engine     *gin.Engine
	Handler    *handlers.Handler
	Workspaces *workspace.Registry
	Logins     *services.RateLimiter
	Security   *services.SecurityLogger
}

// New builds the app from cfg against the API configured there.
func New(cfg config.Config) (*App, error) {
	client := paintapi.New(cfg.APIBaseURL, paintapi.WithTimeouts(cfg.APITimeout, cfg.UploadTimeout))
	return NewWithBackend(cfg, handlers.NewBackend(client))
}

// NewWithBackend builds the app against backend.
func NewWithBackend(cfg config.Config, backend handlers.Backend) (*App, error) {
	site, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load site content: %w", err)
	}
	templates, err := handlers.LoadTemplates(web.Templates())
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	var email *services.EmailService
	if cfg.MailEnabled() {
		email = services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.NotifyEmail)
	} else {
		log.Println("SMTP credentials not set, contact notifications are disabled")
	}
	var security *services.SecurityLogger
	if cfg.SecurityLog != "" {
		security = services.NewSecurityLogger(cfg.SecurityLog)
	}

	workspaces := workspace.NewRegistry(cfg.SaveModalSeconds)
	logins := handlers.NewLoginLimiter()
	h := handlers.NewHandler(
		backend,
		session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure),
		workspaces,
		site,
		handlers.Options{
			Email:     email,
			Security:  security,
			Logins:    logins,
			PageSize:  cfg.CatalogPageSize,
			FetchSize: cfg.CatalogFetchSize,
		},
	)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.HTMLRender = &handlers.HTMLRenderer{Templates: templates}
	r.StaticFS("/static", http.FS(web.Static()))

	Routes(r, h)

	return &App{Engine: r, Handler: h, Workspaces: workspaces, Logins: logins, Security: security}, nil
}

// Routes registers every page and form endpoint on r.
func Routes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/", h.HomePage)
	r.GET("/products", h.CatalogPage)
	r.GET("/find-store", h.FindStorePage)
	r.POST("/contact", h.SubmitContact)
	r.GET("/healthz", h.Healthz)
	r.NoRoute(h.NotFound)

	// Admin pages reachable without a session.
	r.GET("/admin", h.AdminIndex)
	r.GET("/admin/login", h.AdminLoginPage)
	r.POST("/admin/login", h.AdminLogin)
	r.GET("/admin/logout", h.AdminLogout)
	r.POST("/admin/logout", h.AdminLogout)
	r.GET("/admin/forgot-password", h.ForgotPasswordPage)
	r.POST("/admin/forgot-password", h.ForgotPassword)
	r.GET("/admin/docs", h.DocsPage)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.GET("/dashboard", h.DashboardPage)
		admin.GET("/password", h.PasswordPage)
		admin.POST("/password", h.ResetPassword)

		admin.GET("/products", h.ProductsPage)
		admin.POST("/products", h.SaveProduct)
		admin.POST("/products/:id", h.SaveProduct)
		admin.POST("/products/:id/delete", h.DeleteProduct)

		admin.GET("/popular", h.PopularPage)
		admin.POST("/popular", h.SavePopular)
		admin.POST("/popular/:id", h.SavePopular)
		admin.POST("/popular/:id/delete", h.DeletePopular)

		admin.GET("/new-arrivals", h.ArrivalsPage)
		admin.POST("/new-arrivals", h.SaveArrival)
		admin.POST("/new-arrivals/:id", h.SaveArrival)
		admin.POST("/new-arrivals/:id/delete", h.DeleteArrival)

		admin.GET("/news", h.NewsPage)
		admin.POST("/news", h.SaveNews)
		admin.POST("/news/:id", h.SaveNews)
		admin.POST("/news/:id/delete", h.DeleteNews)

		admin.GET("/contact", h.ContactPage)
		admin.POST("/contact/info", h.SaveContactInfo)
		admin.POST("/contact/messages/:id/read", h.MarkRead)
		admin.POST("/contact/messages/:id/delete", h.DeleteMessage)

		admin.POST("/modal/confirm", h.ConfirmSave)
		admin.POST("/modal/confirm/cancel", h.CancelSave)
		admin.POST("/modal/confirm/remove-image", h.RemoveImage)
		admin.POST("/modal/delete", h.ConfirmDelete)
		admin.POST("/modal/delete/cancel", h.CancelDelete)
		admin.POST("/modal/save/close", h.CloseSave)
		admin.GET("/modal/save", h.SaveStatus)
	}
}

// Close drops every workspace and closes the security log.
func (a *App) Close() {
	a.Workspaces.Close()
	a.Security.Close()
}
