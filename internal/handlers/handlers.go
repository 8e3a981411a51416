package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/content"
	"paintcompany/internal/media"
	"paintcompany/internal/models"
	"paintcompany/internal/paintapi"
	"paintcompany/internal/services"
	"paintcompany/internal/session"
	"paintcompany/internal/workspace"
)

// PublicAPI is the unauthenticated part of the remote API.
type PublicAPI interface {
	BaseURL() string
	Products(ctx context.Context, limit int) ([]models.Product, error)
	PopularProducts(ctx context.Context) ([]models.PopularProduct, error)
	NewArrivals(ctx context.Context, limit int) ([]models.NewArrival, error)
	NewsEvents(ctx context.Context, q paintapi.NewsQuery) ([]models.NewsEvent, error)
	ContactInfo(ctx context.Context) (models.ContactInfo, error)
	SubmitContact(ctx context.Context, msg models.ContactMessage) error
	Login(ctx context.Context, username, password string) (string, error)
	AdminReset(ctx context.Context, r models.AdminReset) error
}

// AdminAPI is the bearer-authenticated part of the remote API.
type AdminAPI interface {
	ResetPassword(ctx context.Context, r models.PasswordReset) error

	AdminProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput, img *media.Image) (models.Product, error)
	UpdateProduct(ctx context.Context, id int, in models.ProductInput, img *media.Image) (models.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	AdminPopularProducts(ctx context.Context) ([]models.PopularProduct, error)
	CreatePopularProduct(ctx context.Context, in models.PopularProductInput, img *media.Image) (models.PopularProduct, error)
	UpdatePopularProduct(ctx context.Context, id int, in models.PopularProductInput, img *media.Image) (models.PopularProduct, error)
	DeletePopularProduct(ctx context.Context, id int) error

	AdminNewArrivals(ctx context.Context) ([]models.NewArrival, error)
	CreateNewArrival(ctx context.Context, in models.NewArrivalInput, img *media.Image) (models.NewArrival, error)
	UpdateNewArrival(ctx context.Context, id int, in models.NewArrivalInput, img *media.Image) (models.NewArrival, error)
	DeleteNewArrival(ctx context.Context, id int) error

	AdminNewsEvents(ctx context.Context) ([]models.NewsEvent, error)
	CreateNewsEvent(ctx context.Context, in models.NewsEventInput) (models.NewsEvent, error)
	UpdateNewsEvent(ctx context.Context, id int, in models.NewsEventInput) (models.NewsEvent, error)
	DeleteNewsEvent(ctx context.Context, id int) error

	AdminContactInfo(ctx context.Context) (models.ContactInfo, error)
	UpdateContactInfo(ctx context.Context, info models.ContactInfo) (models.ContactInfo, error)
	ContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error)
	MarkSubmissionRead(ctx context.Context, id int) error
	DeleteSubmission(ctx context.Context, id int) error
}

// Backend builds API clients. Admin returns a client bound to the session token.
type Backend interface {
	PublicAPI
	Admin(token string) AdminAPI
}

type clientBackend struct {
	*paintapi.Client
}

func (b clientBackend) Admin(token string) AdminAPI {
	return b.Client.WithToken(token)
}

// NewBackend adapts a paintapi client to Backend.
func NewBackend(c *paintapi.Client) Backend {
	return clientBackend{c}
}

// Options carries the optional collaborators of a Handler.
type Options struct {
	Email     *services.EmailService
	Security  *services.SecurityLogger
	Logins    *services.RateLimiter
	PageSize  int
	FetchSize int
}

// Handler serves the public site and the admin back-office.
type Handler struct {
	api        Backend
	sessions   *session.Manager
	workspaces *workspace.Registry
	site       *content.Site

	email    *services.EmailService
	security *services.SecurityLogger
	spam     *services.SpamDetector
	logins   *services.RateLimiter

	pageSize  int
	fetchSize int
	now       func() time.Time
}

// NewLoginLimiter allows five login attempts a minute per client IP.
func NewLoginLimiter() *services.RateLimiter {
	return services.NewRateLimiter(5, time.Minute)
}

// NewHandler wires a Handler.
func NewHandler(api Backend, sessions *session.Manager, workspaces *workspace.Registry, site *content.Site, opts Options) *Handler {
	if opts.Email == nil {
		opts.Email = services.NewEmailService("", 0, "", "", "")
	}
	if opts.FetchSize <= 0 {
		opts.FetchSize = 100
	}
	if opts.Logins == nil {
		opts.Logins = NewLoginLimiter()
	}
	return &Handler{
		api:        api,
		sessions:   sessions,
		workspaces: workspaces,
		site:       site,
		email:      opts.Email,
		security:   opts.Security,
		spam:       services.NewSpamDetector(),
		logins:     opts.Logins,
		pageSize:   opts.PageSize,
		fetchSize:  opts.FetchSize,
		now:        time.Now,
	}
}

// image resolves a stored image reference of kind against the API host.
func (h *Handler) image(kind media.Kind) func(string) string {
	base := h.api.BaseURL()
	return func(ref string) string {
		return media.NormalizeURL(base, kind, ref)
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound sends unknown paths to the home page.
func (h *Handler) NotFound(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// workspaceOf returns the workspace of the session behind the gate.
func (h *Handler) workspaceOf(c *gin.Context) (*workspace.Workspace, session.Admin) {
	s, _ := session.FromContext(c)
	return h.workspaces.Get(s.ID), s
}

// adminAPI returns the client of the current session.
func (h *Handler) adminAPI(c *gin.Context) AdminAPI {
	s, _ := session.FromContext(c)
	return h.api.Admin(s.Token)
}

// apiFailure turns an admin API error into a user message. A 401 ends the
// session and redirects to the login page, in which case loggedOut is true
// and the caller must stop.
func (h *Handler) apiFailure(c *gin.Context, err error, action string) (msg string, loggedOut bool) {
	if errors.Is(err, paintapi.ErrUnauthorized) {
		log.Printf("Session rejected by API while trying to %s", action)
		h.security.LogSecurityEvent("SESSION_EXPIRED", action, c.ClientIP())
		h.endSession(c)
		c.Redirect(http.StatusSeeOther, "/admin/login")
		c.Abort()
		return "", true
	}
	log.Printf("Failed to %s: %v", action, err)
	return paintapi.Message(err, action), false
}

// endSession clears the cookies and tears down the workspace.
func (h *Handler) endSession(c *gin.Context) {
	if s, ok := session.FromContext(c); ok {
		h.workspaces.Drop(s.ID)
	} else if s, ok := h.sessions.Load(c); ok {
		h.workspaces.Drop(s.ID)
	}
	h.sessions.Clear(c)
}
