// Package handlers implements the admin API, the settings page and login.
package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"maintenance-gate/internal/middleware"
	"maintenance-gate/internal/models"
	"maintenance-gate/internal/settings"
	"maintenance-gate/internal/users"
	"maintenance-gate/pkg/csrf"
	"maintenance-gate/pkg/email"
	"maintenance-gate/pkg/render"
	"maintenance-gate/pkg/sanitize"

	"github.com/gin-gonic/gin"
)

// Paths that handlers redirect to or embed in pages
const (
	APIPrefix        = "/maint-api"
	TogglePath       = APIPrefix + "/admin/toggle"
	SettingsPagePath = "/admin/maintenance"
	LoginPagePath    = "/admin/login"
)

// Anti-forgery token actions
const (
	ActionToggle   = "maintenance_toggle"
	ActionSettings = "maintenance_settings"
)

// Options holds the dependencies of a Handler. Mailer and NotifyEmail are
// optional; without both no toggle notification is sent.
type Options struct {
	Maintenance *settings.Maintenance
	Users       users.Store
	CSRF        *csrf.Manager
	Pages       *render.Renderer
	Mailer      email.Sender
	NotifyEmail string
	SiteURL     string
}

type Handler struct {
	maintenance *settings.Maintenance
	users       users.Store
	csrf        *csrf.Manager
	pages       *render.Renderer
	mailer      email.Sender
	notifyEmail string
	siteURL     string
}

func New(opts Options) *Handler {
	return &Handler{
		maintenance: opts.Maintenance,
		users:       opts.Users,
		csrf:        opts.CSRF,
		pages:       opts.Pages,
		mailer:      opts.Mailer,
		notifyEmail: opts.NotifyEmail,
		siteURL:     opts.SiteURL,
	}
}

// HealthCheck used for status checking the api
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// issueNonce returns a token for action bound to the caller's session
func (h *Handler) issueNonce(c *gin.Context, action string) string {
	return h.csrf.Issue(action, middleware.UserID(c), middleware.SessionToken(c))
}

// verifyNonce checks token, falling back to the X-CSRF-Token header when
// token is empty
func (h *Handler) verifyNonce(c *gin.Context, action, token string) bool {
	if token == "" {
		token = c.GetHeader(middleware.CSRFHeader)
	}
	return h.csrf.Verify(token, action, middleware.UserID(c), middleware.SessionToken(c))
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.Unauthorized)
}

// cleanConfig sanitizes message markup and validates the logo URL
func cleanConfig(enabled bool, message, subMessage, logoURL string) (models.MaintenanceConfig, error) {
	logo, err := sanitize.URL(logoURL)
	if err != nil {
		return models.MaintenanceConfig{}, err
	}
	return models.MaintenanceConfig{
		Enabled:    enabled,
		Message:    strings.TrimSpace(sanitize.HTML(message)),
		SubMessage: strings.TrimSpace(sanitize.HTML(subMessage)),
		LogoURL:    logo,
	}, nil
}

// safeRedirect only allows local absolute paths. Browsers drop tabs and
// newlines and treat a backslash as "/", so targets containing them are
// refused.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return SettingsPagePath
	}
	if strings.ContainsRune(target, '\\') || strings.IndexFunc(target, unicode.IsControl) >= 0 {
		return SettingsPagePath
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return SettingsPagePath
	}
	return target
}
