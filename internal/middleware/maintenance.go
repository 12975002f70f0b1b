package middleware

import (
	"net/http"

	"maintenance-gate/internal/settings"
	"maintenance-gate/pkg/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextIntercepted is set to true when the gate served the maintenance page
const ContextIntercepted = "maintenance"

// noCacheHeaders keep browsers, proxies and crawlers from storing the page
var noCacheHeaders = map[string]string{
	"Expires":       "Wed, 11 Jan 1984 05:00:00 GMT",
	"Cache-Control": "no-cache, must-revalidate, max-age=0, no-store, private",
	"Pragma":        "no-cache",
}

// MaintenanceGate intercepts anonymous requests while maintenance mode is on.
// Any logged in user passes, not only administrators. LoadSession must run
// first. retryAfter, when set, is sent as the Retry-After header.
func MaintenanceGate(m *settings.Maintenance, pages *render.Renderer, retryAfter string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !m.Enabled(ctx) {
			c.Next()
			return
		}
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		c.Set(ContextIntercepted, true)
		for k, v := range noCacheHeaders {
			c.Header(k, v)
		}
		c.Writer.Header().Del("Last-Modified")
		if retryAfter != "" {
			c.Header("Retry-After", retryAfter)
		}

		body, err := pages.Maintenance(render.MaintenancePage{
			Message:    m.Message(ctx),
			SubMessage: m.SubMessage(ctx),
			LogoURL:    m.LogoURL(ctx),
		})
		if err != nil {
			logger.Error("Failed to render maintenance page", zap.Error(err))
			c.Data(http.StatusServiceUnavailable, "text/plain; charset=utf-8", []byte("Service temporarily unavailable"))
			c.Abort()
			return
		}

		c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", body)
		c.Abort()
	}
}
