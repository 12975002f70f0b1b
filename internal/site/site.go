// Package site serves whatever sits behind the maintenance gate.
package site

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"maintenance-gate/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	logger = zap.NewNop()
)

// InitLogger sets the zap logger for this package
func InitLogger(l *zap.Logger) {
	logger = l
}

const placeholder = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Site</title></head>
<body><p>No upstream configured. Set UPSTREAM_URL to proxy the site.</p></body>
</html>`

// Handler proxies every request to upstream, or serves a placeholder page
// when upstream is empty.
func Handler(upstream string) (gin.HandlerFunc, error) {
	if upstream == "" {
		return func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(placeholder))
		}, nil
	}

	target, err := url.Parse(upstream)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid UPSTREAM_URL %q", upstream)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		stripCookie(r, middleware.SessionName)
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("Upstream request failed",
			zap.String("upstream", target.String()),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusBadGateway)
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}

// stripCookie removes the named cookie from the outgoing request. The
// session cookie authenticates against the admin API and must not reach
// the upstream.
func stripCookie(r *http.Request, name string) {
	cookies := r.Cookies()
	r.Header.Del("Cookie")
	for _, c := range cookies {
		if c.Name != name {
			r.AddCookie(c)
		}
	}
}
