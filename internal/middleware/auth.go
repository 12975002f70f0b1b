package middleware

import (
	"net/http"
	"net/url"

	"maintenance-gate/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Unauthorized is the only rejection body of the admin API.
// It does not say why the request was refused.
var Unauthorized = models.SimpleMessageResponse{OK: false, Error: "Unauthorized"}

// RequireAuth aborts with 401 unless a user is logged in.
// LoadSession must run first.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Unauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 unless the logged in user is an administrator
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			logger.Warn("Unauthorized access attempt to admin endpoint",
				zap.String("path", c.Request.URL.Path),
				zap.String("userID", UserID(c)),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, Unauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdminPage is RequireAdmin for HTML pages: anonymous visitors are
// redirected to loginPath, logged in non-admins get a plain 401.
func RequireAdminPage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.Redirect(http.StatusFound, loginPath+"?redirect="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		if !IsAdmin(c) {
			logger.Warn("Unauthorized access attempt to admin page",
				zap.String("path", c.Request.URL.Path),
				zap.String("userID", UserID(c)),
			)
			c.String(http.StatusUnauthorized, "Sorry, you are not allowed to access this page.")
			c.Abort()
			return
		}
		c.Next()
	}
}
