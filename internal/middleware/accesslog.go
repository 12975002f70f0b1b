package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogger is a middleware that logs the access details of each request
// It logs the request method, path, query parameters, client IP, user agent, latency,
// the logged in user and whether the maintenance page was served
func AccessLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		logger.Info("access",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", latency),
			zap.String("userID", UserID(c)),
			zap.String("username", Username(c)),
			zap.Bool("authenticated", IsAuthenticated(c)),
			zap.Bool("maintenance", c.GetBool(ContextIntercepted)),
			zap.Time("time", time.Now()),
		)
	}
}
