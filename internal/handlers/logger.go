package handlers

import (
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

// Logger returns the package logger
func Logger() *zap.Logger {
	return logger
}

// RequestLogger returns the package logger annotated with the request path
// and the logged in user, if any
func RequestLogger(c *gin.Context) *zap.Logger {
	fields := []zap.Field{zap.String("path", c.Request.URL.Path)}
	if userID := middleware.UserID(c); userID != "" {
		fields = append(fields,
			zap.String("userID", userID),
			zap.String("username", middleware.Username(c)),
		)
	}
	return logger.With(fields...)
}
