package middleware

import (
	"go.uber.org/zap"
)

var (
	logger = zap.NewNop()
)

// InitLogger sets the zap logger for this package
func InitLogger(l *zap.Logger) {
	logger = l
}
