package settings

import (
	"context"

	"go.uber.org/zap"
)

var (
	logger = zap.NewNop()
)

// InitLogger sets the zap logger for this package
func InitLogger(l *zap.Logger) {
	logger = l
}

// Store persists flat string values by key.
// A key that was never set is reported with found == false and no error.
// Stores do no validation; callers sanitize before Set.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
