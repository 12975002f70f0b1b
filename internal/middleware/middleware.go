package middleware

import (
	"encoding/gob"
	"net/http"
	"time"

	"maintenance-gate/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionName is the cookie holding the signed session
const SessionName = "maintenance_session"

// SessionMaxAge is how long a login lasts
const SessionMaxAge = 12 * time.Hour

func init() {
	// Register the types for gob encoding
	gob.Register(map[string]any{})
}

// SetupMiddleware sets up CORS and the cookie session store on the Gin engine
func SetupMiddleware(r *gin.Engine, cfg *config.Config) {
	// CORS is only needed when a separate admin frontend calls the API
	if len(cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", CSRFHeader},
			ExposeHeaders:    []string{"Content-Length"},
			MaxAge:           12 * time.Hour,
		}))
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite(cfg.CookieSameSite),
	})
	r.Use(sessions.Sessions(SessionName, store))

	logger.Info("Middleware setup complete", zap.Strings("allowOrigins", cfg.AllowOrigins))
}

func sameSite(v string) http.SameSite {
	switch v {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
