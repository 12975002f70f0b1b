package routes

import (
	"maintenance-gate/internal/handlers"
	"maintenance-gate/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API, the admin pages and the site fallback.
// Only the site fallback runs behind gate, so login and the admin API stay
// reachable while maintenance mode is on.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, gate, site gin.HandlerFunc) {
	api := r.Group(handlers.APIPrefix)
	api.GET("/healthz", handlers.HealthCheck)
	api.POST("/login", h.Login)
	api.POST("/logout", handlers.Logout)
	api.GET("/profile", middleware.RequireAuth(), handlers.Profile)

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.POST("/toggle", h.Toggle)
	admin.GET("/status", h.Status)
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.UpdateSettings)

	r.GET(handlers.LoginPagePath, h.LoginPage)
	r.POST(handlers.LoginPagePath, h.LoginForm)

	pages := r.Group(handlers.SettingsPagePath, middleware.RequireAdminPage(handlers.LoginPagePath))
	pages.GET("", h.SettingsPage)
	pages.POST("", h.SaveSettingsPage)

	r.NoRoute(gate, site)
}
