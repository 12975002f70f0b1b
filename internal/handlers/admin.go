package handlers

import (
	"net/http"

	"maintenance-gate/internal/middleware"
	"maintenance-gate/internal/models"
	"maintenance-gate/pkg/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSettings returns the maintenance configuration and a settings nonce
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, models.SettingsResponse{
		MaintenanceConfig: h.maintenance.Load(c.Request.Context()),
		Nonce:             h.issueNonce(c, ActionSettings),
	})
}

// UpdateSettings replaces all four maintenance fields from a JSON body
func (h *Handler) UpdateSettings(c *gin.Context) {
	reqLogger := RequestLogger(c)

	var req models.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SimpleMessageResponse{Error: "Invalid request payload"})
		return
	}
	if !h.verifyNonce(c, ActionSettings, req.Nonce) {
		reqLogger.Warn("Invalid or missing nonce on UpdateSettings")
		unauthorized(c)
		return
	}

	cfg, err := cleanConfig(req.Enabled, req.Message, req.SubMessage, req.LogoURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.SimpleMessageResponse{Error: "Invalid logo URL"})
		return
	}

	ctx := c.Request.Context()
	if err := h.maintenance.Save(ctx, cfg); err != nil {
		reqLogger.Error("Failed to save maintenance settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.SimpleMessageResponse{Error: "Failed to save settings"})
		return
	}

	reqLogger.Info("Maintenance settings updated", zap.Bool("enabled", cfg.Enabled))
	c.JSON(http.StatusOK, models.SettingsResponse{
		MaintenanceConfig: h.maintenance.Load(ctx),
		Nonce:             h.issueNonce(c, ActionSettings),
	})
}

// SettingsPage renders the HTML settings form
func (h *Handler) SettingsPage(c *gin.Context) {
	page := render.SettingsPage{
		Username:      middleware.Username(c),
		Config:        h.maintenance.Load(c.Request.Context()),
		Action:        SettingsPagePath,
		ToggleURL:     TogglePath,
		SettingsNonce: h.issueNonce(c, ActionSettings),
		ToggleNonce:   h.issueNonce(c, ActionToggle),
	}
	switch {
	case c.Query("updated") == "1":
		page.Notice = "Settings saved."
	case c.Query("error") == "logo":
		page.Error = "The logo must be an absolute http or https URL."
	case c.Query("error") == "save":
		page.Error = "Settings could not be saved."
	}

	body, err := h.pages.Settings(page)
	if err != nil {
		RequestLogger(c).Error("Failed to render settings page", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to render settings page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// SaveSettingsPage handles the settings form post and redirects back
func (h *Handler) SaveSettingsPage(c *gin.Context) {
	reqLogger := RequestLogger(c)

	if !h.verifyNonce(c, ActionSettings, c.PostForm("nonce")) {
		reqLogger.Warn("Invalid or missing nonce on settings form")
		unauthorized(c)
		return
	}

	logo := c.PostForm("logo")
	if c.PostForm("remove_logo") == "1" {
		logo = ""
	}
	cfg, err := cleanConfig(c.PostForm("enabled") == "1", c.PostForm("message"), c.PostForm("sub_message"), logo)
	if err != nil {
		c.Redirect(http.StatusSeeOther, SettingsPagePath+"?error=logo")
		return
	}

	if err := h.maintenance.Save(c.Request.Context(), cfg); err != nil {
		reqLogger.Error("Failed to save maintenance settings", zap.Error(err))
		c.Redirect(http.StatusSeeOther, SettingsPagePath+"?error=save")
		return
	}

	reqLogger.Info("Maintenance settings updated", zap.Bool("enabled", cfg.Enabled))
	c.Redirect(http.StatusSeeOther, SettingsPagePath+"?updated=1")
}
