package handlers

import (
	"net/http"
	"time"

	"maintenance-gate/internal/middleware"
	"maintenance-gate/internal/models"
	"maintenance-gate/pkg/email"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Toggle flips maintenance mode and returns the new state.
// The caller must be an administrator and send the toggle nonce as the
// "nonce" form field or the X-CSRF-Token header. Both failures give the
// same 401 body and leave the state untouched.
func (h *Handler) Toggle(c *gin.Context) {
	reqLogger := RequestLogger(c)

	if !middleware.IsAdmin(c) {
		reqLogger.Warn("Unauthorized access attempt to Toggle")
		unauthorized(c)
		return
	}
	if !h.verifyNonce(c, ActionToggle, c.PostForm("nonce")) {
		reqLogger.Warn("Invalid or missing nonce on Toggle")
		unauthorized(c)
		return
	}

	enabled, err := h.maintenance.Toggle(c.Request.Context())
	if err != nil {
		reqLogger.Error("Failed to toggle maintenance mode", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.SimpleMessageResponse{Error: "Failed to toggle maintenance mode"})
		return
	}

	reqLogger.Info("Maintenance mode toggled", zap.Bool("enabled", enabled))
	h.notifyToggle(c, enabled)

	c.JSON(http.StatusOK, models.ToggleResponse{OK: true, Enabled: enabled})
}

// Status returns the current state and a fresh toggle nonce
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Enabled: h.maintenance.Enabled(c.Request.Context()),
		Nonce:   h.issueNonce(c, ActionToggle),
	})
}

// notifyToggle emails NotifyEmail in the background
func (h *Handler) notifyToggle(c *gin.Context, enabled bool) {
	if h.mailer == nil || h.notifyEmail == "" {
		return
	}

	details := email.ToggleEmailDetails{
		Username: middleware.Username(c),
		Enabled:  enabled,
		Message:  h.maintenance.Message(c.Request.Context()),
		SiteURL:  h.siteURL,
		Time:     time.Now(),
	}
	mailer, to := h.mailer, h.notifyEmail

	go func() {
		if err := mailer.Send(to, email.ToggleSubject(enabled), email.BuildToggleEmail(details)); err != nil {
			logger.Error("Failed to send toggle notification", zap.String("to", to), zap.Error(err))
			return
		}
		logger.Debug("Toggle notification sent", zap.String("to", to))
	}()
}
