package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"maintenance-gate/internal/middleware"
	"maintenance-gate/internal/models"
	"maintenance-gate/internal/users"
	"maintenance-gate/pkg/render"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// startSession stores the user in the session together with a fresh
// session token that anti-forgery nonces are bound to
func startSession(c *gin.Context, user *models.User) (models.NormalizedUserData, error) {
	userData := models.NormalizedUserData{
		ID:      strconv.FormatUint(uint64(user.ID), 10),
		Name:    user.Username,
		IsAdmin: user.IsAdmin,
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionDataKey, map[string]any{
		"id":           userData.ID,
		"name":         userData.Name,
		"isAdmin":      userData.IsAdmin,
		"sessionToken": uuid.NewString(),
	})
	if err := session.Save(); err != nil {
		return models.NormalizedUserData{}, err
	}
	return userData, nil
}

// Login authenticates a JSON or form body and starts a session
func (h *Handler) Login(c *gin.Context) {
	reqLogger := RequestLogger(c)

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SimpleMessageResponse{Error: "Invalid request payload"})
		return
	}

	user, err := users.Authenticate(c.Request.Context(), h.users, req.Username, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		reqLogger.Warn("Failed login attempt", zap.String("username", req.Username))
		unauthorized(c)
		return
	}
	if err != nil {
		reqLogger.Error("Failed to look up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.SimpleMessageResponse{Error: "Login failed"})
		return
	}

	userData, err := startSession(c, user)
	if err != nil {
		reqLogger.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.SimpleMessageResponse{Error: "Login failed"})
		return
	}

	reqLogger.Info("User logged in", zap.String("username", user.Username))
	c.JSON(http.StatusOK, gin.H{
		"userData":  userData,
		"expiresIn": int(middleware.SessionMaxAge.Seconds()),
	})
}

// LoginPage renders the login form, or redirects when already logged in
func (h *Handler) LoginPage(c *gin.Context) {
	redirect := safeRedirect(c.Query("redirect"))
	if middleware.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, redirect)
		return
	}
	h.renderLogin(c, http.StatusOK, render.LoginPage{Redirect: redirect})
}

// LoginForm handles the login form post
func (h *Handler) LoginForm(c *gin.Context) {
	reqLogger := RequestLogger(c)
	redirect := safeRedirect(c.PostForm("redirect"))

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, render.LoginPage{
			Username: c.PostForm("username"),
			Redirect: redirect,
			Error:    "Username and password are required.",
		})
		return
	}

	user, err := users.Authenticate(c.Request.Context(), h.users, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			reqLogger.Warn("Failed login attempt", zap.String("username", req.Username))
		} else {
			reqLogger.Error("Failed to look up user", zap.Error(err))
		}
		h.renderLogin(c, http.StatusUnauthorized, render.LoginPage{
			Username: req.Username,
			Redirect: redirect,
			Error:    "Invalid username or password.",
		})
		return
	}

	if _, err := startSession(c, user); err != nil {
		reqLogger.Error("Failed to save session", zap.Error(err))
		c.String(http.StatusInternalServerError, "Login failed")
		return
	}

	reqLogger.Info("User logged in", zap.String("username", user.Username))
	c.Redirect(http.StatusSeeOther, redirect)
}

func (h *Handler) renderLogin(c *gin.Context, status int, page render.LoginPage) {
	page.Action = LoginPagePath
	body, err := h.pages.Login(page)
	if err != nil {
		RequestLogger(c).Error("Failed to render login page", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to render login page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

// Logout clears the session
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		RequestLogger(c).Error("Failed to clear session", zap.Error(err))
	}
	c.JSON(http.StatusOK, models.SimpleMessageResponse{OK: true, Message: "Logged out successfully"})
}

// Profile returns the logged in user
func Profile(c *gin.Context) {
	c.JSON(http.StatusOK, models.NormalizedUserData{
		ID:      middleware.UserID(c),
		Name:    middleware.Username(c),
		IsAdmin: middleware.IsAdmin(c),
	})
}
