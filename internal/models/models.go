package models

import (
	"time"

	"gorm.io/gorm"
)

// Setting is one persisted key/value entry of the configuration store
type Setting struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is a local account able to log in; IsAdmin grants the admin API
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:128" json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
}

// MaintenanceConfig is the full maintenance mode state
type MaintenanceConfig struct {
	Enabled    bool   `json:"enabled"`
	Message    string `json:"message"`
	SubMessage string `json:"subMessage"`
	LogoURL    string `json:"logoUrl"`
}

// SimpleMessageResponse is a generic API response
type SimpleMessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ToggleResponse is returned by the toggle endpoint on success
type ToggleResponse struct {
	OK      bool `json:"ok" example:"true"`
	Enabled bool `json:"enabled" example:"true"`
}

// StatusResponse feeds the admin indicator
type StatusResponse struct {
	Enabled bool   `json:"enabled"`
	Nonce   string `json:"nonce"`
}

// SettingsResponse is the JSON view of the settings page
type SettingsResponse struct {
	MaintenanceConfig
	Nonce string `json:"nonce"`
}

// SettingsRequest updates all four maintenance fields at once
type SettingsRequest struct {
	Enabled    bool   `json:"enabled"`
	Message    string `json:"message"`
	SubMessage string `json:"subMessage"`
	LogoURL    string `json:"logoUrl"`
	Nonce      string `json:"nonce"`
}

// LoginRequest is accepted as JSON or as a form post
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// NormalizedUserData is what the profile endpoint returns
type NormalizedUserData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}
