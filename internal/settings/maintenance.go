package settings

import (
	"context"
	"fmt"
	"strconv"

	"maintenance-gate/internal/models"

	"go.uber.org/zap"
)

// Keys of the four persisted maintenance values
const (
	KeyEnabled    = "maintenance_enabled"
	KeyMessage    = "maintenance_message"
	KeySubMessage = "maintenance_sub_message"
	KeyLogoURL    = "maintenance_logo"
)

// DefaultMessage is shown when no message was ever saved
const DefaultMessage = "We'll be back soon!"

var defaults = map[string]string{
	KeyEnabled:    "0",
	KeyMessage:    DefaultMessage,
	KeySubMessage: "",
	KeyLogoURL:    "",
}

// Maintenance reads and writes the maintenance mode configuration.
// Reads never fail: unset keys and backend errors resolve to the defaults.
// Writes are last-writer-wins.
type Maintenance struct {
	store Store
}

func NewMaintenance(store Store) *Maintenance {
	return &Maintenance{store: store}
}

// get returns the stored value for key or its default
func (m *Maintenance) get(ctx context.Context, key string) string {
	v, found, err := m.store.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to read maintenance setting, using default", zap.String("key", key), zap.Error(err))
		return defaults[key]
	}
	if !found {
		return defaults[key]
	}
	return v
}

func (m *Maintenance) Enabled(ctx context.Context) bool {
	enabled, err := strconv.ParseBool(m.get(ctx, KeyEnabled))
	if err != nil {
		return false
	}
	return enabled
}

func (m *Maintenance) Message(ctx context.Context) string {
	return m.get(ctx, KeyMessage)
}

func (m *Maintenance) SubMessage(ctx context.Context) string {
	return m.get(ctx, KeySubMessage)
}

func (m *Maintenance) LogoURL(ctx context.Context) string {
	return m.get(ctx, KeyLogoURL)
}

// Load reads all four values
func (m *Maintenance) Load(ctx context.Context) models.MaintenanceConfig {
	return models.MaintenanceConfig{
		Enabled:    m.Enabled(ctx),
		Message:    m.Message(ctx),
		SubMessage: m.SubMessage(ctx),
		LogoURL:    m.LogoURL(ctx),
	}
}

func (m *Maintenance) SetEnabled(ctx context.Context, enabled bool) error {
	return m.store.Set(ctx, KeyEnabled, formatBool(enabled))
}

func (m *Maintenance) SetMessage(ctx context.Context, message string) error {
	return m.store.Set(ctx, KeyMessage, message)
}

func (m *Maintenance) SetSubMessage(ctx context.Context, subMessage string) error {
	return m.store.Set(ctx, KeySubMessage, subMessage)
}

func (m *Maintenance) SetLogoURL(ctx context.Context, logoURL string) error {
	return m.store.Set(ctx, KeyLogoURL, logoURL)
}

// Save writes all four values. It stops at the first failing write.
func (m *Maintenance) Save(ctx context.Context, cfg models.MaintenanceConfig) error {
	if err := m.SetEnabled(ctx, cfg.Enabled); err != nil {
		return err
	}
	if err := m.SetMessage(ctx, cfg.Message); err != nil {
		return err
	}
	if err := m.SetSubMessage(ctx, cfg.SubMessage); err != nil {
		return err
	}
	return m.SetLogoURL(ctx, cfg.LogoURL)
}

// Toggle flips the enabled flag and returns the new value.
// Unlike the getters it does not fall back to the default when the current
// value cannot be read, so a store outage never flips the flag blindly.
// Concurrent toggles are not serialized.
func (m *Maintenance) Toggle(ctx context.Context) (bool, error) {
	raw, found, err := m.store.Get(ctx, KeyEnabled)
	if err != nil {
		return false, fmt.Errorf("failed to read current maintenance state: %w", err)
	}
	if !found {
		raw = defaults[KeyEnabled]
	}
	current, err := strconv.ParseBool(raw)
	if err != nil {
		current = false
	}

	enabled := !current
	if err := m.SetEnabled(ctx, enabled); err != nil {
		return current, err
	}
	return enabled, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
