// Package csrf issues and verifies per-session anti-forgery tokens.
//
// A token is an HMAC over the action name, the user ID, the session token
// and a time tick. A tick lasts half of the configured lifetime and tokens
// from the current or the previous tick are accepted, so a token is valid
// for between lifetime/2 and lifetime.
package csrf

import (
	"fmt"
	"time"

	"maintenance-gate/pkg/utils"
)

// DefaultLifetime is how long an issued token stays valid at most.
const DefaultLifetime = 24 * time.Hour

type Manager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewManager returns a Manager signing with secret.
// A non-positive lifetime falls back to DefaultLifetime.
func NewManager(secret []byte, lifetime time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Manager{
		secret:   secret,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// tick returns the index of the half-lifetime window t falls into.
func (m *Manager) tick(t time.Time) int64 {
	half := int64(m.lifetime / 2)
	if half <= 0 {
		half = 1
	}
	return t.UnixNano()/half + 1
}

func (m *Manager) sign(action, userID, sessionToken string, tick int64) string {
	return utils.GenerateHMAC(m.secret, fmt.Sprintf("%d|%s|%s|%s", tick, action, userID, sessionToken))
}

// Issue returns a token for action bound to the caller's user and session.
func (m *Manager) Issue(action, userID, sessionToken string) string {
	return m.sign(action, userID, sessionToken, m.tick(m.now()))
}

// Verify reports whether token was issued for the same action, user and
// session within the validity window.
func (m *Manager) Verify(token, action, userID, sessionToken string) bool {
	if token == "" || userID == "" || sessionToken == "" {
		return false
	}
	tick := m.tick(m.now())
	for _, t := range []int64{tick, tick - 1} {
		if utils.ValidateHMAC(m.secret, fmt.Sprintf("%d|%s|%s|%s", t, action, userID, sessionToken), token) {
			return true
		}
	}
	return false
}
