package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Keys set on the gin context by LoadSession
const (
	ContextSessionData   = "sessionData"
	ContextUserID        = "userID"
	ContextUsername      = "username"
	ContextIsAdmin       = "isAdmin"
	ContextSessionToken  = "sessionToken"
	ContextAuthenticated = "authenticated"
)

// SessionDataKey is the session entry holding the logged in user
const SessionDataKey = "data"

// CSRFHeader may carry the anti-forgery token instead of the nonce form field
const CSRFHeader = "X-CSRF-Token"

// LoadSession copies the logged in user from the session into the context.
// It never aborts; anonymous requests simply get authenticated == false.
func LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextAuthenticated, false)

		session := sessions.Default(c)
		sessionData, ok := session.Get(SessionDataKey).(map[string]any)
		if !ok {
			c.Next()
			return
		}

		c.Set(ContextSessionData, sessionData)
		if name, ok := sessionData["name"].(string); ok {
			c.Set(ContextUsername, name)
		}
		if token, ok := sessionData["sessionToken"].(string); ok {
			c.Set(ContextSessionToken, token)
		}
		isAdmin, _ := sessionData["isAdmin"].(bool)
		c.Set(ContextIsAdmin, isAdmin)
		if id, ok := sessionData["id"].(string); ok && id != "" {
			c.Set(ContextUserID, id)
			c.Set(ContextAuthenticated, true)
		}
		c.Next()
	}
}

// IsAuthenticated reports whether the request belongs to a logged in user
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(ContextAuthenticated)
}

// IsAdmin reports whether the logged in user is an administrator
func IsAdmin(c *gin.Context) bool {
	return IsAuthenticated(c) && c.GetBool(ContextIsAdmin)
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

func SessionToken(c *gin.Context) string {
	return c.GetString(ContextSessionToken)
}
