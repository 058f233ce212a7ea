// Package middleware guards admin routes and wraps every request with
// logging, metrics and throttling.
// file: middleware/admin_required.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"fest-registration/logger"
	"fest-registration/sessionstore"
)

// ContextAdmin is the gin context key holding the authenticated username.
const ContextAdmin = "admin"

// now is swapped in tests.
var now = time.Now

// CurrentAdmin returns the username stored in the session. A session older
// than ttl is cleared and treated as absent.
func CurrentAdmin(c *gin.Context, ttl time.Duration) (string, bool) {
	session := sessions.Default(c)
	admin, ok := session.Get(sessionstore.KeyAdmin).(string)
	if !ok || admin == "" {
		return "", false
	}

	loggedInAt, _ := session.Get(sessionstore.KeyLoggedInAt).(int64)
	if ttl > 0 && now().Sub(time.Unix(loggedInAt, 0)) > ttl {
		logger.Info.Printf("Session for admin %q expired", admin)
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := session.Save(); err != nil {
			logger.Error.Printf("Failed to clear expired session: %v", err)
		}
		return "", false
	}
	return admin, true
}

// AdminRequired is a middleware that rejects requests without a live admin
// session before any handler runs.
func AdminRequired(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := CurrentAdmin(c, ttl)
		if !ok {
			logger.Warn.Printf("AdminRequired Middleware - Unauthorized %s %s blocked", c.Request.Method, c.Request.URL.Path)
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(ContextAdmin, admin)
		c.Next()
	}
}
