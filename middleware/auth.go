// File: middleware/auth.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fest-registration/logger"
)

// -------------- page authentication middleware --------------

// PageAuthRequired protects HTML pages. Browsers without a live admin
// session are sent to the login page instead of getting JSON.
func PageAuthRequired(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := CurrentAdmin(c, ttl)
		if !ok {
			logger.Debug.Printf("[PageAuthRequired] No admin session for %s, redirecting", c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
			return
		}
		c.Set(ContextAdmin, admin)
		c.Next()
	}
}
