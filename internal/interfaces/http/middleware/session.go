package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cardreg.backend/pkg/crypto"
	"cardreg.backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	// SessionCookieName carries the anonymous workflow session identifier.
	SessionCookieName = "cardreg_session"

	// SessionIDKey is the gin context key holding the session identifier.
	SessionIDKey = "workflow_session_id"
)

// SessionMiddleware ensures every request carries a workflow session cookie.
// The cookie identifies the wizard session only; it grants nothing else.
func SessionMiddleware(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid, err = crypto.GenerateSessionID()
			if err != nil {
				logger.Error(c.Request.Context(), "failed to mint session id", zap.Error(err))
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sid, int(ttl.Seconds()), "/", "", secure, true)
		}

		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the workflow session identifier set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
