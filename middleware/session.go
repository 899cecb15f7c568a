package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the opaque cart session key.
const SessionCookie = "cart_session"

// SessionKeyContext is the gin context key the session key is stored under.
const SessionKeyContext = "session_key"

const sessionMaxAge = 30 * 24 * time.Hour

// Session establishes a stable session key for the request. A missing or
// empty cookie gets a freshly minted key, set before any cart lookup runs
// so the cart created for it is not orphaned on the next request.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(SessionCookie)
		if err != nil || key == "" {
			key = uuid.NewString()
			c.SetCookie(SessionCookie, key, int(sessionMaxAge.Seconds()), "/", "", false, true)
		}
		c.Set(SessionKeyContext, key)
		c.Next()
	}
}
