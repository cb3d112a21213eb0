package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"authweb/internal/users"
)

const (
	ctxKeySessionID = "session_id"
	ctxKeyUser      = "auth_user"
)

// SessionMiddleware makes sure every request carries an opaque session
// ID cookie, minting one on first interaction.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(h.cookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				h.cookieName,
				sid,
				int(h.sessions.TTL().Seconds()),
				"/",
				"",
				c.Request.TLS != nil,
				true,
			)
		}

		c.Set(ctxKeySessionID, sid)
		c.Next()
	}
}

// RequireUser guards pages that need an authenticated session,
// redirecting to the login page otherwise.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok, err := h.auth.User(c.Request.Context(), sessionID(c))
		if err != nil {
			h.serverError(c, err)
			return
		}
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(ctxKeyUser, user)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}

func currentUser(c *gin.Context) users.User {
	if value, ok := c.Get(ctxKeyUser); ok {
		if user, ok := value.(users.User); ok {
			return user
		}
	}
	return users.User{}
}
