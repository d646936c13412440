package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionContextKey = "cart_session_id"
	cookieName        = "cart_token"
	headerName        = "X-Cart-Token"
	cookieMaxAge      = 7 * 24 * 60 * 60
)

// SessionMiddleware resolves the cart session token from the X-Cart-Token
// header or the cart_token cookie, issuing a fresh token (and cookie) when
// neither is present. One token identifies one cart for the session's life.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(headerName)
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			token = uuid.New().String()
			c.SetCookie(cookieName, token, cookieMaxAge, "/", "", false, true)
		}
		c.Set(sessionContextKey, token)
		c.Header(headerName, token)
		c.Next()
	}
}

// GetSessionID returns the cart session token resolved for this request.
func GetSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
