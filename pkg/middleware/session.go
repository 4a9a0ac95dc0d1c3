package middleware

import (
	"github.com/gin-gonic/gin"

	"mirrormirror/pkg/utils"
)

const (
	SessionCookieName = "mirror_session"
	sessionContextKey = "session"
	sessionMaxAge     = 24 * 60 * 60
)

// SessionMiddleware restores the signed session cookie into the request
// context. A missing or invalid cookie yields a fresh session rather than an
// error; the cookie only tracks quiz activity, it is not authentication.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &utils.SessionClaims{}
		if raw, err := c.Cookie(SessionCookieName); err == nil {
			if parsed, err := utils.ValidateSessionToken(secret, raw); err == nil {
				claims = parsed
			}
		}
		c.Set(sessionContextKey, claims)
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) *utils.SessionClaims {
	if v, ok := c.Get(sessionContextKey); ok {
		if claims, ok := v.(*utils.SessionClaims); ok {
			return claims
		}
	}
	return &utils.SessionClaims{}
}

func WriteSession(c *gin.Context, secret []byte, claims *utils.SessionClaims) error {
	token, err := utils.CreateSessionToken(secret, claims)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookieName, token, sessionMaxAge, "/", "", false, true)
	return nil
}

func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
