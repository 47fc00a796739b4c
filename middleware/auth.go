package middleware

import (
	"net/http"
	"strings"

	"storefront/auth"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// TokenFromRequest prefers the session cookie and falls back to a bearer
// header for non-browser clients.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// Session attaches the caller's claims when a valid token is present. It
// never rejects a request.
func Session(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := tokens.Parse(TokenFromRequest(c, cookieName)); err == nil {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// AuthMiddleware requires Session to have found a valid token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Claims(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Login required"})
			return
		}
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}
