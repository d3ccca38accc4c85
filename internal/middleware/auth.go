package middleware

import (
	"net/http"
	"strings"

	"leettrack_backend/internal/config"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller identity from a Bearer token. The daily
// feed endpoints expect a flat {success,message} 401 body, so that shape is
// used everywhere for consistency with the original API contract.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString, _ = c.Cookie("auth_token")
		}

		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Authentication required",
	})
}
