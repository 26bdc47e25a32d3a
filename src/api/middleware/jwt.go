package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func JWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")
		if !strings.HasPrefix(bearer, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token, err := jwt.Parse(bearer[7:], func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		if uid, ok := claims["uid"].(float64); ok {
			c.Set("uid", uint64(uid))
		}
		if admin, ok := claims["admin"].(bool); ok {
			c.Set("admin", admin)
		}
		c.Next()
	}
}

// AdminOnly gates the moderation endpoints. Run it after JWT.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			return
		}
		c.Next()
	}
}
