package app

import (
	"net/http"
	"strings"

	"Gin_postgres_redis_inventory_ledger/auth"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// BearerAuth 校验 Authorization: Bearer <token>，把 claims 放进上下文
func BearerAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": true, "message": "Unauthorized"})
			return
		}
		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": true, "message": "Unauthorized"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.User.ID)
		c.Next()
	}
}

func GetClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
