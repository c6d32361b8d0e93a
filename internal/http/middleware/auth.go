package middleware

import (
	"net/http"
	"strings"

	"armada/internal/domain"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	// userRoleKey is read by RequireRoles.
	userRoleKey = "userRole"
)

// AuthRequired verifies the Bearer token and stores the caller on the context.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "token tidak ditemukan",
				"request_id": GetRequestID(c),
			})
			return
		}

		p, err := services.ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "token tidak valid atau kedaluwarsa",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(principalKey, p)
		c.Set(userRoleKey, p.Role)
		c.Next()
	}
}

// GetPrincipal returns the caller set by AuthRequired.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	if c == nil {
		return domain.Principal{}, false
	}
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
