package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/domain"
)

// RequireRole runs after Auth and rejects callers whose session role does
// not match. Admin routes use RequireRole(domain.RoleAdmin).
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Forbidden", "statusText": http.StatusText(http.StatusForbidden)},
			})
			return
		}
		c.Next()
	}
}
