package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
)

// RequireAdmin bloqueia rotas administrativas para quem não tem o papel
// admin no token. Assume AuthMiddleware já executado.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.MustGet(ContextUserRole).(string)
		if role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
