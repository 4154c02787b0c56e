package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbearia/internal/domain"
	"barbearia/internal/pkg/response"
)

// RequireRole ensures that the authenticated barber has one of the given roles.
func RequireRole(roles ...domain.BarberRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Papel ausente no token")
			return
		}

		for _, r := range roles {
			if role.(string) == string(r) {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Acesso negado")
	}
}

// IsManager reports whether the request was authenticated as a gerente.
func IsManager(c *gin.Context) bool {
	return c.GetString(CtxRole) == string(domain.RoleManager)
}
