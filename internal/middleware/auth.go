package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"barbearia/internal/pkg/jwt"
	"barbearia/internal/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxBarberID = "barber_id"
	CtxUsername = "usuario"
	CtxRole     = "role"
)

const (
	CodeAuthHeaderMissing = "AUTH_HEADER_MISSING"
	CodeInvalidAuthFormat = "INVALID_AUTH_FORMAT"
	CodeInvalidToken      = "INVALID_TOKEN"
)

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// JWTAuth requires a bearer token and stores the barber identity in the context.
func JWTAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, CodeAuthHeaderMissing, "Cabeçalho Authorization ausente")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, CodeInvalidAuthFormat, "Cabeçalho Authorization inválido")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, CodeInvalidAuthFormat, "Token vazio")
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, CodeInvalidToken, "Token inválido ou expirado")
			return
		}

		c.Set(CtxBarberID, claims.BarberID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
