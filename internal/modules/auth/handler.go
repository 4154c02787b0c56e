package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"barbearia/internal/pkg/response"
	"barbearia/internal/pkg/validator"
)

type Handler struct {
	service *Service
	log     *zerolog.Logger
}

func NewHandler(service *Service, log *zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/login", h.Login)
}

// Login checks barber credentials and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Corpo da requisição inválido")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Usuário e senha são obrigatórios", errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Usuário ou senha inválidos")
		case errors.Is(err, ErrTooManyAttempts):
			response.Error(c, http.StatusTooManyRequests, response.CodeTooManyRequests, "Muitas tentativas, aguarde um minuto")
		default:
			h.log.Error().Err(err).Str("usuario", req.Usuario).Msg("login failed")
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Erro ao autenticar")
		}
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		OK:       true,
		Barbeiro: res.Barber.Username,
		Tipo:     string(res.Barber.Role),
		Token:    res.Token,
	})
}
