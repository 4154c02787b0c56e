package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"barbearia/internal/middleware"
	"barbearia/internal/pkg/response"
)

const (
	msgInvalidBody = "Corpo da requisição inválido"
	msgMissing     = "Campos obrigatórios ausentes"
	msgInvalidID   = "ID inválido"
	msgNotFound    = "Agendamento não encontrado"
	msgConflict    = "Horário já ocupado para este barbeiro"
	msgForbidden   = "Agendamento pertence a outro barbeiro"
	msgInternal    = "Erro interno ao processar o agendamento"
)

type Handler struct {
	service *Service
	log     *zerolog.Logger
}

func NewHandler(service *Service, log *zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the public booking routes and the staff-only edit routes.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/agendamentos", h.List)
	public.GET("/agendamentos/:id", h.Get)
	public.POST("/agendamentos", h.Create)

	protected.PUT("/agendamentos/:id", h.Update)
	protected.DELETE("/agendamentos/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Parâmetros de consulta inválidos")
		return
	}

	items, err := h.service.List(c.Request.Context(), q.Filter())
	if err != nil {
		h.fail(c, err, "list appointments")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get appointment")
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, msgInvalidBody)
		return
	}

	valid, err := req.Validate()
	if err != nil {
		h.fail(c, err, "create appointment")
		return
	}

	a, err := h.service.Create(c.Request.Context(), valid)
	if err != nil {
		h.fail(c, err, "create appointment")
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, msgInvalidBody)
		return
	}

	valid, err := req.Validate()
	if err != nil {
		h.fail(c, err, "update appointment")
		return
	}

	a, err := h.service.Update(c.Request.Context(), actorFrom(c), id, valid)
	if err != nil {
		h.fail(c, err, "update appointment")
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.fail(c, err, "delete appointment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true, "id": id})
}

// fail maps service errors onto the JSON error body. Conflicts are reported
// as 400 to keep the status the frontend already handles.
func (h *Handler) fail(c *gin.Context, err error, op string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, msgMissing, verr.Fields)
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusBadRequest, response.CodeConflict, msgConflict)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, msgForbidden)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, msgNotFound)
	default:
		h.log.Error().Err(err).Str("op", op).Str("path", c.Request.URL.Path).Msg("appointment request failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, msgInternal)
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		Username: c.GetString(middleware.CtxUsername),
		Manager:  middleware.IsManager(c),
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, msgInvalidID)
		return 0, false
	}
	return id, true
}
