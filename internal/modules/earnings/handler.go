package earnings

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"barbearia/internal/domain"
	"barbearia/internal/middleware"
	"barbearia/internal/pkg/response"
	"barbearia/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
	log     *zerolog.Logger
}

func NewHandler(service *Service, log *zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes expects a group that already runs JWTAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/ganhos", h.Earnings)
	protected.GET("/relatorio", h.Report)
	protected.GET("/relatorio/export", h.Export)
}

func (h *Handler) Earnings(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	out, err := h.service.Earnings(c.Request.Context(), f)
	if err != nil {
		h.internal(c, err, "earnings")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Report(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	r, err := h.service.Report(c.Request.Context(), f)
	if err != nil {
		h.internal(c, err, "report")
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Export(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	r, err := h.service.Report(c.Request.Context(), f)
	if err != nil {
		h.internal(c, err, "report export")
		return
	}

	var buf bytes.Buffer
	if err := WriteReportXLSX(&buf, r); err != nil {
		h.internal(c, err, "report export")
		return
	}

	name := fmt.Sprintf("relatorio_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// filter binds the query and restricts a barbeiro token to its own rows.
func (h *Handler) filter(c *gin.Context) (domain.AppointmentFilter, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Parâmetros de consulta inválidos")
		return domain.AppointmentFilter{}, false
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Parâmetros de consulta inválidos", errs)
		return domain.AppointmentFilter{}, false
	}

	f := q.Filter()
	if !middleware.IsManager(c) {
		username := c.GetString(middleware.CtxUsername)
		if username == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Autenticação necessária")
			return domain.AppointmentFilter{}, false
		}
		f.Barber = username
	}
	return f, true
}

func (h *Handler) internal(c *gin.Context, err error, op string) {
	h.log.Error().Err(err).Str("op", op).Msg("earnings request failed")
	response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Erro ao calcular os ganhos")
}
