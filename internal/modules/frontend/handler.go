package frontend

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"barbearia/internal/pkg/response"
)

// Handler serves the static site from dir and falls back to index.html for
// any unknown path outside /api.
type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

// NoRoute is installed as the router fallback.
func (h *Handler) NoRoute(c *gin.Context) {
	p := c.Request.URL.Path
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Rota não encontrada")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Rota não encontrada")
		return
	}

	if file, ok := h.resolve(p); ok {
		c.File(file)
		return
	}
	if index, ok := h.resolve("/index.html"); ok {
		c.File(index)
		return
	}
	response.Error(c, http.StatusNotFound, response.CodeNotFound, "Página não encontrada")
}

// resolve maps a URL path to a regular file under dir. Paths that would
// escape dir are rejected.
func (h *Handler) resolve(urlPath string) (string, bool) {
	if h.dir == "" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		clean = "/index.html"
	}

	full := filepath.Join(h.dir, filepath.FromSlash(clean))
	rel, err := filepath.Rel(h.dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return full, true
}
