package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-doctor-directory/pkg/response"
)

// SPAHandler serves the client bundle for every path no route claims.
// Existing files are served as-is; anything else gets index.html so the
// client router can take over. Unknown /api paths stay JSON 404s.
type SPAHandler struct {
	Dir string
}

func NewSPAHandler(dir string) *SPAHandler {
	return &SPAHandler{Dir: dir}
}

func (h *SPAHandler) Serve(c *gin.Context) {
	p := c.Request.URL.Path
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		response.Error(c, http.StatusNotFound, "Not found", nil)
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Error(c, http.StatusNotFound, "Not found", nil)
		return
	}

	if h.Dir != "" {
		// path.Clean on a rooted path cannot climb above the root.
		rel := strings.TrimPrefix(path.Clean("/"+p), "/")
		if rel != "" {
			file := filepath.Join(h.Dir, filepath.FromSlash(rel))
			if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
				c.File(file)
				return
			}
		}
		index := filepath.Join(h.Dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
	}
	response.Error(c, http.StatusNotFound, "Not found", nil)
}
