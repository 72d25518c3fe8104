package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-doctor-directory/internal/interface/http"
)

// DirectoryModule serves the read-only doctor directory under /api.
type DirectoryModule struct {
	Handler *handlers.DirectoryHandler
}

func NewDirectoryModule(h *handlers.DirectoryHandler) *DirectoryModule {
	return &DirectoryModule{Handler: h}
}

func (m *DirectoryModule) Register(_, api *gin.RouterGroup) {
	api.GET("/health", m.Handler.Health)
	api.GET("/specialties", m.Handler.Specialties)
	api.GET("/insurances", m.Handler.Insurances)
	api.GET("/doctors/search", m.Handler.Search)
	api.GET("/doctors/lookup", m.Handler.Lookup)
	api.GET("/doctors/:id", m.Handler.GetByID)
}
