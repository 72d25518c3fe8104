package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/internal/application"
	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	"github.com/oksasatya/campus-doctor-directory/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type DirectoryHandler struct {
	Svc    *application.DirectoryService
	Store  Pinger
	Logger *logrus.Logger
}

func NewDirectoryHandler(svc *application.DirectoryService, store Pinger, logger *logrus.Logger) *DirectoryHandler {
	return &DirectoryHandler{Svc: svc, Store: store, Logger: logger}
}

// An empty parameter is the same as an absent one.
type searchQuery struct {
	Specialty string `form:"specialty"`
	Insurance string `form:"insurance"`
	Zipcode   string `form:"zipcode" binding:"max=10"`
}

type lookupQuery struct {
	Q    string `form:"q" binding:"required,max=200"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

func (h *DirectoryHandler) Specialties(c *gin.Context) {
	out, err := h.Svc.ListSpecialties(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"specialties": out})
}

func (h *DirectoryHandler) Insurances(c *gin.Context) {
	out, err := h.Svc.ListInsurances(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"insurances": out})
}

func (h *DirectoryHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, http.StatusBadRequest, err)
		return
	}
	doctors, err := h.Svc.Search(c.Request.Context(), entity.DoctorFilter{
		Specialty: q.Specialty,
		Insurance: q.Insurance,
		Zipcode:   q.Zipcode,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"count": len(doctors), "doctors": doctors})
}

// GetByID treats an id that is not a positive integer as an unknown doctor.
func (h *DirectoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusNotFound, application.MsgDoctorNotFound, nil)
		return
	}
	d, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"doctor": d})
}

func (h *DirectoryHandler) Lookup(c *gin.Context) {
	var q lookupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, http.StatusBadRequest, err)
		return
	}
	doctors, err := h.Svc.Lookup(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"count": len(doctors), "doctors": doctors})
}

func (h *DirectoryHandler) Health(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("health check: store unreachable")
			}
			response.Error(c, http.StatusServiceUnavailable, "Database unreachable", nil)
			return
		}
	}
	response.Success(c, http.StatusOK, "ok", nil)
}
