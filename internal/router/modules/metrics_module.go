package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/campus-doctor-directory/internal/interface/middleware"
)

type MetricsModule struct{}

func NewMetricsModule() *MetricsModule { return &MetricsModule{} }

// Register exposes Prometheus metrics at /metrics, reachable from private
// networks only.
func (m *MetricsModule) Register(root, _ *gin.RouterGroup) {
	root.GET("/metrics", middleware.RequireAllowed(middleware.AllowPrivateIP()), gin.WrapH(promhttp.Handler()))
}
