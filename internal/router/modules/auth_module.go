package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/campus-doctor-directory/internal/interface/http"
	"github.com/oksasatya/campus-doctor-directory/internal/interface/middleware"
)

// AuthLimits are per-IP request budgets for each auth endpoint.
type AuthLimits struct {
	Register int
	Login    int
	Verify   int
	Window   time.Duration
}

// AuthModule serves POST /register, /login and /verify at the root, where
// the client expects them.
type AuthModule struct {
	Handler *handlers.AuthHandler
	RDB     *redis.Client
	Logger  *logrus.Logger
	Limits  AuthLimits
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, logger *logrus.Logger, limits AuthLimits) *AuthModule {
	return &AuthModule{Handler: h, RDB: rdb, Logger: logger, Limits: limits}
}

func (m *AuthModule) limiter(max int) gin.HandlerFunc {
	return middleware.RateLimit(m.RDB, m.Logger, max, m.Limits.Window, middleware.KeyByIPAndPath(), nil)
}

func (m *AuthModule) Register(root, _ *gin.RouterGroup) {
	root.POST("/register", m.limiter(m.Limits.Register), m.Handler.Register)
	root.POST("/login", m.limiter(m.Limits.Login), m.Handler.Login)
	root.POST("/verify", m.limiter(m.Limits.Verify), m.Handler.Verify)
}
