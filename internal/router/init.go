package router

import (
	"github.com/oksasatya/campus-doctor-directory/internal/container"
	handlers "github.com/oksasatya/campus-doctor-directory/internal/interface/http"
	"github.com/oksasatya/campus-doctor-directory/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every
// module. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	authHandler := handlers.NewAuthHandler(c.Auth, c.Logger)
	r.Add(modules.NewAuthModule(authHandler, c.Redis, c.Logger, modules.AuthLimits{
		Register: cfg.RateLimitRegister,
		Login:    cfg.RateLimitLogin,
		Verify:   cfg.RateLimitVerify,
		Window:   cfg.RateLimitWindow,
	}))

	var store handlers.Pinger
	if c.PGPool != nil {
		store = c.PGPool
	}
	r.Add(modules.NewDirectoryModule(handlers.NewDirectoryHandler(c.Directory, store, c.Logger)))

	if cfg.MetricsEnabled {
		r.Add(modules.NewMetricsModule())
	}

	r.Engine.NoRoute(handlers.NewSPAHandler(cfg.StaticDir).Serve)
}
