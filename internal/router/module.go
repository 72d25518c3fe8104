package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes. root is the
// engine's top-level group; api is mounted at /api.
type Module interface {
	Register(root, api *gin.RouterGroup)
}
