package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIPKey is the gin context key set by RealIP.
const RealIPKey = "real_ip"

// TrustProxies restricts which peers may set the client IP through
// forwarding headers. With no proxies the socket address is always used.
// platform selects a trusted platform header: "cloudflare", "google", or a
// literal header name.
func TrustProxies(r *gin.Engine, proxies []string, platform string) error {
	if err := r.SetTrustedProxies(proxies); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "":
		r.TrustedPlatform = ""
	case "cloudflare":
		r.TrustedPlatform = gin.PlatformCloudflare
	case "google", "appengine":
		r.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		r.TrustedPlatform = strings.TrimSpace(platform)
	}
	return nil
}

// RealIP stores the client IP as resolved by the engine's proxy settings.
// Forwarding headers count only when the peer is a trusted proxy.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, c.ClientIP())
		c.Next()
	}
}

// ipFromCtx returns the IP set by RealIP, falling back to "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(RealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
