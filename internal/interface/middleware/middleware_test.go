package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-doctor-directory/internal/metrics"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
	"github.com/oksasatya/campus-doctor-directory/pkg/response"
)

func init() { gin.SetMode(gin.TestMode) }

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// newEngine builds an engine that trusts forwarding headers only from proxies.
func newEngine(t *testing.T, proxies ...string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, TrustProxies(r, proxies, ""))
	r.Use(RealIP())
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	return doFrom(r, "", method, path, headers)
}

// doFrom sends a request from remoteAddr; empty keeps httptest's 192.0.2.1.
func doFrom(r http.Handler, remoteAddr, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestRateLimitBlocksAfterMax(t *testing.T) {
	_, rdb := newRedis(t)
	r := newEngine(t, "192.0.2.1")
	r.POST("/login", RateLimit(rdb, helpers.NewDiscardLogger(), 2, time.Minute, KeyByIPAndPath(), nil), ok)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/login", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, MsgRateLimited, body["message"])

	other := do(r, http.MethodPost, "/login", map[string]string{"X-Forwarded-For": "203.0.113.9"})
	assert.Equal(t, http.StatusOK, other.Code, "a trusted proxy forwards distinct clients")
}

func TestRateLimitBudgetsArePerRoute(t *testing.T) {
	_, rdb := newRedis(t)
	r := newEngine(t)
	limit := RateLimit(rdb, nil, 1, time.Minute, KeyByIPAndPath(), nil)
	r.POST("/login", limit, ok)
	r.POST("/verify", limit, ok)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/verify", nil).Code)
}

func TestRateLimitIgnoresSpoofedForwarding(t *testing.T) {
	_, rdb := newRedis(t)
	r := newEngine(t)
	r.POST("/login", RateLimit(rdb, nil, 1, time.Minute, KeyByIPAndPath(), nil), ok)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		w := doFrom(r, "203.0.113.9:5555", http.MethodPost, "/login", map[string]string{
			"X-Forwarded-For":  "198.51.100." + strconv.Itoa(i+1),
			"CF-Connecting-IP": "198.51.100." + strconv.Itoa(i+1),
		})
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
}

func TestRateLimitWindowExpires(t *testing.T) {
	mr, rdb := newRedis(t)
	r := newEngine(t)
	r.POST("/verify", RateLimit(rdb, nil, 1, time.Second, KeyByIPAndPath(), nil), ok)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/verify", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/verify", nil).Code)

	mr.FastForward(2 * time.Second)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/verify", nil).Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()
	r := newEngine(t)
	r.POST("/register", RateLimit(rdb, helpers.NewDiscardLogger(), 1, time.Minute, KeyByIPAndPath(), nil), ok)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/register", nil).Code)
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := newEngine(t)
	r.POST("/register", RateLimit(nil, nil, 1, time.Minute, KeyByIPAndPath(), nil), ok)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/register", nil).Code)
	}
}

func TestRateLimitAllowBypass(t *testing.T) {
	_, rdb := newRedis(t)
	r := newEngine(t)
	r.POST("/login", RateLimit(rdb, nil, 1, time.Minute, KeyByIPAndPath(), AllowPrivateIP()), ok)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.7:4000", http.MethodPost, "/login", nil).Code)
	}
}

func TestRealIP(t *testing.T) {
	handler := func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RealIPKey)) }
	fwd := map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}

	t.Run("untrusted peer keeps socket address", func(t *testing.T) {
		r := newEngine(t)
		r.GET("/ip", handler)
		w := do(r, http.MethodGet, "/ip", map[string]string{
			"CF-Connecting-IP": "198.51.100.1",
			"X-Forwarded-For":  "127.0.0.1",
		})
		assert.Equal(t, "192.0.2.1", w.Body.String())
	})

	t.Run("trusted chain resolves the first untrusted hop", func(t *testing.T) {
		r := newEngine(t, "192.0.2.1", "10.0.0.0/8")
		r.GET("/ip", handler)
		assert.Equal(t, "203.0.113.5", do(r, http.MethodGet, "/ip", fwd).Body.String())

		w := do(r, http.MethodGet, "/ip", map[string]string{"X-Forwarded-For": "garbage"})
		assert.Equal(t, "192.0.2.1", w.Body.String())
	})

	t.Run("platform header", func(t *testing.T) {
		r := gin.New()
		require.NoError(t, TrustProxies(r, nil, "cloudflare"))
		r.Use(RealIP())
		r.GET("/ip", handler)
		w := do(r, http.MethodGet, "/ip", map[string]string{"CF-Connecting-IP": "198.51.100.1"})
		assert.Equal(t, "198.51.100.1", w.Body.String())
	})

	t.Run("invalid proxy", func(t *testing.T) {
		assert.Error(t, TrustProxies(gin.New(), []string{"not-an-ip"}, ""))
	})
}

func TestRequireAllowed(t *testing.T) {
	r := newEngine(t)
	r.GET("/metrics", RequireAllowed(AllowPrivateIP()), ok)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusForbidden,
		doFrom(r, "203.0.113.9:5555", http.MethodGet, "/metrics", map[string]string{"X-Forwarded-For": "127.0.0.1"}).Code)
	assert.Equal(t, http.StatusOK, doFrom(r, "127.0.0.1:5555", http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusOK, doFrom(r, "[::1]:5555", http.MethodGet, "/metrics", nil).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(response.RequestIDKey)) })

	w := do(r, http.MethodGet, "/id", nil)
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	kept := uuid.NewString()
	w = do(r, http.MethodGet, "/id", map[string]string{RequestIDHeader: kept})
	assert.Equal(t, kept, w.Body.String())

	w = do(r, http.MethodGet, "/id", map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestMetricsMiddlewareCountsRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/doctors/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues("/api/doctors/:id", http.MethodGet, "404")
	before := testutil.ToFloat64(counter)
	do(r, http.MethodGet, "/api/doctors/7", nil)
	do(r, http.MethodGet, "/api/doctors/8", nil)
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(helpers.NewDiscardLogger()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/ok", nil).Code)
}
