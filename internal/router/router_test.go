package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/campus-doctor-directory/config"
	"github.com/oksasatya/campus-doctor-directory/internal/application"
	"github.com/oksasatya/campus-doctor-directory/internal/container"
	"github.com/oksasatya/campus-doctor-directory/internal/interface/middleware"
	"github.com/oksasatya/campus-doctor-directory/internal/mocks"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(t *testing.T, metricsEnabled bool) *gin.Engine {
	t.Helper()
	logger := helpers.NewDiscardLogger()
	cfg := &config.Config{
		MetricsEnabled:  metricsEnabled,
		StaticDir:       t.TempDir(),
		RateLimitWindow: time.Minute,
	}
	c := &container.Container{
		Config:    cfg,
		Logger:    logger,
		Auth:      application.NewAuthService(mocks.NewUserRepository(), mocks.NewSender(), logger, "test", []string{"spelman.edu"}),
		Directory: application.NewDirectoryService(mocks.NewDirectoryRepository(), logger, nil, ""),
	}
	r := gin.New()
	if err := middleware.TrustProxies(r, nil, ""); err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func serve(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	return serveFrom(r, "", method, path, body, headers...)
}

func serveFrom(r http.Handler, remoteAddr, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesAreMounted(t *testing.T) {
	r := newEngine(t, true)

	w := serve(r, http.MethodPost, "/register", `{"name":"Jane","email":"jane@spelman.edu","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/login", `{"email":"jane@spelman.edu","password":"password123"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodPost, "/verify", `{"email":"jane@spelman.edu","verificationCode":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, p := range []string{"/api/specialties", "/api/insurances", "/api/doctors/search", "/api/health", "/api/doctors/lookup?q=x"} {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, p, "").Code, p)
	}
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/doctors/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/unknown", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newEngine(t, true)

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/metrics", "", "X-Forwarded-For", "127.0.0.1").Code,
		"forwarding headers from an untrusted peer are ignored")

	w := serveFrom(r, "127.0.0.1:40000", http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestMetricsDisabled(t *testing.T) {
	r := newEngine(t, false)
	w := serveFrom(r, "127.0.0.1:40000", http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
