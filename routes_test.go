package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-complete/config"
	"portfolio-complete/service"
	"portfolio-complete/stores/memory"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{Secret: "s3cret"},
		CORS:  config.CORSConfig{AllowedOrigins: []string{"https://*"}},
	}
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouterPortfolioFlow(t *testing.T) {
	h := newRouter(testConfig(), service.New(memory.NewDocumentStore(), nil), nil)

	require.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/portfolio", "").Code)

	body := `{"name":"A","title":"B","about":"","image":"","skills":[],"projects":[],"contact":{"email":"","phone":"","linkedin":"","github":""}}`
	w := serve(h, http.MethodPost, "/api/portfolio", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodGet, "/api/portfolio", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, body, w.Body.String())

	w = serve(h, http.MethodPut, "/api/portfolio", strings.Replace(body, `"A"`, `"C"`, 1))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, serve(h, http.MethodGet, "/api/portfolio", "").Body.String(), `"name":"C"`)
}

func TestRouterAuxiliaryEndpoints(t *testing.T) {
	h := newRouter(testConfig(), service.New(memory.NewDocumentStore(), nil), nil)

	w := serve(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())

	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/", "").Code)
	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/metrics", "").Code)
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/api/admin/verify", `{"password":"s3cret"}`).Code)
	require.Equal(t, http.StatusUnauthorized, serve(h, http.MethodPost, "/api/admin/verify", `{"password":"x"}`).Code)
}

func TestRouterRateLimitsReplaceOnly(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.1, Burst: 1}
	h := newRouter(cfg, service.New(memory.NewDocumentStore(), nil), nil)

	body := `{"name":"A"}`
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/api/portfolio", body).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodPost, "/api/portfolio", body).Code)
	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/portfolio", "").Code)
}

func TestSetupLogging(t *testing.T) {
	level, formatter := logrus.GetLevel(), logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetLevel(level)
		logrus.SetFormatter(formatter)
	})

	setupLogging(config.LogConfig{Level: "debug", Format: "json"})
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	setupLogging(config.LogConfig{Level: "bogus", Format: "text"})
	require.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	setupLogging(config.LogConfig{Level: "warn", Format: "text"})
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
