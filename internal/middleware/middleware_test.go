package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingClient struct {
	mu       sync.Mutex
	messages []posthog.Capture
}

func (r *recordingClient) Enqueue(msg posthog.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := msg.(posthog.Capture); ok {
		r.messages = append(r.messages, c)
	}
	return nil
}

func (r *recordingClient) Close() error { return nil }

func serve(router *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(quietLogger))
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen, _ = middleware.GetRequestIDFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := serve(router, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), seen)

	w = serve(router, http.MethodGet, "/ping", http.Header{middleware.RequestIDHeader: {"req-42"}})
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "req-42", seen)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))

	ctx := middleware.WithLogger(httptest.NewRequest(http.MethodGet, "/", nil).Context(), quietLogger)
	assert.Same(t, quietLogger, middleware.GetLoggerFromCtx(ctx))
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RateLimit(limiter))
	router.GET("/api/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/projects", nil).Code)
	w := serve(router, http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/api/projects", nil).Code)
}

func TestNewRateLimiter_RejectsBadFormat(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestRateLimit_NilDisables(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RateLimit(nil))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 5 {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/x", nil).Code)
	}
}

func TestPosthogMiddleware_TracksSuccessfulMutations(t *testing.T) {
	client := &recordingClient{}
	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(quietLogger))
	router.Use(middleware.PosthogMiddleware(utils.NewPosthogClientWrapper(client, quietLogger)))
	router.POST("/api/projects/:projectID/transactions", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.PUT("/api/projects/:projectID", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/api/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, http.MethodPost, "/api/projects/p1/transactions", http.Header{middleware.ClientIDHeader: {"install-7"}})
	serve(router, http.MethodPut, "/api/projects/p1", nil)
	serve(router, http.MethodGet, "/api/projects", nil)

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "post_api_projects_projectID_transactions", msg.Event)
	assert.Equal(t, "install-7", msg.DistinctId)
	assert.Equal(t, http.StatusCreated, msg.Properties["status_code"])
	assert.Equal(t, map[string]string{"projectID": "p1"}, msg.Properties["params"])
	assert.NotEmpty(t, msg.Properties["request_id"])
}

func TestPosthogMiddleware_DisabledClientIsNoop(t *testing.T) {
	router := gin.New()
	router.Use(middleware.PosthogMiddleware(utils.InitializePosthogClient("", "", quietLogger)))
	router.POST("/api/projects", func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/api/projects", nil).Code)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CORS([]string{"http://localhost:3000"}))
	router.GET("/api/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodOptions, "/api/projects", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"POST"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(router, http.MethodGet, "/api/projects", http.Header{"Origin": {"http://evil.example"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
