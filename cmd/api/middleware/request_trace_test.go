package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemma-chat/cmd/api/trace"
)

func newTracedEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTrace())
	r.POST("/echo", handler)
	return r
}

func TestRequestTraceGeneratesRequestID(t *testing.T) {
	var seen string
	r := newTracedEngine(func(c *gin.Context) {
		seen = trace.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(trace.HeaderRequestID))
	assert.Equal(t, "0", rec.Header().Get(trace.HeaderSpanID))
}

func TestRequestTraceKeepsIncomingIDAndBody(t *testing.T) {
	var body string
	r := newTracedEngine(func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		body = string(b)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(trace.HeaderRequestID, "incoming-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "incoming-id", rec.Header().Get(trace.HeaderRequestID))
	assert.Equal(t, `{"message":"hi"}`, body)
}
