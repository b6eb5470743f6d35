package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7svn/smeta-backend/internal/logger"
)

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr, seen
}

func TestRequestID_Reused(t *testing.T) {
	rr, seen := serve(t, "abc-123")
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
}

func TestRequestID_Generated(t *testing.T) {
	rr, seen := serve(t, "")
	rid := rr.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
	assert.Equal(t, rid, seen)
}

func TestRequestID_OversizedReplaced(t *testing.T) {
	rr, _ := serve(t, strings.Repeat("x", 200))
	assert.Len(t, rr.Header().Get(RequestIDHeader), 36)
}
