package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthOf(t *testing.T, h *HealthHandler, path string) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck_AllUp(t *testing.T) {
	h := NewHealthHandler("smeta", "1.2.3", "redis", map[string]Pinger{
		"redis": pingFunc(func(context.Context) error { return nil }),
		"db":    nil,
	})

	resp := healthOf(t, h, "/health")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "smeta", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "redis", resp.Store)
	assert.Equal(t, map[string]string{"redis": "up", "db": "disabled"}, resp.Dependencies)
}

func TestHealthCheck_Degraded(t *testing.T) {
	h := NewHealthHandler("smeta", "dev", "postgres", map[string]Pinger{
		"db": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	resp := healthOf(t, h, "/healthz")
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.Dependencies["db"])
}

func TestHealthCheck_SyncQueue(t *testing.T) {
	h := NewHealthHandler("smeta", "dev", "memory", nil)
	assert.Equal(t, 0, healthOf(t, h, "/health").SyncQueue)

	h.WithSyncQueue(func() int { return 3 })
	assert.Equal(t, 3, healthOf(t, h, "/health").SyncQueue)
}
