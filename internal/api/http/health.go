package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/suggest"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Store        string            `json:"store"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	SyncQueue    int               `json:"sync_queue"`
	Suggest      suggest.Snapshot  `json:"suggest"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       string
	deps        map[string]Pinger
	syncQueue   func() int
}

// NewHealthHandler reports on the named dependencies. A nil Pinger is
// listed as "disabled".
func NewHealthHandler(serviceName, version, store string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
		deps:        deps,
	}
}

// WithSyncQueue reports the number of queued sync commands.
func (h *HealthHandler) WithSyncQueue(fn func() int) *HealthHandler {
	h.syncQueue = fn
	return h
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	deps := make(map[string]string, len(h.deps))

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := h.deps[name]
		if p == nil {
			deps[name] = "disabled"
			continue
		}
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		err := p.Ping(pingCtx)
		cancel()
		if err != nil {
			deps[name] = "down"
			status = "degraded"
		} else {
			deps[name] = "up"
		}
	}

	queued := 0
	if h.syncQueue != nil {
		queued = h.syncQueue()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		Store:        h.store,
		Dependencies: deps,
		SyncQueue:    queued,
		Suggest:      suggest.GetMetrics().Snapshot(),
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
