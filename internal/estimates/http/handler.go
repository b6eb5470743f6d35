// Package http exposes the estimate workspace over gin.
package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/estimates/service"
	"github.com/7svn/smeta-backend/internal/estimates/syncer"
)

// EventSource streams an owner's sync events.
type EventSource interface {
	Subscribe(ctx context.Context, ownerID string) (<-chan syncer.Event, error)
}

// Handler bundles the dependencies for estimate HTTP endpoints.
type Handler struct {
	ws     *service.Workspace
	events EventSource
	now    func() time.Time
}

// New builds a Handler. events may be nil, which disables /events.
func New(ws *service.Workspace, events EventSource) *Handler {
	return &Handler{ws: ws, events: events, now: time.Now}
}

// Register attaches the estimate routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/templates", h.listTemplates)
	rg.GET("/events", h.streamEvents)
	rg.DELETE("/session", h.endSession)

	p := rg.Group("/projects")
	p.GET("", h.listProjects)
	p.POST("", h.createProject)
	p.POST("/suggest", h.suggestProject)

	p.GET("/:id", h.getProject)
	p.PATCH("/:id", h.renameProject)
	p.DELETE("/:id", h.deleteProject)
	p.POST("/:id/select", h.selectProject)

	p.POST("/:id/items", h.addItem)
	p.PATCH("/:id/items/:item_id", h.updateItem)
	p.DELETE("/:id/items/:item_id", h.deleteItem)
	p.POST("/:id/items/:item_id/move", h.moveItem)

	p.POST("/:id/categories", h.addCategory)
	p.PATCH("/:id/categories", h.renameCategory)
	p.DELETE("/:id/categories", h.deleteCategory)

	p.GET("/:id/export.xlsx", h.exportXLSX)
	p.GET("/:id/print", h.printView)
}
