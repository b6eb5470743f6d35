package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/auth"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/templates"
)

func (h *Handler) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": templates.List()})
}

func (h *Handler) listProjects(c *gin.Context) {
	view, err := h.ws.List(c.Request.Context(), auth.OwnerID(c))
	if err != nil {
		writeError(c, "projects.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"projects":   view.Projects,
		"current_id": view.CurrentID,
		"syncing":    view.Syncing,
		"suggesting": h.ws.Suggesting(auth.OwnerID(c)),
	})
}

// endSession drops the caller's in-memory working set, as on sign-out.
// Queued sync commands are still delivered.
func (h *Handler) endSession(c *gin.Context) {
	h.ws.Forget(auth.OwnerID(c))
	c.Status(http.StatusNoContent)
}

// createProject creates an empty project, or one from a template when
// template_id is given. An empty body is accepted.
func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid body")
		return
	}

	ctx, owner := c.Request.Context(), auth.OwnerID(c)
	var (
		p   domain.RenovationProject
		err error
	)
	if id := strings.TrimSpace(req.TemplateID); id != "" {
		p, err = h.ws.CreateFromTemplate(ctx, owner, id)
	} else {
		p, err = h.ws.CreateEmpty(ctx, owner)
	}
	if err != nil {
		writeError(c, "projects.create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "view": viewOf(p)})
}

func (h *Handler) suggestProject(c *gin.Context) {
	var req suggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	p, err := h.ws.CreateFromSuggestion(c.Request.Context(), auth.OwnerID(c), req.Prompt)
	if err != nil {
		writeError(c, "projects.suggest", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "view": viewOf(p)})
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.ws.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		writeError(c, "projects.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": viewOf(p)})
}

func (h *Handler) renameProject(c *gin.Context) {
	var req renameProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(c, "invalid body")
		return
	}
	res, err := h.ws.Rename(c.Request.Context(), auth.OwnerID(c), c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		writeError(c, "projects.rename", err)
		return
	}
	c.JSON(http.StatusOK, mutationOf(res))
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.ws.Delete(c.Request.Context(), auth.OwnerID(c), c.Param("id")); err != nil {
		writeError(c, "projects.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) selectProject(c *gin.Context) {
	if err := h.ws.Select(c.Request.Context(), auth.OwnerID(c), c.Param("id")); err != nil {
		writeError(c, "projects.select", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "current_id": c.Param("id")})
}
