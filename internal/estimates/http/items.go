package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/auth"
)

func (h *Handler) addItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	res, err := h.ws.AddItem(c.Request.Context(), auth.OwnerID(c), c.Param("id"), req.Category)
	if err != nil {
		writeError(c, "items.add", err)
		return
	}
	c.JSON(http.StatusCreated, mutationOf(res))
}

func (h *Handler) updateItem(c *gin.Context) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, "items.update", err)
		return
	}
	res, err := h.ws.UpdateItem(c.Request.Context(), auth.OwnerID(c), c.Param("id"), c.Param("item_id"), patch)
	if err != nil {
		writeError(c, "items.update", err)
		return
	}
	c.JSON(http.StatusOK, mutationOf(res))
}

func (h *Handler) deleteItem(c *gin.Context) {
	res, err := h.ws.DeleteItem(c.Request.Context(), auth.OwnerID(c), c.Param("id"), c.Param("item_id"))
	if err != nil {
		writeError(c, "items.delete", err)
		return
	}
	c.JSON(http.StatusOK, mutationOf(res))
}

// moveItem drops :item_id onto target_id.
func (h *Handler) moveItem(c *gin.Context) {
	var req moveItemReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TargetID) == "" {
		badRequest(c, "invalid body")
		return
	}
	res, err := h.ws.MoveItem(c.Request.Context(), auth.OwnerID(c), c.Param("id"), c.Param("item_id"), req.TargetID)
	if err != nil {
		writeError(c, "items.move", err)
		return
	}
	c.JSON(http.StatusOK, mutationOf(res))
}
