package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/auth"
)

func (h *Handler) addCategory(c *gin.Context) {
	res, err := h.ws.AddCategory(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		writeError(c, "categories.add", err)
		return
	}
	c.JSON(http.StatusCreated, mutationOf(res))
}

// renameCategory relabels a category. Renaming onto an existing label
// merges the two and the response carries merged=true.
func (h *Handler) renameCategory(c *gin.Context) {
	var req renameCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	res, err := h.ws.RenameCategory(c.Request.Context(), auth.OwnerID(c), c.Param("id"), req.Old, req.New)
	if err != nil {
		writeError(c, "categories.rename", err)
		return
	}
	c.JSON(http.StatusOK, mutationOf(res))
}

func (h *Handler) deleteCategory(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		badRequest(c, "name is required")
		return
	}
	res, err := h.ws.DeleteCategory(c.Request.Context(), auth.OwnerID(c), c.Param("id"), name)
	if err != nil {
		writeError(c, "categories.delete", err)
		return
	}
	c.JSON(http.StatusOK, mutationOf(res))
}
