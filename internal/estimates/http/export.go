package http

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/auth"
	"github.com/7svn/smeta-backend/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) exportXLSX(c *gin.Context) {
	p, err := h.ws.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		writeError(c, "export.xlsx", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, p, h.now()); err != nil {
		writeError(c, "export.xlsx", err)
		return
	}

	name := export.FileName(p.Name)
	c.Header("Content-Disposition", `attachment; filename="estimate.xlsx"; filename*=UTF-8''`+url.PathEscape(name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) printView(c *gin.Context) {
	p, err := h.ws.Get(c.Request.Context(), auth.OwnerID(c), c.Param("id"))
	if err != nil {
		writeError(c, "export.print", err)
		return
	}

	var buf bytes.Buffer
	if err := export.RenderPrintHTML(&buf, p, h.now()); err != nil {
		writeError(c, "export.print", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
