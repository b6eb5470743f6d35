package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/service"
	"github.com/7svn/smeta-backend/internal/estimates/store"
	"github.com/7svn/smeta-backend/internal/logger"
	"github.com/7svn/smeta-backend/internal/suggest"
)

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

// writeError maps workspace errors to status codes.
func writeError(c *gin.Context, op string, err error) {
	var se *suggest.Error
	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidUnit),
		errors.Is(err, domain.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, service.ErrSuggestionInFlight):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, store.ErrOwnerRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &se):
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":    false,
			"kind":  suggest.KindName(err),
			"error": suggest.UserMessage(err),
		})
	default:
		logger.New(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
