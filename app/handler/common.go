package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
	"voltshop/pkg/logger"
)

// writeServiceError maps service errors to HTTP responses. Definition and
// value errors carry their field issues so clients can render them per field.
func writeServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var defErr *service.DefinitionError
	if errors.As(err, &defErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid definition", "issues": defErr.Issues})
		return
	}

	var valueErr *service.ValueError
	if errors.As(err, &valueErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value", "issues": valueErr.Issues})
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	logger.ErrorCtx(ctx, "request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
