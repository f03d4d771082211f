package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voltshop/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an id, echoes it on the response and tags
// every log line written for the request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logger.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}
