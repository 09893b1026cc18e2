package middleware

import (
	"catalog/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID makes sure every request carries an X-Request-ID, echoing it back
// on the response. It must run before logger.Middleware.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(logger.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(logger.RequestIDHeader, id)
		}
		c.Header(logger.RequestIDHeader, id)
		c.Next()
	}
}
