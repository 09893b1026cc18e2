package handler

import (
	"net/http"

	"catalog/internal/apperror"
	"catalog/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError logs err and writes its mapped status with an {error} body.
func respondError(c *gin.Context, err error) {
	status, msg := apperror.Status(err)
	log := logger.FromGin(c)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.String("reason", msg))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func respondList[T any](c *gin.Context, data []T, extra gin.H) {
	body := gin.H{"success": true, "data": data, "count": len(data)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// bindJSON decodes the body into dst, writing a 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperror.Validation("Invalid request body"))
		return false
	}
	return true
}

// activeFilter reads ?active=true|false for admin lists; anything else means all rows.
func activeFilter(c *gin.Context) *bool {
	switch c.Query("active") {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
