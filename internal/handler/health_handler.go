package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var timeNow = time.Now

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports liveness and whether the database answers a ping.
func (h *HealthHandler) Health(c *gin.Context) {
	status, dbStatus := http.StatusOK, "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, dbStatus = http.StatusServiceUnavailable, "unavailable"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "database": dbStatus, "time": timeNow().UTC()})
}
