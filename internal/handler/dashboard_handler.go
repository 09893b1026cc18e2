package handler

import (
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Get handles GET /api/admin/dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.svc.Build(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, d)
}
