package handler

import (
	"net/http"

	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List handles GET /api/admin/notifications with the unread count alongside.
func (h *NotificationHandler) List(c *gin.Context) {
	list, unread, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, gin.H{"unreadCount": unread})
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req service.NotificationInput
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.svc.Notify(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Notification created successfully", n)
}

// MarkAllRead handles PUT /api/admin/notifications.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if _, err := h.svc.MarkAllRead(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "All notifications marked as read", nil)
}

// DeleteRead handles DELETE /api/admin/notifications.
func (h *NotificationHandler) DeleteRead(c *gin.Context) {
	if _, err := h.svc.DeleteAllRead(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Read notifications deleted successfully", nil)
}

// MarkRead handles PUT /api/admin/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Notification marked as read", nil)
}
