package handler

import (
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct{ svc service.ActivityService }

func NewNotificationsHandler(svc service.ActivityService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

// List godoc
// @Summary      List own notifications
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListNotifications(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list notifications"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         account
// @Security     BearerAuth
// @Param        id path string true "Notification UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("notification not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
