package controllers

import (
	"net/http"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NotificationController handles the caller's notifications
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}

	ns, err := c.notificationService.List(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NotificationListResponse{Notifications: ns}))
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "notification")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "notification marked as read"}))
}

// Delete removes one notification
// @Summary Delete notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	accountID, ok := currentAccountID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "notification")
	if !ok {
		return
	}

	if err := c.notificationService.Delete(ctx.Request.Context(), accountID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "notification deleted"}))
}
