package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/service"
	apperrors "github.com/ibumus/warung-backend/internal/errors"
	"github.com/ibumus/warung-backend/internal/middleware"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// GetNotifications lists the user's notifications, newest first
// GET /api/v1/notifications?page=1&page_size=20
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	notifications, total, err := ctrl.notificationService.GetUserNotifications(userID, page, pageSize)
	if err != nil {
		log.Error("Failed to fetch notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Gagal memuat notifikasi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

// GetUnreadCount returns how many notifications are unread
// GET /api/v1/notifications/unread/count
func (ctrl *NotificationController) GetUnreadCount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	count, err := ctrl.notificationService.GetUnreadCount(userID)
	if err != nil {
		log.Error("Failed to count unread notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Gagal memuat notifikasi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}

// MarkRead marks one notification as read
// POST /api/v1/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID notifikasi tidak valid")
		return
	}

	if err := ctrl.notificationService.MarkRead(userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.NotificationNotFound, "Notifikasi tidak ditemukan")
		case errors.Is(err, service.ErrNotNotificationOwner):
			apperrors.Forbidden(c, "")
		default:
			log.Error("Failed to mark notification as read", err, map[string]interface{}{
				"user_id":         userID,
				"notification_id": id,
			})
			apperrors.InternalError(c, "Gagal memperbarui notifikasi")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifikasi ditandai sudah dibaca",
	})
}

// MarkAllRead marks every unread notification of the user as read
// POST /api/v1/notifications/read
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.notificationService.MarkAllRead(userID); err != nil {
		log.Error("Failed to mark all notifications as read", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Gagal memperbarui notifikasi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Semua notifikasi ditandai sudah dibaca",
	})
}
