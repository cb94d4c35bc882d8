package service

import (
	"errors"
	"fmt"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")
var ErrNotNotificationOwner = errors.New("notification belongs to another user")

type NotificationService interface {
	CreateWelcomeNotifications(userID uint, role model.UserRole) error
	CreateOrderStatusNotification(userID uint, orderNumber string, status model.OrderStatus, customMessage string) error
	GetUserNotifications(userID uint, page, pageSize int) ([]model.Notification, int64, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkRead(userID, notificationID uint) error
	MarkAllRead(userID uint) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// CreateWelcomeNotifications seeds the onboarding notifications for a user.
// Admins get two, customers get three. Callers guard idempotence by only
// invoking this when the user has no notifications yet.
func (s *notificationService) CreateWelcomeNotifications(userID uint, role model.UserRole) error {
	logger.Info("Creating welcome notifications", map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})

	var notifications []model.Notification
	if role == model.RoleAdmin {
		notifications = []model.Notification{
			{
				UserID:     userID,
				Title:      "Selamat Datang Admin!",
				Message:    "Anda telah berhasil login sebagai administrator. Kelola menu, pesanan, dan pengguna dengan mudah.",
				Type:       model.NotificationTypeWelcome,
				TargetPage: "admin",
			},
			{
				UserID:     userID,
				Title:      "Dashboard Admin",
				Message:    "Akses dashboard admin untuk melihat statistik dan mengelola sistem.",
				Type:       model.NotificationTypeInfo,
				TargetPage: "admin",
			},
		}
	} else {
		notifications = []model.Notification{
			{
				UserID:     userID,
				Title:      "Selamat Datang di Warung IbuMus!",
				Message:    "Terima kasih telah bergabung dengan kami. Nikmati berbagai menu lezat dan pelayanan terbaik.",
				Type:       model.NotificationTypeWelcome,
				TargetPage: "menu",
			},
			{
				UserID:     userID,
				Title:      "Promo Spesial Member Baru!",
				Message:    "Dapatkan diskon 15% untuk pembelian pertama Anda. Gunakan kode: NEWMEMBER",
				Type:       model.NotificationTypePromo,
				TargetPage: "menu",
			},
			{
				UserID:     userID,
				Title:      "Lengkapi Profil Anda",
				Message:    "Lengkapi profil Anda untuk pengalaman berbelanja yang lebih personal.",
				Type:       model.NotificationTypeInfo,
				TargetPage: "profile",
			},
		}
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		logger.Error("Failed to create welcome notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// orderStatusMessage returns the canned Indonesian message for a status.
// Unknown statuses fall back to a generic update line.
func orderStatusMessage(orderNumber string, status model.OrderStatus) string {
	switch status {
	case model.OrderStatusPending:
		return fmt.Sprintf("Pesanan %s telah diterima dan sedang diproses", orderNumber)
	case model.OrderStatusConfirmed:
		return fmt.Sprintf("Pesanan %s telah dikonfirmasi dan sedang disiapkan", orderNumber)
	case "preparing":
		return fmt.Sprintf("Pesanan %s sedang disiapkan oleh dapur kami", orderNumber)
	case model.OrderStatusReady:
		return fmt.Sprintf("Pesanan %s sudah siap untuk dikirim", orderNumber)
	case model.OrderStatusDelivered:
		return fmt.Sprintf("Pesanan %s telah berhasil dikirim ke alamat tujuan", orderNumber)
	case model.OrderStatusCancelled:
		return fmt.Sprintf("Pesanan %s telah dibatalkan", orderNumber)
	default:
		return fmt.Sprintf("Status pesanan %s telah diperbarui", orderNumber)
	}
}

// CreateOrderStatusNotification records an in-app notification about an
// order's status. A non-empty customMessage overrides the canned text.
func (s *notificationService) CreateOrderStatusNotification(userID uint, orderNumber string, status model.OrderStatus, customMessage string) error {
	message := customMessage
	if message == "" {
		message = orderStatusMessage(orderNumber, status)
	}

	notification := &model.Notification{
		UserID:     userID,
		Title:      "Update Pesanan",
		Message:    message,
		Type:       model.NotificationTypeOrder,
		TargetPage: "profile",
		TargetTab:  "orders",
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("Failed to create order status notification", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
			"status":       status,
		})
		return err
	}
	return nil
}

func (s *notificationService) GetUserNotifications(userID uint, page, pageSize int) ([]model.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	return s.notificationRepo.FindByUserID(userID, pageSize, offset)
}

func (s *notificationService) GetUnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.CountUnreadByUserID(userID)
}

func (s *notificationService) MarkRead(userID, notificationID uint) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}
	if notification.UserID != userID {
		logger.Warn("User tried to mark another user's notification as read", map[string]interface{}{
			"user_id":         userID,
			"notification_id": notificationID,
		})
		return ErrNotNotificationOwner
	}
	return s.notificationRepo.MarkRead(notificationID)
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}
