package repository

import (
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	CreateBatch(notifications []model.Notification) error
	FindByID(id uint) (*model.Notification, error)
	FindByUserID(userID uint, limit, offset int) ([]model.Notification, int64, error)
	CountByUserID(userID uint) (int64, error)
	CountUnreadByUserID(userID uint) (int64, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
	Delete(id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	logger.Debug("Creating notification in database", map[string]interface{}{
		"user_id": notification.UserID,
		"type":    notification.Type,
		"title":   notification.Title,
	})

	if err := r.db.Create(notification).Error; err != nil {
		logger.Error("Failed to create notification in database", err, map[string]interface{}{
			"user_id": notification.UserID,
			"type":    notification.Type,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	logger.Debug("Creating notification batch in database", map[string]interface{}{
		"count": len(notifications),
	})

	if err := r.db.Create(&notifications).Error; err != nil {
		logger.Error("Failed to create notification batch in database", err, map[string]interface{}{
			"count": len(notifications),
		})
		return err
	}
	return nil
}

func (r *notificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUserID(userID uint, limit, offset int) ([]model.Notification, int64, error) {
	query := r.db.Model(&model.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count notifications in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var notifications []model.Notification
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		logger.Error("Failed to find notifications by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count notifications by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) CountUnreadByUserID(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(id uint) error {
	if err := r.db.Model(&model.Notification{}).Where("id = ?", id).
		Update("is_read", true).Error; err != nil {
		logger.Error("Failed to mark notification as read in database", err, map[string]interface{}{
			"notification_id": id,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID uint) error {
	if err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		logger.Error("Failed to mark all notifications as read in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Notification{}, id).Error; err != nil {
		logger.Error("Failed to delete notification in database", err, map[string]interface{}{
			"notification_id": id,
		})
		return err
	}
	return nil
}
