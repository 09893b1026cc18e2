package repository

import (
	"context"

	"catalog/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListLatest returns the newest notifications first.
func (r *NotificationRepository) ListLatest(ctx context.Context, limit int) ([]models.Notification, error) {
	list := []models.Notification{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

// MarkRead reports whether a notification with id existed.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Already-read rows report zero affected rows on some drivers.
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("is_read = ?", false).Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) DeleteAllRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("is_read = ?", true).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
