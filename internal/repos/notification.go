package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type NotificationRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error)
	// ExistsSince reports whether the user already has a notification of the
	// given type and exact title created at or after the cutoff. It is the
	// same-day dedup check for dose reminders; there is no transactional
	// guard between this check and the batch insert.
	ExistsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, notificationType, title string, since time.Time) (bool, error)
	MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{
		db:  db,
		log: baseLog.With("repo", "NotificationRepo"),
	}
}

func (nr *notificationRepo) CreateBatch(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error {
	if tx == nil {
		tx = nr.db
	}
	if len(notifications) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(&notifications).Error; err != nil {
		nr.log.Error("failed to batch create notifications", "error", err, "count", len(notifications))
		return err
	}
	return nil
}

func (nr *notificationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error) {
	if tx == nil {
		tx = nr.db
	}
	var notifications []*types.Notification
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		nr.log.Error("failed to get notifications by user id", "error", err, "userID", userID)
		return nil, err
	}
	return notifications, nil
}

func (nr *notificationRepo) ExistsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, notificationType, title string, since time.Time) (bool, error) {
	if tx == nil {
		tx = nr.db
	}
	var count int64
	if err := tx.WithContext(ctx).
		Model(&types.Notification{}).
		Where("user_id = ? AND type = ? AND title = ? AND created_at >= ?", userID, notificationType, title, since).
		Count(&count).Error; err != nil {
		nr.log.Error("failed to check notification existence", "error", err, "userID", userID, "title", title)
		return false, err
	}
	return count > 0, nil
}

func (nr *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) error {
	if tx == nil {
		tx = nr.db
	}
	if err := tx.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error; err != nil {
		nr.log.Error("failed to mark notification read", "error", err, "notificationID", id)
		return err
	}
	return nil
}

func (nr *notificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if tx == nil {
		tx = nr.db
	}
	if err := tx.WithContext(ctx).
		Model(&types.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		nr.log.Error("failed to mark all notifications read", "error", err, "userID", userID)
		return err
	}
	return nil
}
