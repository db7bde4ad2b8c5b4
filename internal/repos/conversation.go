package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type ConversationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Conversation, error)
	Touch(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return &conversationRepo{
		db:  db,
		log: baseLog.With("repo", "ConversationRepo"),
	}
}

func (cr *conversationRepo) Create(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) error {
	if tx == nil {
		tx = cr.db
	}
	if err := tx.WithContext(ctx).Create(conversation).Error; err != nil {
		cr.log.Error("failed to create conversation", "error", err)
		return err
	}
	return nil
}

func (cr *conversationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error) {
	if tx == nil {
		tx = cr.db
	}
	var conversation types.Conversation
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&conversation).Error; err != nil {
		cr.log.Error("failed to get conversation by id", "error", err, "conversationID", id)
		return nil, err
	}
	return &conversation, nil
}

func (cr *conversationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Conversation, error) {
	if tx == nil {
		tx = cr.db
	}
	var conversations []*types.Conversation
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		cr.log.Error("failed to get conversations by user id", "error", err, "userID", userID)
		return nil, err
	}
	return conversations, nil
}

func (cr *conversationRepo) Touch(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = cr.db
	}
	if err := tx.WithContext(ctx).
		Model(&types.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("now()")).Error; err != nil {
		cr.log.Error("failed to touch conversation", "error", err, "conversationID", id)
		return err
	}
	return nil
}

func (cr *conversationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = cr.db
	}
	if err := tx.WithContext(ctx).Where("id = ?", id).Delete(&types.Conversation{}).Error; err != nil {
		cr.log.Error("failed to delete conversation", "error", err, "conversationID", id)
		return err
	}
	return nil
}
