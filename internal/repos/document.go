package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, document *types.Document) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Document, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{
		db:  db,
		log: baseLog.With("repo", "DocumentRepo"),
	}
}

func (dr *documentRepo) Create(ctx context.Context, tx *gorm.DB, document *types.Document) error {
	if tx == nil {
		tx = dr.db
	}
	if err := tx.WithContext(ctx).Create(document).Error; err != nil {
		dr.log.Error("failed to create document", "error", err)
		return err
	}
	return nil
}

func (dr *documentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error) {
	if tx == nil {
		tx = dr.db
	}
	var document types.Document
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&document).Error; err != nil {
		dr.log.Error("failed to get document by id", "error", err, "documentID", id)
		return nil, err
	}
	return &document, nil
}

func (dr *documentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Document, error) {
	if tx == nil {
		tx = dr.db
	}
	var documents []*types.Document
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		dr.log.Error("failed to get documents by user id", "error", err, "userID", userID)
		return nil, err
	}
	return documents, nil
}

func (dr *documentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = dr.db
	}
	if err := tx.WithContext(ctx).Where("id = ?", id).Delete(&types.Document{}).Error; err != nil {
		dr.log.Error("failed to delete document", "error", err, "documentID", id)
		return err
	}
	return nil
}
