package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type MedicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, medication *types.Medication) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Medication, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activeOnly bool) ([]*types.Medication, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Medication, error)
	Update(ctx context.Context, tx *gorm.DB, medication *types.Medication) error
	Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type medicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMedicationRepo(db *gorm.DB, baseLog *logger.Logger) MedicationRepo {
	return &medicationRepo{
		db:  db,
		log: baseLog.With("repo", "MedicationRepo"),
	}
}

func (mr *medicationRepo) Create(ctx context.Context, tx *gorm.DB, medication *types.Medication) error {
	if tx == nil {
		tx = mr.db
	}
	if err := tx.WithContext(ctx).Create(medication).Error; err != nil {
		mr.log.Error("failed to create medication", "error", err)
		return err
	}
	return nil
}

func (mr *medicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Medication, error) {
	if tx == nil {
		tx = mr.db
	}
	var medication types.Medication
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&medication).Error; err != nil {
		mr.log.Error("failed to get medication by id", "error", err, "medicationID", id)
		return nil, err
	}
	return &medication, nil
}

func (mr *medicationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activeOnly bool) ([]*types.Medication, error) {
	if tx == nil {
		tx = mr.db
	}
	q := tx.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var medications []*types.Medication
	if err := q.Order("created_at DESC").Find(&medications).Error; err != nil {
		mr.log.Error("failed to get medications by user id", "error", err, "userID", userID)
		return nil, err
	}
	return medications, nil
}

func (mr *medicationRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Medication, error) {
	if tx == nil {
		tx = mr.db
	}
	var medications []*types.Medication
	if err := tx.WithContext(ctx).Where("is_active = ?", true).Find(&medications).Error; err != nil {
		mr.log.Error("failed to list active medications", "error", err)
		return nil, err
	}
	return medications, nil
}

func (mr *medicationRepo) Update(ctx context.Context, tx *gorm.DB, medication *types.Medication) error {
	if tx == nil {
		tx = mr.db
	}
	if err := tx.WithContext(ctx).Save(medication).Error; err != nil {
		mr.log.Error("failed to update medication", "error", err, "medicationID", medication.ID)
		return err
	}
	return nil
}

func (mr *medicationRepo) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = mr.db
	}
	if err := tx.WithContext(ctx).
		Model(&types.Medication{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		mr.log.Error("failed to deactivate medication", "error", err, "medicationID", id)
		return err
	}
	return nil
}
