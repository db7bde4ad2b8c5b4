package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type VitalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vital *types.Vital) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vital, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, vitalType string) ([]*types.Vital, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type vitalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVitalRepo(db *gorm.DB, baseLog *logger.Logger) VitalRepo {
	return &vitalRepo{
		db:  db,
		log: baseLog.With("repo", "VitalRepo"),
	}
}

func (vr *vitalRepo) Create(ctx context.Context, tx *gorm.DB, vital *types.Vital) error {
	if tx == nil {
		tx = vr.db
	}
	if err := tx.WithContext(ctx).Create(vital).Error; err != nil {
		vr.log.Error("failed to create vital", "error", err)
		return err
	}
	return nil
}

func (vr *vitalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vital, error) {
	if tx == nil {
		tx = vr.db
	}
	var vital types.Vital
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&vital).Error; err != nil {
		vr.log.Error("failed to get vital by id", "error", err, "vitalID", id)
		return nil, err
	}
	return &vital, nil
}

func (vr *vitalRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, vitalType string) ([]*types.Vital, error) {
	if tx == nil {
		tx = vr.db
	}
	q := tx.WithContext(ctx).Where("user_id = ?", userID)
	if vitalType != "" {
		q = q.Where("type = ?", vitalType)
	}
	var vitals []*types.Vital
	if err := q.Order("recorded_at DESC").Find(&vitals).Error; err != nil {
		vr.log.Error("failed to get vitals by user id", "error", err, "userID", userID)
		return nil, err
	}
	return vitals, nil
}

func (vr *vitalRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = vr.db
	}
	if err := tx.WithContext(ctx).Where("id = ?", id).Delete(&types.Vital{}).Error; err != nil {
		vr.log.Error("failed to delete vital", "error", err, "vitalID", id)
		return err
	}
	return nil
}
