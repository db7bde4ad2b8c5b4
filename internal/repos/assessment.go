package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *types.DiseaseAssessment) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DiseaseAssessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{
		db:  db,
		log: baseLog.With("repo", "AssessmentRepo"),
	}
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *types.DiseaseAssessment) error {
	if tx == nil {
		tx = ar.db
	}
	if err := tx.WithContext(ctx).Create(assessment).Error; err != nil {
		ar.log.Error("failed to create disease assessment", "error", err)
		return err
	}
	return nil
}

func (ar *assessmentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DiseaseAssessment, error) {
	if tx == nil {
		tx = ar.db
	}
	var assessments []*types.DiseaseAssessment
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assessments).Error; err != nil {
		ar.log.Error("failed to get disease assessments by user id", "error", err, "userID", userID)
		return nil, err
	}
	return assessments, nil
}
