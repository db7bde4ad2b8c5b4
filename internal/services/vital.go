package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type VitalInput struct {
	Type       string
	Value      string
	Unit       string
	Notes      string
	RecordedAt time.Time
}

type VitalService interface {
	Create(ctx context.Context, in VitalInput) (*types.Vital, error)
	GetMine(ctx context.Context, vitalType string) ([]*types.Vital, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vitalService struct {
	db        *gorm.DB
	log       *logger.Logger
	vitalRepo repos.VitalRepo
}

func NewVitalService(db *gorm.DB, log *logger.Logger, vitalRepo repos.VitalRepo) VitalService {
	serviceLog := log.With("service", "VitalService")
	return &vitalService{db: db, log: serviceLog, vitalRepo: vitalRepo}
}

func (vs *vitalService) Create(ctx context.Context, in VitalInput) (*types.Vital, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if in.Type == "" {
		return nil, fmt.Errorf("a vital type is required")
	}
	if in.Value == "" {
		return nil, fmt.Errorf("a vital value is required")
	}
	if in.RecordedAt.IsZero() {
		in.RecordedAt = time.Now()
	}
	vital := &types.Vital{
		UserID:     rd.UserID,
		Type:       in.Type,
		Value:      in.Value,
		Unit:       in.Unit,
		Notes:      in.Notes,
		RecordedAt: in.RecordedAt,
	}
	if err := vs.vitalRepo.Create(ctx, nil, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

func (vs *vitalService) GetMine(ctx context.Context, vitalType string) ([]*types.Vital, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	return vs.vitalRepo.GetByUserID(ctx, nil, rd.UserID, vitalType)
}

func (vs *vitalService) Delete(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	vital, err := vs.vitalRepo.GetByID(ctx, nil, id)
	if err != nil || vital.UserID != rd.UserID {
		return fmt.Errorf("vital not found")
	}
	return vs.vitalRepo.Delete(ctx, nil, id)
}
