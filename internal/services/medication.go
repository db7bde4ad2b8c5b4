package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type MedicationInput struct {
	Name               string
	Dosage             string
	Frequency          string
	TimeOfDay          []string
	StartDate          time.Time
	EndDate            *time.Time
	RefillReminderDate *time.Time
}

type MedicationService interface {
	Create(ctx context.Context, in MedicationInput) (*types.Medication, error)
	GetMine(ctx context.Context, activeOnly bool) ([]*types.Medication, error)
	Update(ctx context.Context, id uuid.UUID, in MedicationInput) (*types.Medication, error)
	// Deactivate soft-deletes: the row stays on record with is_active=false.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type medicationService struct {
	db             *gorm.DB
	log            *logger.Logger
	medicationRepo repos.MedicationRepo
}

func NewMedicationService(db *gorm.DB, log *logger.Logger, medicationRepo repos.MedicationRepo) MedicationService {
	serviceLog := log.With("service", "MedicationService")
	return &medicationService{db: db, log: serviceLog, medicationRepo: medicationRepo}
}

var validBuckets = map[string]bool{
	types.BucketMorning:   true,
	types.BucketAfternoon: true,
	types.BucketEvening:   true,
	types.BucketNight:     true,
}

func validateMedicationInput(in MedicationInput) error {
	if in.Name == "" {
		return fmt.Errorf("a medication name is required")
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("a start date is required")
	}
	for _, bucket := range in.TimeOfDay {
		if !validBuckets[bucket] {
			return fmt.Errorf("invalid time of day %q (must be morning, afternoon, evening or night)", bucket)
		}
	}
	return nil
}

func (ms *medicationService) Create(ctx context.Context, in MedicationInput) (*types.Medication, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if err := validateMedicationInput(in); err != nil {
		return nil, err
	}
	medication := &types.Medication{
		UserID:             rd.UserID,
		Name:               in.Name,
		Dosage:             in.Dosage,
		Frequency:          in.Frequency,
		TimeOfDay:          datatypes.NewJSONSlice(in.TimeOfDay),
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		RefillReminderDate: in.RefillReminderDate,
		IsActive:           true,
	}
	if err := ms.medicationRepo.Create(ctx, nil, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (ms *medicationService) GetMine(ctx context.Context, activeOnly bool) ([]*types.Medication, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	return ms.medicationRepo.GetByUserID(ctx, nil, rd.UserID, activeOnly)
}

func (ms *medicationService) Update(ctx context.Context, id uuid.UUID, in MedicationInput) (*types.Medication, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if err := validateMedicationInput(in); err != nil {
		return nil, err
	}
	medication, err := ms.medicationRepo.GetByID(ctx, nil, id)
	if err != nil || medication.UserID != rd.UserID {
		return nil, fmt.Errorf("medication not found")
	}
	medication.Name = in.Name
	medication.Dosage = in.Dosage
	medication.Frequency = in.Frequency
	medication.TimeOfDay = datatypes.NewJSONSlice(in.TimeOfDay)
	medication.StartDate = in.StartDate
	medication.EndDate = in.EndDate
	medication.RefillReminderDate = in.RefillReminderDate
	if err := ms.medicationRepo.Update(ctx, nil, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (ms *medicationService) Deactivate(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	medication, err := ms.medicationRepo.GetByID(ctx, nil, id)
	if err != nil || medication.UserID != rd.UserID {
		return fmt.Errorf("medication not found")
	}
	return ms.medicationRepo.Deactivate(ctx, nil, id)
}
