package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type MeService interface {
	GetMe(ctx context.Context, tx *gorm.DB) (types.User, error)
	UpdateMe(ctx context.Context, tx *gorm.DB, updates MeUpdateInput) (types.User, error)
}

type MeUpdateInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Region      *string `json:"region"`
}

type meService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewMeService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) MeService {
	serviceLog := log.With("service", "MeService")
	return &meService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func (ms *meService) GetMe(ctx context.Context, tx *gorm.DB) (types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		ms.log.Warn("Request data is not set in context")
		return types.User{}, fmt.Errorf("request data is not set in context")
	}
	if rd.UserID == uuid.Nil {
		ms.log.Warn("User ID not set in request data")
		return types.User{}, fmt.Errorf("user id not set in request data")
	}

	user, err := ms.userRepo.GetByID(ctx, tx, rd.UserID)
	if err != nil {
		return types.User{}, fmt.Errorf("error fetching user: %w", err)
	}
	return *user, nil
}

func (ms *meService) UpdateMe(ctx context.Context, tx *gorm.DB, updates MeUpdateInput) (types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return types.User{}, fmt.Errorf("not authenticated")
	}

	var theUser types.User
	run := func(tx *gorm.DB) error {
		user, err := ms.userRepo.GetByID(ctx, tx, rd.UserID)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}
		if updates.FirstName != nil {
			user.FirstName = *updates.FirstName
		}
		if updates.LastName != nil {
			user.LastName = *updates.LastName
		}
		if updates.PhoneNumber != nil {
			user.PhoneNumber = updates.PhoneNumber
		}
		if updates.Region != nil {
			user.Region = *updates.Region
		}
		if err := ms.userRepo.Update(ctx, tx, user); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		theUser = *user
		return nil
	}

	if tx == nil {
		if err := ms.db.WithContext(ctx).Transaction(run); err != nil {
			return types.User{}, err
		}
		return theUser, nil
	}
	if err := run(tx); err != nil {
		return types.User{}, err
	}
	return theUser, nil
}
