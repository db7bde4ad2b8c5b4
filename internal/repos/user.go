package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	PhoneNumberExists(ctx context.Context, tx *gorm.DB, phoneNumber string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, user *types.User) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{
		db:  db,
		log: baseLog.With("repo", "UserRepo"),
	}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if tx == nil {
		tx = ur.db
	}
	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		ur.log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	if tx == nil {
		tx = ur.db
	}
	var user types.User
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		ur.log.Error("failed to get user by id", "error", err, "userID", id)
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
	if tx == nil {
		tx = ur.db
	}
	var users []*types.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := tx.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		ur.log.Error("failed to get users by ids", "error", err)
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	if tx == nil {
		tx = ur.db
	}
	var user types.User
	if err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		ur.log.Error("failed to get user by email", "error", err)
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	if tx == nil {
		tx = ur.db
	}
	var count int64
	if err := tx.WithContext(ctx).Model(&types.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		ur.log.Error("failed to count users by email", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) PhoneNumberExists(ctx context.Context, tx *gorm.DB, phoneNumber string) (bool, error) {
	if tx == nil {
		tx = ur.db
	}
	var count int64
	if err := tx.WithContext(ctx).Model(&types.User{}).Where("phone_number = ?", phoneNumber).Count(&count).Error; err != nil {
		ur.log.Error("failed to count users by phone number", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if tx == nil {
		tx = ur.db
	}
	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		ur.log.Error("failed to update user", "error", err, "userID", user.ID)
		return err
	}
	return nil
}
