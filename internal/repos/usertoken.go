package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type UserTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) error
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error)
	GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error)
	Update(ctx context.Context, tx *gorm.DB, token *types.UserToken) error
	DeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{
		db:  db,
		log: baseLog.With("repo", "UserTokenRepo"),
	}
}

func (utr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) error {
	if tx == nil {
		tx = utr.db
	}
	if err := tx.WithContext(ctx).Create(token).Error; err != nil {
		utr.log.Error("failed to create user token", "error", err)
		return err
	}
	return nil
}

func (utr *userTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
	if tx == nil {
		tx = utr.db
	}
	var token types.UserToken
	if err := tx.WithContext(ctx).Where("refresh_token = ?", refreshToken).First(&token).Error; err != nil {
		utr.log.Error("failed to get user token by refresh token", "error", err)
		return nil, err
	}
	return &token, nil
}

func (utr *userTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error) {
	if tx == nil {
		tx = utr.db
	}
	var token types.UserToken
	if err := tx.WithContext(ctx).Where("access_token = ?", accessToken).First(&token).Error; err != nil {
		utr.log.Error("failed to get user token by access token", "error", err)
		return nil, err
	}
	return &token, nil
}

func (utr *userTokenRepo) Update(ctx context.Context, tx *gorm.DB, token *types.UserToken) error {
	if tx == nil {
		tx = utr.db
	}
	if err := tx.WithContext(ctx).Save(token).Error; err != nil {
		utr.log.Error("failed to update user token", "error", err)
		return err
	}
	return nil
}

func (utr *userTokenRepo) DeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error {
	if tx == nil {
		tx = utr.db
	}
	if err := tx.WithContext(ctx).Where("access_token = ?", accessToken).Delete(&types.UserToken{}).Error; err != nil {
		utr.log.Error("failed to delete user token by access token", "error", err)
		return err
	}
	return nil
}

func (utr *userTokenRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if tx == nil {
		tx = utr.db
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&types.UserToken{}).Error; err != nil {
		utr.log.Error("failed to delete user tokens by user id", "error", err, "userID", userID)
		return err
	}
	return nil
}
