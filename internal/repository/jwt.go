package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/auth"
	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"gorm.io/gorm"
)

var ErrTokenCannotRefresh = errors.New("token is valid but cannot be refreshed")

type JWTRepository struct {
	*baseRepository
	user *UserRepository
}

func ToJWTPayload(user model.User) auth.JWTPayload {
	return auth.JWTPayload{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		UserType:    user.UserType,
		ProfessorID: user.ExternalProfessorID(),
	}
}

func (jr JWTRepository) GenRefreshAndAccessToken(ctx context.Context, tx *gorm.DB, user model.User) (*string, *string, error) {
	jr.logger.Debugf("Generate refresh and access token for userId: %s", user.ID)

	refreshToken, accessToken, err := jr.jwtService.GenerateRefreshAndAccessToken(ToJWTPayload(user))
	if err != nil {
		return nil, nil, err
	}

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	expiresAt := time.Now().Add(auth.RefreshTokenTTL)
	if err := db.WithContext(ctx).Model(&model.Token{}).Create(&model.Token{
		RefreshToken: *refreshToken,
		AccessToken:  *accessToken,
		CanAccess:    true,
		CanRefresh:   true,
		ExpiresAt:    &expiresAt,
		UserID:       user.ID,
	}).Error; err != nil {
		return nil, nil, err
	}

	return refreshToken, accessToken, nil
}

func (jr JWTRepository) GetTokenByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*model.Token, error) {
	jr.logger.Debug("Get token by refresh token")

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var token model.Token
	if err := db.WithContext(ctx).Model(&model.Token{}).Where("refresh_token = ?", refreshToken).First(&token).Error; err != nil {
		return nil, err
	}

	return &token, nil
}

// RefreshToken rotates the pair stored under refreshToken. The user is re-read so
// changes to the account, such as a new professor id, reach the new tokens.
func (jr JWTRepository) RefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*string, *string, error) {
	jr.logger.Debug("Refresh token")

	db := jr.getDB(tx)
	var newRefreshToken, newAccessToken *string

	txErr := jr.withTx(db, func(tx2 *gorm.DB) error {
		token, err := jr.GetTokenByRefreshToken(ctx, tx2, refreshToken)
		if err != nil {
			return err
		}

		if !token.CanRefresh {
			return ErrTokenCannotRefresh
		}

		user, err := jr.user.GetById(ctx, tx2, token.UserID)
		if err != nil {
			return err
		}

		newRefreshToken, newAccessToken, err = jr.jwtService.GenerateRefreshAndAccessToken(ToJWTPayload(*user))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		expiresAt := time.Now().Add(auth.RefreshTokenTTL)
		return tx2.WithContext(ctx).Model(&model.Token{}).Where("id = ?", token.ID).Updates(map[string]interface{}{
			"refresh_token": *newRefreshToken,
			"access_token":  *newAccessToken,
			"can_access":    true,
			"can_refresh":   true,
			"expires_at":    expiresAt,
		}).Error
	})

	return newRefreshToken, newAccessToken, txErr
}

func (jr JWTRepository) DeleteToken(ctx context.Context, tx *gorm.DB, refreshToken string) error {
	jr.logger.Debug("Delete token using refresh token")

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("refresh_token = ?", refreshToken).Delete(&model.Token{}).Error
}
