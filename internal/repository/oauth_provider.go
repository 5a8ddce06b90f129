package repository

import (
	"context"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"gorm.io/gorm"
)

type OAuthProviderRepository struct {
	*baseRepository
}

// Create new oauth or update existing oauth provider accessToken by provider user id
func (opr OAuthProviderRepository) CreateOrUpdateByProviderUserId(ctx context.Context, tx *gorm.DB, newOAuthProvider model.OAuthProvider) error {
	opr.logger.Debugf("Create or update %s provider for user: %s", newOAuthProvider.ProviderType, newOAuthProvider.UserID)

	db := opr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	// Assign updates the matched row or fills the one being created
	return db.WithContext(ctx).Model(&model.OAuthProvider{}).
		Where("provider_user_id = ?", newOAuthProvider.ProviderUserId).
		Assign(model.OAuthProvider{
			ProviderType:   newOAuthProvider.ProviderType,
			ProviderUserId: newOAuthProvider.ProviderUserId,
			ProviderEmail:  newOAuthProvider.ProviderEmail,
			AccessToken:    newOAuthProvider.AccessToken,
			RefreshToken:   newOAuthProvider.RefreshToken,
			UserID:         newOAuthProvider.UserID,
		}).
		FirstOrCreate(&newOAuthProvider).Error
}
