package repository

import (
	"context"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultTemplateLockKey = "certificate_templates.is_default"

type TemplateRepository struct {
	*baseRepository
}

func (tr TemplateRepository) withFiles(db *gorm.DB) *gorm.DB {
	return db.Preload("LogoFile").Preload("SignatureFile").Preload("BackgroundFile")
}

func (tr TemplateRepository) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]model.CertificateTemplate, error) {
	tr.logger.Debugf("List certificate templates, active only: %t", activeOnly)

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.CertificateTemplate{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var templates []model.CertificateTemplate
	if err := query.Order("is_default DESC, name").Find(&templates).Error; err != nil {
		return nil, err
	}

	return templates, nil
}

func (tr TemplateRepository) GetById(ctx context.Context, tx *gorm.DB, templateId string) (*model.CertificateTemplate, error) {
	tr.logger.Debugf("Get certificate template by id: %s", templateId)

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var template model.CertificateTemplate
	if err := tr.withFiles(db.WithContext(ctx).Model(&model.CertificateTemplate{})).
		Where("id = ?", templateId).
		First(&template).Error; err != nil {
		return nil, err
	}

	return &template, nil
}

func (tr TemplateRepository) GetDefault(ctx context.Context, tx *gorm.DB) (*model.CertificateTemplate, error) {
	tr.logger.Debug("Get default certificate template")

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var template model.CertificateTemplate
	if err := tr.withFiles(db.WithContext(ctx).Model(&model.CertificateTemplate{})).
		Where("is_default = ? AND is_active = ?", true, true).
		First(&template).Error; err != nil {
		return nil, err
	}

	return &template, nil
}

// Create inserts the template. A template created as default takes the flag from the current one.
func (tr TemplateRepository) Create(ctx context.Context, tx *gorm.DB, template *model.CertificateTemplate) error {
	tr.logger.Debugf("Create certificate template: %s", template.Name)

	db := tr.getDB(tx)
	return tr.withTx(db, func(tx *gorm.DB) error {
		makeDefault := template.IsDefault
		template.IsDefault = false

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		if err := tx.WithContext(ctx).Model(&model.CertificateTemplate{}).Create(template).Error; err != nil {
			return err
		}

		if !makeDefault {
			return nil
		}

		if err := tr.SetDefault(ctx, tx, template.ID); err != nil {
			return err
		}
		template.IsDefault = true
		return nil
	})
}

// Update saves the changed columns. The default flag only changes through SetDefault.
func (tr TemplateRepository) Update(ctx context.Context, tx *gorm.DB, templateId string, updates map[string]interface{}) error {
	tr.logger.Debugf("Update certificate template %s with: %v", templateId, updates)

	delete(updates, "is_default")
	if len(updates) == 0 {
		return nil
	}

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.CertificateTemplate{}).Where("id = ?", templateId).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (tr TemplateRepository) Delete(ctx context.Context, tx *gorm.DB, templateId string) error {
	tr.logger.Debugf("Delete certificate template with id: %s", templateId)

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Where("id = ?", templateId).Delete(&model.CertificateTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SetDefault makes templateId the only default. Callers are serialized on a transaction
// scoped advisory lock, then the target and the current defaults are locked for update
// before the flag moves.
func (tr TemplateRepository) SetDefault(ctx context.Context, tx *gorm.DB, templateId string) error {
	tr.logger.Debugf("Set default certificate template to: %s", templateId)

	db := tr.getDB(tx)
	return tr.withTx(db, func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", defaultTemplateLockKey).Error; err != nil {
			return err
		}

		var target model.CertificateTemplate
		if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", templateId).
			First(&target).Error; err != nil {
			return err
		}

		var current []model.CertificateTemplate
		if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_default = ? AND id <> ?", true, templateId).
			Find(&current).Error; err != nil {
			return err
		}

		for _, c := range current {
			if err := tx.WithContext(ctx).Model(&model.CertificateTemplate{}).
				Where("id = ?", c.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		return tx.WithContext(ctx).Model(&model.CertificateTemplate{}).
			Where("id = ?", templateId).
			Updates(map[string]interface{}{"is_default": true, "is_active": true}).Error
	})
}
