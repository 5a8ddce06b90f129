package repository

import (
	"context"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	*baseRepository
}

type CertificateFilter struct {
	ProfessorID string
}

func (cr CertificateRepository) Create(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error {
	cr.logger.Debugf("Create generated certificate for professor: %s", cert.ProfessorID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.GeneratedCertificate{}).Create(cert).Error
}

func (cr CertificateRepository) GetById(ctx context.Context, tx *gorm.DB, certificateId string) (*model.GeneratedCertificate, error) {
	cr.logger.Debugf("Get generated certificate by id: %s", certificateId)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var cert model.GeneratedCertificate
	if err := db.WithContext(ctx).Model(&model.GeneratedCertificate{}).
		Preload("File").
		Where("id = ?", certificateId).
		First(&cert).Error; err != nil {
		return nil, err
	}

	return &cert, nil
}

func (cr CertificateRepository) GetByVerificationCode(ctx context.Context, tx *gorm.DB, code string) (*model.GeneratedCertificate, error) {
	cr.logger.Debugf("Get generated certificate by verification code: %s", code)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var cert model.GeneratedCertificate
	if err := db.WithContext(ctx).Model(&model.GeneratedCertificate{}).
		Preload("File").
		Preload("Template").
		Where("verification_code = ?", code).
		First(&cert).Error; err != nil {
		return nil, err
	}

	return &cert, nil
}

func (cr CertificateRepository) List(ctx context.Context, tx *gorm.DB, filter CertificateFilter, page, pageSize uint) ([]model.GeneratedCertificate, int64, error) {
	cr.logger.Debugf("List generated certificates with filter: %+v, page: %d, pageSize: %d", filter, page, pageSize)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.GeneratedCertificate{})
	if filter.ProfessorID != "" {
		query = query.Where("professor_id = ?", filter.ProfessorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var certs []model.GeneratedCertificate
	if err := query.Preload("File").
		Order("generated_at DESC").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&certs).Error; err != nil {
		return nil, 0, err
	}

	return certs, total, nil
}

// ReplaceDocument points the record at a newly rendered file and code. The record id and
// professor id stay the same; the professor's name and linked account are refreshed.
func (cr CertificateRepository) ReplaceDocument(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error {
	cr.logger.Debugf("Replace document of generated certificate: %s", cert.ID)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.GeneratedCertificate{}).Where("id = ?", cert.ID).Updates(map[string]interface{}{
		"verification_code": cert.VerificationCode,
		"professor_name":    cert.ProfessorName,
		"professor_user_id": cert.ProfessorUserID,
		"template_id":       cert.TemplateID,
		"page_count":        cert.PageCount,
		"generated_at":      cert.GeneratedAt,
		"metadata":          cert.Metadata,
		"file_id":           cert.FileID,
		"generated_by_id":   cert.GeneratedByID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
