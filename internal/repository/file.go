package repository

import (
	"context"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"gorm.io/gorm"
)

type FileRepository struct {
	*baseRepository
}

func (fr FileRepository) Create(ctx context.Context, tx *gorm.DB, file *model.File) (*model.File, error) {
	fr.logger.Debugf("Create file: %s", file.UniqueFileName)

	db := fr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.File{}).Create(file).Error; err != nil {
		return nil, err
	}

	return file, nil
}

func (fr FileRepository) GetById(ctx context.Context, tx *gorm.DB, fileId string) (*model.File, error) {
	fr.logger.Debugf("Get file by id: %s", fileId)

	db := fr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var file model.File
	if err := db.WithContext(ctx).Model(&model.File{}).Where("id = ?", fileId).First(&file).Error; err != nil {
		return nil, err
	}

	return &file, nil
}

func (fr FileRepository) Delete(ctx context.Context, tx *gorm.DB, fileId string) error {
	fr.logger.Debugf("Delete file with id: %s", fileId)

	db := fr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("id = ?", fileId).Delete(&model.File{}).Error
}
