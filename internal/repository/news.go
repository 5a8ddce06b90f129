package repository

import (
	"context"
	"time"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"gorm.io/gorm"
)

type NewsRepository struct {
	*baseRepository
}

type NewsFilter struct {
	Category      string
	PublishedOnly bool
}

func (nr NewsRepository) List(ctx context.Context, tx *gorm.DB, filter NewsFilter, page, pageSize uint) ([]model.News, int64, error) {
	nr.logger.Debugf("List news with filter: %+v, page: %d, pageSize: %d", filter, page, pageSize)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.News{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var news []model.News
	if err := query.Preload("Author").
		Order("published_at DESC NULLS LAST, created_at DESC").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&news).Error; err != nil {
		return nil, 0, err
	}

	return news, total, nil
}

func (nr NewsRepository) GetById(ctx context.Context, tx *gorm.DB, newsId string) (*model.News, error) {
	nr.logger.Debugf("Get news by id: %s", newsId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var news model.News
	if err := db.WithContext(ctx).Model(&model.News{}).Preload("Author").Where("id = ?", newsId).First(&news).Error; err != nil {
		return nil, err
	}

	return &news, nil
}

func (nr NewsRepository) Create(ctx context.Context, tx *gorm.DB, news *model.News) error {
	nr.logger.Debugf("Create news: %s", news.Title)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if news.Published && news.PublishedAt == nil {
		now := time.Now()
		news.PublishedAt = &now
	}

	return db.WithContext(ctx).Model(&model.News{}).Create(news).Error
}

func (nr NewsRepository) Update(ctx context.Context, tx *gorm.DB, newsId string, updates map[string]interface{}) error {
	nr.logger.Debugf("Update news %s with: %v", newsId, updates)
	return updateById(ctx, nr.getDB(tx), &model.News{}, newsId, updates)
}

// SetPublished toggles visibility. Publishing stamps published_at, unpublishing clears it.
func (nr NewsRepository) SetPublished(ctx context.Context, tx *gorm.DB, newsId string, published bool) error {
	nr.logger.Debugf("Set news %s published: %t", newsId, published)

	var publishedAt *time.Time
	if published {
		now := time.Now()
		publishedAt = &now
	}

	return updateById(ctx, nr.getDB(tx), &model.News{}, newsId, map[string]interface{}{
		"published":    published,
		"published_at": publishedAt,
	})
}

func (nr NewsRepository) Delete(ctx context.Context, tx *gorm.DB, newsId string) error {
	nr.logger.Debugf("Delete news with id: %s", newsId)
	return deleteById(ctx, nr.getDB(tx), &model.News{}, newsId)
}

// updateById returns gorm.ErrRecordNotFound when no row has the id.
func updateById(ctx context.Context, db *gorm.DB, m interface{}, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(m).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteById(ctx context.Context, db *gorm.DB, m interface{}, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Where("id = ?", id).Delete(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
