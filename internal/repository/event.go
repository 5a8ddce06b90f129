package repository

import (
	"context"
	"time"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"gorm.io/gorm"
)

type EventRepository struct {
	*baseRepository
}

type EventFilter struct {
	EventType string
	// Only events ending at or after From
	From *time.Time
}

func (er EventRepository) List(ctx context.Context, tx *gorm.DB, filter EventFilter, page, pageSize uint) ([]model.Event, int64, error) {
	er.logger.Debugf("List events with filter: %+v, page: %d, pageSize: %d", filter, page, pageSize)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Event{})
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.From != nil {
		query = query.Where("end_at >= ?", *filter.From)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.Event
	if err := query.Preload("Organizer").
		Order("start_at").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (er EventRepository) Upcoming(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]model.Event, error) {
	er.logger.Debugf("List %d upcoming events after: %s", limit, now)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var events []model.Event
	if err := db.WithContext(ctx).Model(&model.Event{}).
		Where("start_at >= ?", now).
		Order("start_at").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// Between returns events overlapping [from, to), used by the calendar feed.
func (er EventRepository) Between(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]model.Event, error) {
	er.logger.Debugf("List events between %s and %s", from, to)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var events []model.Event
	if err := db.WithContext(ctx).Model(&model.Event{}).
		Preload("Organizer").
		Where("start_at < ? AND end_at >= ?", to, from).
		Order("start_at").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (er EventRepository) GetById(ctx context.Context, tx *gorm.DB, eventId string) (*model.Event, error) {
	er.logger.Debugf("Get event by id: %s", eventId)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var event model.Event
	if err := db.WithContext(ctx).Model(&model.Event{}).Preload("Organizer").Where("id = ?", eventId).First(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (er EventRepository) Create(ctx context.Context, tx *gorm.DB, event *model.Event) error {
	er.logger.Debugf("Create event: %s", event.Title)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Event{}).Create(event).Error
}

func (er EventRepository) Update(ctx context.Context, tx *gorm.DB, eventId string, updates map[string]interface{}) error {
	er.logger.Debugf("Update event %s with: %v", eventId, updates)
	return updateById(ctx, er.getDB(tx), &model.Event{}, eventId, updates)
}

func (er EventRepository) Delete(ctx context.Context, tx *gorm.DB, eventId string) error {
	er.logger.Debugf("Delete event with id: %s", eventId)
	return deleteById(ctx, er.getDB(tx), &model.Event{}, eventId)
}
