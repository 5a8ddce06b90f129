package repository

import (
	"context"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	*baseRepository
}

type ScheduleFilter struct {
	ProfessorUserID string
	Semester        string
	DayOfWeek       string
}

func (sr ScheduleRepository) List(ctx context.Context, tx *gorm.DB, filter ScheduleFilter) ([]model.Schedule, error) {
	sr.logger.Debugf("List schedules with filter: %+v", filter)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Schedule{})
	if filter.ProfessorUserID != "" {
		query = query.Where("professor_user_id = ?", filter.ProfessorUserID)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.DayOfWeek != "" {
		query = query.Where("day_of_week = ?", filter.DayOfWeek)
	}

	var schedules []model.Schedule
	if err := query.Preload("Professor").Order("semester DESC, day_of_week, start_time").Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (sr ScheduleRepository) GetById(ctx context.Context, tx *gorm.DB, scheduleId string) (*model.Schedule, error) {
	sr.logger.Debugf("Get schedule by id: %s", scheduleId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var schedule model.Schedule
	if err := db.WithContext(ctx).Model(&model.Schedule{}).Preload("Professor").Where("id = ?", scheduleId).First(&schedule).Error; err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (sr ScheduleRepository) Create(ctx context.Context, tx *gorm.DB, schedule *model.Schedule) error {
	sr.logger.Debugf("Create schedule for professor user: %s", schedule.ProfessorUserID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Schedule{}).Create(schedule).Error
}

func (sr ScheduleRepository) Update(ctx context.Context, tx *gorm.DB, scheduleId string, updates map[string]interface{}) error {
	sr.logger.Debugf("Update schedule %s with: %v", scheduleId, updates)
	return updateById(ctx, sr.getDB(tx), &model.Schedule{}, scheduleId, updates)
}

func (sr ScheduleRepository) Delete(ctx context.Context, tx *gorm.DB, scheduleId string) error {
	sr.logger.Debugf("Delete schedule with id: %s", scheduleId)
	return deleteById(ctx, sr.getDB(tx), &model.Schedule{}, scheduleId)
}
