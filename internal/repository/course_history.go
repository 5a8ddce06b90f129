package repository

import (
	"context"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const courseHistoryUpsertBatchSize = 200

type CourseHistoryRepository struct {
	*baseRepository
}

type CourseHistoryFilter struct {
	ProfessorID string
	// Case-insensitive substring of the professor name
	Professor string
	Term      string
}

func (chr CourseHistoryRepository) List(ctx context.Context, tx *gorm.DB, filter CourseHistoryFilter, page, pageSize uint) ([]model.CourseHistory, int64, error) {
	chr.logger.Debugf("List course histories with filter: %+v, page: %d, pageSize: %d", filter, page, pageSize)

	db := chr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.CourseHistory{})
	if filter.ProfessorID != "" {
		query = query.Where("professor_id = ?", filter.ProfessorID)
	}
	if filter.Professor != "" {
		query = query.Where("professor_name ILIKE ?", "%"+filter.Professor+"%")
	}
	if filter.Term != "" {
		query = query.Where("term = ?", filter.Term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var histories []model.CourseHistory
	if err := query.Order("term DESC, subject, reference_number").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&histories).Error; err != nil {
		return nil, 0, err
	}

	return histories, total, nil
}

// GetByProfessorID returns every section the professor taught, oldest term first.
func (chr CourseHistoryRepository) GetByProfessorID(ctx context.Context, tx *gorm.DB, professorId string) ([]model.CourseHistory, error) {
	chr.logger.Debugf("Get course histories by professor id: %s", professorId)

	db := chr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var histories []model.CourseHistory
	if err := db.WithContext(ctx).Model(&model.CourseHistory{}).
		Where("professor_id = ?", professorId).
		Order("term, subject, reference_number").
		Find(&histories).Error; err != nil {
		return nil, err
	}

	return histories, nil
}

func (chr CourseHistoryRepository) ListProfessors(ctx context.Context, tx *gorm.DB) ([]model.ProfessorSummary, error) {
	chr.logger.Debug("List distinct professors of course histories")

	db := chr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var summaries []model.ProfessorSummary
	if err := db.WithContext(ctx).Model(&model.CourseHistory{}).
		Select("professor_id, MAX(professor_name) AS professor_name, COUNT(*) AS course_count, MAX(term) AS latest_term, COALESCE(SUM(contact_hours), 0) AS total_hours").
		Group("professor_id").
		Order("professor_name").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}

	return summaries, nil
}

// Upsert inserts the rows or overwrites the section with the same professor, reference number and term.
func (chr CourseHistoryRepository) Upsert(ctx context.Context, tx *gorm.DB, histories []model.CourseHistory) (int64, error) {
	chr.logger.Debugf("Upsert %d course histories", len(histories))

	if len(histories) == 0 {
		return 0, nil
	}

	db := chr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION*4)
	defer cancel()

	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "professor_id"}, {Name: "reference_number"}, {Name: "term"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"professor_name", "subject", "subject_code", "start_date", "end_date", "contact_hours", "cross_list_code",
			"level", "campus", "section", "credits", "weekly_hours", "days", "schedule", "classroom", "updated_at",
		}),
	}).CreateInBatches(histories, courseHistoryUpsertBatchSize)

	return result.RowsAffected, result.Error
}
