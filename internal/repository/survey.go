package repository

import (
	"context"
	"errors"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"gorm.io/gorm"
)

var ErrSurveyAlreadyAnswered = errors.New("survey already answered by this respondent")

type SurveyRepository struct {
	*baseRepository
}

func (sr SurveyRepository) withQuestions(db *gorm.DB) *gorm.DB {
	return db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// List returns surveys visible to the user type. An empty user type lists every survey.
func (sr SurveyRepository) List(ctx context.Context, tx *gorm.DB, userType constant.UserType, activeOnly bool) ([]model.Survey, error) {
	sr.logger.Debugf("List surveys for user type: %s, active only: %t", userType, activeOnly)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Survey{})
	if userType != "" {
		query = query.Where("target_audience IN ?", []string{constant.SurveyAudienceAll, string(userType)})
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var surveys []model.Survey
	if err := query.Order("created_at DESC").Find(&surveys).Error; err != nil {
		return nil, err
	}

	return surveys, nil
}

func (sr SurveyRepository) GetById(ctx context.Context, tx *gorm.DB, surveyId string) (*model.Survey, error) {
	sr.logger.Debugf("Get survey by id: %s", surveyId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var survey model.Survey
	if err := sr.withQuestions(db.WithContext(ctx).Model(&model.Survey{})).
		Where("id = ?", surveyId).
		First(&survey).Error; err != nil {
		return nil, err
	}

	return &survey, nil
}

// Create inserts the survey together with its questions and options.
func (sr SurveyRepository) Create(ctx context.Context, tx *gorm.DB, survey *model.Survey) error {
	sr.logger.Debugf("Create survey: %s with %d questions", survey.Title, len(survey.Questions))

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Create(survey).Error
}

func (sr SurveyRepository) Update(ctx context.Context, tx *gorm.DB, surveyId string, updates map[string]interface{}) error {
	sr.logger.Debugf("Update survey %s with: %v", surveyId, updates)
	return updateById(ctx, sr.getDB(tx), &model.Survey{}, surveyId, updates)
}

func (sr SurveyRepository) Delete(ctx context.Context, tx *gorm.DB, surveyId string) error {
	sr.logger.Debugf("Delete survey with id: %s", surveyId)
	return deleteById(ctx, sr.getDB(tx), &model.Survey{}, surveyId)
}

// CreateResponse stores the response and its answers. A second response of the same
// respondent returns ErrSurveyAlreadyAnswered.
func (sr SurveyRepository) CreateResponse(ctx context.Context, tx *gorm.DB, response *model.SurveyResponse) error {
	sr.logger.Debugf("Create response of %s to survey: %s", response.RespondentID, response.SurveyID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	err := db.WithContext(ctx).Create(response).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSurveyAlreadyAnswered
	}
	return err
}

func (sr SurveyRepository) GetAnswers(ctx context.Context, tx *gorm.DB, surveyId string) ([]model.SurveyAnswer, int64, error) {
	sr.logger.Debugf("Get answers of survey: %s", surveyId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var responses int64
	if err := db.WithContext(ctx).Model(&model.SurveyResponse{}).Where("survey_id = ?", surveyId).Count(&responses).Error; err != nil {
		return nil, 0, err
	}

	var answers []model.SurveyAnswer
	if err := db.WithContext(ctx).Model(&model.SurveyAnswer{}).
		Joins("JOIN survey_responses ON survey_responses.id = survey_answers.response_id").
		Where("survey_responses.survey_id = ?", surveyId).
		Find(&answers).Error; err != nil {
		return nil, 0, err
	}

	return answers, responses, nil
}
