package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SurveyController struct {
	*baseController
}

type surveyQuestionForm struct {
	Text         string   `json:"text" binding:"required,strNotEmpty"`
	QuestionType string   `json:"questionType" binding:"required,oneof=text single_choice multiple_choice rating"`
	Required     bool     `json:"required"`
	Options      []string `json:"options" binding:"omitempty,dive,strNotEmpty,max=200"`
}

type surveyForm struct {
	Title          *string              `json:"title" binding:"omitempty,strNotEmpty,max=200"`
	Description    *string              `json:"description"`
	TargetAudience *string              `json:"targetAudience" binding:"omitempty,oneof=all student professor alumni administrator"`
	IsActive       *bool                `json:"isActive"`
	StartsAt       *time.Time           `json:"startsAt"`
	EndsAt         *time.Time           `json:"endsAt"`
	Questions      []surveyQuestionForm `json:"questions" binding:"omitempty,dive"`
}

type surveyAnswerForm struct {
	QuestionID   string   `json:"questionId" binding:"required"`
	TextAnswer   string   `json:"textAnswer"`
	RatingAnswer *int     `json:"ratingAnswer"`
	OptionIDs    []string `json:"optionIds"`
}

var errSurveyEndsBeforeStart = errors.New("endsAt must be after startsAt")

func validSurveyWindow(startsAt, endsAt *time.Time) bool {
	return startsAt == nil || endsAt == nil || endsAt.After(*startsAt)
}

// toQuestions keeps the submitted order as the position. Choice questions need at
// least two options, the other types none.
func toQuestions(forms []surveyQuestionForm) ([]model.SurveyQuestion, error) {
	questions := make([]model.SurveyQuestion, 0, len(forms))
	for i, f := range forms {
		isChoice := f.QuestionType == constant.SurveyQuestionSingleChoice || f.QuestionType == constant.SurveyQuestionMultipleChoice
		if isChoice && len(f.Options) < 2 {
			return nil, fmt.Errorf("question %d needs at least two options", i+1)
		}
		if !isChoice && len(f.Options) > 0 {
			return nil, fmt.Errorf("question %d of type %s does not take options", i+1, f.QuestionType)
		}

		q := model.SurveyQuestion{
			Text:         strings.TrimSpace(f.Text),
			QuestionType: f.QuestionType,
			Required:     f.Required,
			Position:     i,
		}
		for j, text := range f.Options {
			q.Options = append(q.Options, model.SurveyOption{Text: strings.TrimSpace(text), Position: j})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// visibleTo reports whether a non-manager may see and answer the survey.
func visibleTo(survey *model.Survey, user *auth.JWTPayload) bool {
	return survey.IsActive && (survey.TargetAudience == constant.SurveyAudienceAll || survey.TargetAudience == string(user.UserType))
}

func (sc SurveyController) loadVisibleSurvey(ctx *gin.Context, user *auth.JWTPayload) (*model.Survey, bool) {
	survey, err := sc.app.Repository.Survey.GetById(ctx, nil, ctx.Param("surveyId"))
	if err == nil && !sc.can(user, constant.SurveyManage) && !visibleTo(survey, user) {
		err = gorm.ErrRecordNotFound
	}
	if err != nil {
		sc.respondRepoError(ctx, err, "Survey not found", "Failed to get survey")
		return nil, false
	}
	return survey, true
}

func (sc SurveyController) GetSurveys(ctx *gin.Context) {
	type Request struct {
		All bool `form:"all"`
	}
	var query Request

	user, ok := sc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	var surveys []model.Survey
	var err error
	if query.All && sc.can(user, constant.SurveyManage) {
		surveys, err = sc.app.Repository.Survey.List(ctx, nil, "", false)
	} else {
		surveys, err = sc.app.Repository.Survey.List(ctx, nil, user.UserType, true)
	}
	if err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get surveys", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"surveys": surveys,
	})
}

func (sc SurveyController) GetSurveyById(ctx *gin.Context) {
	user, ok := sc.mustAuthUser(ctx)
	if !ok {
		return
	}

	survey, ok := sc.loadVisibleSurvey(ctx, user)
	if !ok {
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"survey": survey,
		"open":   survey.Open(time.Now()),
	})
}

func (sc SurveyController) CreateSurvey(ctx *gin.Context) {
	var body surveyForm

	user, ok := sc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if body.Title == nil || len(body.Questions) == 0 {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("title and at least one question are required"), "title"), nil)
		return
	}
	if !validSurveyWindow(body.StartsAt, body.EndsAt) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errSurveyEndsBeforeStart, "endsAt"), nil)
		return
	}

	questions, err := toQuestions(body.Questions)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, "questions"), nil)
		return
	}

	survey := model.Survey{
		Title:          strings.TrimSpace(*body.Title),
		Description:    deref(body.Description, ""),
		TargetAudience: deref(body.TargetAudience, constant.SurveyAudienceAll),
		IsActive:       deref(body.IsActive, true),
		StartsAt:       body.StartsAt,
		EndsAt:         body.EndsAt,
		CreatedByID:    user.ID,
		Questions:      questions,
	}
	if err := sc.app.Repository.Survey.Create(ctx, nil, &survey); err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create survey", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"survey": survey,
	})
}

// UpdateSurvey changes the survey header only. Questions are fixed once created so
// collected answers keep matching them.
func (sc SurveyController) UpdateSurvey(ctx *gin.Context) {
	var body surveyForm

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if len(body.Questions) > 0 {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("questions cannot be changed after creation"), "questions"), nil)
		return
	}

	survey, err := sc.app.Repository.Survey.GetById(ctx, nil, ctx.Param("surveyId"))
	if err != nil {
		sc.respondRepoError(ctx, err, "Survey not found", "Failed to get survey")
		return
	}

	startsAt, endsAt := survey.StartsAt, survey.EndsAt
	if body.StartsAt != nil {
		startsAt = body.StartsAt
	}
	if body.EndsAt != nil {
		endsAt = body.EndsAt
	}
	if !validSurveyWindow(startsAt, endsAt) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errSurveyEndsBeforeStart, "endsAt"), nil)
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.TargetAudience != nil {
		updates["target_audience"] = *body.TargetAudience
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if body.StartsAt != nil {
		updates["starts_at"] = *body.StartsAt
	}
	if body.EndsAt != nil {
		updates["ends_at"] = *body.EndsAt
	}

	if len(updates) > 0 {
		if err := sc.app.Repository.Survey.Update(ctx, nil, survey.ID, updates); err != nil {
			sc.respondRepoError(ctx, err, "Survey not found", "Failed to update survey")
			return
		}
	}

	survey, err = sc.app.Repository.Survey.GetById(ctx, nil, survey.ID)
	if err != nil {
		sc.respondRepoError(ctx, err, "Survey not found", "Failed to get survey")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"survey": survey,
	})
}

func (sc SurveyController) DeleteSurvey(ctx *gin.Context) {
	if err := sc.app.Repository.Survey.Delete(ctx, nil, ctx.Param("surveyId")); err != nil {
		sc.respondRepoError(ctx, err, "Survey not found", "Failed to delete survey")
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (sc SurveyController) Respond(ctx *gin.Context) {
	type Request struct {
		Answers []surveyAnswerForm `json:"answers" binding:"required,dive"`
	}
	var body Request

	user, ok := sc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	survey, ok := sc.loadVisibleSurvey(ctx, user)
	if !ok {
		return
	}

	now := time.Now()
	if !survey.Open(now) {
		util.ResponseFailed(ctx, http.StatusConflict, "Survey is closed", util.GenerateErrorMessages(errors.New("survey is not accepting responses"), "survey"), nil)
		return
	}

	answers := make([]model.SurveyAnswer, 0, len(body.Answers))
	for _, a := range body.Answers {
		answers = append(answers, model.SurveyAnswer{
			QuestionID:   a.QuestionID,
			TextAnswer:   strings.TrimSpace(a.TextAnswer),
			RatingAnswer: a.RatingAnswer,
			OptionIDs:    model.OptionIDsToJSON(a.OptionIDs),
		})
	}
	if err := survey.ValidateAnswers(answers); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid answers", util.GenerateErrorMessages(err, "answers"), nil)
		return
	}

	response := model.SurveyResponse{
		SurveyID:     survey.ID,
		RespondentID: user.ID,
		SubmittedAt:  now,
		Answers:      answers,
	}
	if err := sc.app.Repository.Survey.CreateResponse(ctx, nil, &response); err != nil {
		if errors.Is(err, repository.ErrSurveyAlreadyAnswered) {
			util.ResponseFailed(ctx, http.StatusConflict, "Survey already answered", util.GenerateErrorMessages(err, "survey"), nil)
			return
		}
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to submit response", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"response": response,
	})
}

func (sc SurveyController) Results(ctx *gin.Context) {
	survey, err := sc.app.Repository.Survey.GetById(ctx, nil, ctx.Param("surveyId"))
	if err != nil {
		sc.respondRepoError(ctx, err, "Survey not found", "Failed to get survey")
		return
	}

	answers, responses, err := sc.app.Repository.Survey.GetAnswers(ctx, nil, survey.ID)
	if err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get survey results", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"results": survey.Results(answers, responses),
	})
}
