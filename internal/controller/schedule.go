package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	*baseController
}

type scheduleForm struct {
	SubjectName     *string `json:"subjectName" form:"subjectName" binding:"omitempty,strNotEmpty,max=200"`
	SubjectCode     *string `json:"subjectCode" form:"subjectCode" binding:"omitempty,max=20"`
	DayOfWeek       *string `json:"dayOfWeek" form:"dayOfWeek" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime       *string `json:"startTime" form:"startTime" binding:"omitempty,clockTime"`
	EndTime         *string `json:"endTime" form:"endTime" binding:"omitempty,clockTime"`
	Classroom       *string `json:"classroom" form:"classroom" binding:"omitempty,max=50"`
	Semester        *string `json:"semester" form:"semester" binding:"omitempty,termCode"`
	ProfessorUserID *string `json:"professorUserId" form:"professorUserId" binding:"omitempty,strNotEmpty"`
}

var errScheduleEndBeforeStart = errors.New("endTime must be after startTime")

// clockRange normalizes both times to HH:MM and checks their order.
func clockRange(start, end string) (string, string, error) {
	s, err := util.ParseClockTime(start)
	if err != nil {
		return "", "", err
	}
	e, err := util.ParseClockTime(end)
	if err != nil {
		return "", "", err
	}
	if !e.After(s) {
		return "", "", errScheduleEndBeforeStart
	}
	return s.Format("15:04"), e.Format("15:04"), nil
}

func (sc ScheduleController) GetSchedules(ctx *gin.Context) {
	type Request struct {
		Semester  string `form:"semester" binding:"omitempty,termCode"`
		DayOfWeek string `form:"dayOfWeek" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
		Professor string `form:"professorUserId"`
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

	filter := repository.ScheduleFilter{
		ProfessorUserID: query.Professor,
		Semester:        query.Semester,
		DayOfWeek:       query.DayOfWeek,
	}
	if !sc.can(user, constant.ScheduleReadAny) {
		filter.ProfessorUserID = user.ID
	}

	schedules, err := sc.app.Repository.Schedule.List(ctx, nil, filter)
	if err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get schedules", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"schedules": schedules,
	})
}

func (sc ScheduleController) GetScheduleById(ctx *gin.Context) {
	user, ok := sc.mustAuthUser(ctx)
	if !ok {
		return
	}

	schedule, err := sc.app.Repository.Schedule.GetById(ctx, nil, ctx.Param("scheduleId"))
	if err != nil {
		sc.respondRepoError(ctx, err, "Schedule not found", "Failed to get schedule")
		return
	}
	if !sc.can(user, constant.ScheduleReadAny) && schedule.ProfessorUserID != user.ID {
		forbidden(ctx, "you can only view your own schedule")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"schedule": schedule,
	})
}

func (sc ScheduleController) CreateSchedule(ctx *gin.Context) {
	var body scheduleForm

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if body.SubjectName == nil || body.DayOfWeek == nil || body.StartTime == nil || body.EndTime == nil || body.Semester == nil || body.ProfessorUserID == nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("subjectName, dayOfWeek, startTime, endTime, semester and professorUserId are required"), "subjectName"), nil)
		return
	}

	start, end, err := clockRange(*body.StartTime, *body.EndTime)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, "endTime"), nil)
		return
	}

	professor, err := sc.app.Repository.User.GetById(ctx, nil, *body.ProfessorUserID)
	if err != nil {
		sc.respondRepoError(ctx, err, "Professor not found", "Failed to get professor")
		return
	}
	if professor.UserType != constant.UserTypeProfessor {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("user is not a professor"), "professorUserId"), nil)
		return
	}

	schedule := model.Schedule{
		SubjectName:     strings.TrimSpace(*body.SubjectName),
		SubjectCode:     strings.TrimSpace(deref(body.SubjectCode, "")),
		DayOfWeek:       *body.DayOfWeek,
		StartTime:       start,
		EndTime:         end,
		Classroom:       strings.TrimSpace(deref(body.Classroom, "")),
		Semester:        *body.Semester,
		ProfessorUserID: professor.ID,
	}
	if err := sc.app.Repository.Schedule.Create(ctx, nil, &schedule); err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create schedule", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"schedule": schedule,
	})
}

func (sc ScheduleController) UpdateSchedule(ctx *gin.Context) {
	var body scheduleForm

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	schedule, err := sc.app.Repository.Schedule.GetById(ctx, nil, ctx.Param("scheduleId"))
	if err != nil {
		sc.respondRepoError(ctx, err, "Schedule not found", "Failed to get schedule")
		return
	}

	updates := map[string]interface{}{}
	if body.StartTime != nil || body.EndTime != nil {
		start, end, err := clockRange(deref(body.StartTime, schedule.StartTime), deref(body.EndTime, schedule.EndTime))
		if err != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, "endTime"), nil)
			return
		}
		updates["start_time"] = start
		updates["end_time"] = end
	}
	if body.SubjectName != nil {
		updates["subject_name"] = strings.TrimSpace(*body.SubjectName)
	}
	if body.SubjectCode != nil {
		updates["subject_code"] = strings.TrimSpace(*body.SubjectCode)
	}
	if body.DayOfWeek != nil {
		updates["day_of_week"] = *body.DayOfWeek
	}
	if body.Classroom != nil {
		updates["classroom"] = strings.TrimSpace(*body.Classroom)
	}
	if body.Semester != nil {
		updates["semester"] = *body.Semester
	}
	if body.ProfessorUserID != nil {
		updates["professor_user_id"] = *body.ProfessorUserID
	}

	if len(updates) > 0 {
		if err := sc.app.Repository.Schedule.Update(ctx, nil, schedule.ID, updates); err != nil {
			sc.respondRepoError(ctx, err, "Schedule not found", "Failed to update schedule")
			return
		}
	}

	schedule, err = sc.app.Repository.Schedule.GetById(ctx, nil, schedule.ID)
	if err != nil {
		sc.respondRepoError(ctx, err, "Schedule not found", "Failed to get schedule")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"schedule": schedule,
	})
}

func (sc ScheduleController) DeleteSchedule(ctx *gin.Context) {
	if err := sc.app.Repository.Schedule.Delete(ctx, nil, ctx.Param("scheduleId")); err != nil {
		sc.respondRepoError(ctx, err, "Schedule not found", "Failed to delete schedule")
		return
	}

	util.ResponseSuccess(ctx, nil)
}
