package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/calendar"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

const (
	upcomingEventLimit = 10
	calendarLookBack   = 30 * 24 * time.Hour
	calendarLookAhead  = 365 * 24 * time.Hour
)

type EventController struct {
	*baseController
}

type eventForm struct {
	Title                *string    `json:"title" form:"title" binding:"omitempty,strNotEmpty,max=200"`
	Description          *string    `json:"description" form:"description"`
	EventType            *string    `json:"eventType" form:"eventType" binding:"omitempty,oneof=academic cultural sports conference workshop other"`
	Location             *string    `json:"location" form:"location" binding:"omitempty,max=200"`
	StartAt              *time.Time `json:"startAt" form:"startAt" time_format:"2006-01-02T15:04:05Z07:00"`
	EndAt                *time.Time `json:"endAt" form:"endAt" time_format:"2006-01-02T15:04:05Z07:00"`
	RegistrationRequired *bool      `json:"registrationRequired" form:"registrationRequired"`
	MaxParticipants      *int       `json:"maxParticipants" form:"maxParticipants" binding:"omitempty,gte=1"`
}

var errEventEndBeforeStart = errors.New("endAt must be after startAt")

func (ec EventController) GetEvents(ctx *gin.Context) {
	type Request struct {
		pageQuery
		EventType string     `form:"eventType" binding:"omitempty,oneof=academic cultural sports conference workshop other"`
		From      *time.Time `form:"from" time_format:"2006-01-02"`
	}
	var query Request

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page, pageSize := query.normalized()
	events, total, err := ec.app.Repository.Event.List(ctx, nil, repository.EventFilter{
		EventType: query.EventType,
		From:      query.From,
	}, page, pageSize)
	if err != nil {
		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get events", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponsePaginated(ctx, events, total, page, pageSize)
}

func (ec EventController) GetUpcoming(ctx *gin.Context) {
	events, err := ec.app.Repository.Event.Upcoming(ctx, nil, time.Now(), upcomingEventLimit)
	if err != nil {
		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get upcoming events", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"events": events,
	})
}

func (ec EventController) GetEventById(ctx *gin.Context) {
	event, err := ec.app.Repository.Event.GetById(ctx, nil, ctx.Param("eventId"))
	if err != nil {
		ec.respondRepoError(ctx, err, "Event not found", "Failed to get event")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"event": event,
	})
}

// Calendar serves the events from a month ago up to a year ahead as text/calendar.
func (ec EventController) Calendar(ctx *gin.Context) {
	now := time.Now()
	events, err := ec.app.Repository.Event.Between(ctx, nil, now.Add(-calendarLookBack), now.Add(calendarLookAhead))
	if err != nil {
		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get events", util.GenerateErrorMessages(err), nil)
		return
	}

	feed := calendar.EventFeed(util.GetAppName()+" events", ctx.Request.Host, events, now)
	ctx.Header("Content-Disposition", `inline; filename="events.ics"`)
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (ec EventController) CreateEvent(ctx *gin.Context) {
	var body eventForm

	user, ok := ec.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if body.Title == nil || body.StartAt == nil || body.EndAt == nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("title, startAt and endAt are required"), "title"), nil)
		return
	}
	if !body.EndAt.After(*body.StartAt) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errEventEndBeforeStart, "endAt"), nil)
		return
	}

	event := model.Event{
		Title:                strings.TrimSpace(*body.Title),
		Description:          deref(body.Description, ""),
		EventType:            deref(body.EventType, constant.EventTypeOther),
		Location:             strings.TrimSpace(deref(body.Location, "")),
		StartAt:              *body.StartAt,
		EndAt:                *body.EndAt,
		RegistrationRequired: deref(body.RegistrationRequired, false),
		MaxParticipants:      body.MaxParticipants,
		OrganizerID:          user.ID,
	}
	if err := ec.app.Repository.Event.Create(ctx, nil, &event); err != nil {
		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create event", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"event": event,
	})
}

// loadOwnEvent writes the error response itself. Administrators may touch any event,
// everyone else only the events they organize.
func (ec EventController) loadOwnEvent(ctx *gin.Context, user *auth.JWTPayload) (*model.Event, bool) {
	event, err := ec.app.Repository.Event.GetById(ctx, nil, ctx.Param("eventId"))
	if err != nil {
		ec.respondRepoError(ctx, err, "Event not found", "Failed to get event")
		return nil, false
	}
	if !user.IsAdmin() && event.OrganizerID != user.ID {
		forbidden(ctx, "only the organizer can change this event")
		return nil, false
	}
	return event, true
}

func (ec EventController) UpdateEvent(ctx *gin.Context) {
	var body eventForm

	user, ok := ec.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	event, ok := ec.loadOwnEvent(ctx, user)
	if !ok {
		return
	}

	startAt, endAt := deref(body.StartAt, event.StartAt), deref(body.EndAt, event.EndAt)
	if !endAt.After(startAt) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errEventEndBeforeStart, "endAt"), nil)
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.EventType != nil {
		updates["event_type"] = *body.EventType
	}
	if body.Location != nil {
		updates["location"] = strings.TrimSpace(*body.Location)
	}
	if body.StartAt != nil {
		updates["start_at"] = startAt
	}
	if body.EndAt != nil {
		updates["end_at"] = endAt
	}
	if body.RegistrationRequired != nil {
		updates["registration_required"] = *body.RegistrationRequired
	}
	if body.MaxParticipants != nil {
		updates["max_participants"] = *body.MaxParticipants
	}

	if len(updates) > 0 {
		if err := ec.app.Repository.Event.Update(ctx, nil, event.ID, updates); err != nil {
			ec.respondRepoError(ctx, err, "Event not found", "Failed to update event")
			return
		}
	}

	event, err := ec.app.Repository.Event.GetById(ctx, nil, event.ID)
	if err != nil {
		ec.respondRepoError(ctx, err, "Event not found", "Failed to get event")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"event": event,
	})
}

func (ec EventController) DeleteEvent(ctx *gin.Context) {
	user, ok := ec.mustAuthUser(ctx)
	if !ok {
		return
	}

	event, ok := ec.loadOwnEvent(ctx, user)
	if !ok {
		return
	}

	if err := ec.app.Repository.Event.Delete(ctx, nil, event.ID); err != nil {
		ec.respondRepoError(ctx, err, "Event not found", "Failed to delete event")
		return
	}

	util.ResponseSuccess(ctx, nil)
}
