package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

const supportReferenceLength = 8

type SupportRequestController struct {
	*baseController
}

// loadVisibleRequest hides requests of other users behind a 404.
func (src SupportRequestController) loadVisibleRequest(ctx *gin.Context, user *auth.JWTPayload) (*model.SupportRequest, bool) {
	request, err := src.app.Repository.SupportRequest.GetById(ctx, nil, ctx.Param("requestId"))
	if err == nil && request.RequesterID != user.ID && !src.can(user, constant.SupportRequestManage) {
		util.ResponseFailed(ctx, http.StatusNotFound, "Support request not found", util.GenerateErrorMessages(errors.New("support request not found"), "notFound"), nil)
		return nil, false
	}
	if err != nil {
		src.respondRepoError(ctx, err, "Support request not found", "Failed to get support request")
		return nil, false
	}
	return request, true
}

func (src SupportRequestController) respondRequest(ctx *gin.Context, requestId string) {
	request, err := src.app.Repository.SupportRequest.GetById(ctx, nil, requestId)
	if err != nil {
		src.respondRepoError(ctx, err, "Support request not found", "Failed to get support request")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"supportRequest": request,
	})
}

func (src SupportRequestController) GetSupportRequests(ctx *gin.Context) {
	type Request struct {
		pageQuery
		Status string `form:"status" binding:"omitempty,oneof=pending in_progress resolved closed"`
	}
	var query Request

	user, ok := src.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	filter := repository.SupportRequestFilter{Status: constant.SupportRequestStatus(query.Status)}
	if !src.can(user, constant.SupportRequestManage) {
		filter.RequesterID = user.ID
	}

	page, pageSize := query.normalized()
	requests, total, err := src.app.Repository.SupportRequest.List(ctx, nil, filter, page, pageSize)
	if err != nil {
		src.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get support requests", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponsePaginated(ctx, requests, total, page, pageSize)
}

func (src SupportRequestController) GetSupportRequestById(ctx *gin.Context) {
	user, ok := src.mustAuthUser(ctx)
	if !ok {
		return
	}

	request, ok := src.loadVisibleRequest(ctx, user)
	if !ok {
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"supportRequest": request,
	})
}

func (src SupportRequestController) CreateSupportRequest(ctx *gin.Context) {
	type Request struct {
		Subject     string `json:"subject" form:"subject" binding:"required,strNotEmpty,max=200"`
		Description string `json:"description" form:"description" binding:"required,strNotEmpty"`
		Category    string `json:"category" form:"category" binding:"omitempty,oneof=technical academic administrative facilities other"`
		Priority    string `json:"priority" form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	}
	var body Request

	user, ok := src.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	code, err := util.GenerateReferenceCode("SR", supportReferenceLength)
	if err != nil {
		src.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create support request", util.GenerateErrorMessages(err), nil)
		return
	}

	request := model.SupportRequest{
		ReferenceCode: code,
		Subject:       strings.TrimSpace(body.Subject),
		Description:   body.Description,
		Category:      body.Category,
		Priority:      body.Priority,
		RequesterID:   user.ID,
	}
	if request.Category == "" {
		request.Category = "other"
	}
	if request.Priority == "" {
		request.Priority = "medium"
	}

	if err := src.app.Repository.SupportRequest.Create(ctx, nil, &request); err != nil {
		src.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create support request", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"supportRequest": request,
	})
}

func (src SupportRequestController) Assign(ctx *gin.Context) {
	type Request struct {
		AdminID string `json:"adminId" form:"adminId" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	assignee, err := src.app.Repository.User.GetById(ctx, nil, body.AdminID)
	if err != nil {
		src.respondRepoError(ctx, err, "Administrator not found", "Failed to get administrator")
		return
	}
	if assignee.UserType != constant.UserTypeAdministrator {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("support requests can only be assigned to administrators"), "adminId"), nil)
		return
	}

	requestId := ctx.Param("requestId")
	if err := src.app.Repository.SupportRequest.Assign(ctx, nil, requestId, assignee.ID); err != nil {
		src.respondRepoError(ctx, err, "Support request not found", "Failed to assign support request")
		return
	}

	src.respondRequest(ctx, requestId)
}

func (src SupportRequestController) Resolve(ctx *gin.Context) {
	type Request struct {
		Resolution string `json:"resolution" form:"resolution"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	requestId := ctx.Param("requestId")
	if err := src.app.Repository.SupportRequest.Resolve(ctx, nil, requestId, strings.TrimSpace(body.Resolution), time.Now()); err != nil {
		src.respondRepoError(ctx, err, "Support request not found", "Failed to resolve support request")
		return
	}

	src.respondRequest(ctx, requestId)
}

// Close is open to the requester and administrators.
func (src SupportRequestController) Close(ctx *gin.Context) {
	user, ok := src.mustAuthUser(ctx)
	if !ok {
		return
	}

	request, ok := src.loadVisibleRequest(ctx, user)
	if !ok {
		return
	}

	if err := src.app.Repository.SupportRequest.Close(ctx, nil, request.ID); err != nil {
		src.respondRepoError(ctx, err, "Support request not found", "Failed to close support request")
		return
	}

	src.respondRequest(ctx, request.ID)
}
