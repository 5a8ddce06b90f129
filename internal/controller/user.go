package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	*baseController
}

func (uc UserController) Me(ctx *gin.Context) {
	authUser, ok := uc.mustAuthUser(ctx)
	if !ok {
		return
	}

	user, err := uc.app.Repository.User.GetById(ctx, nil, authUser.ID)
	if err != nil {
		uc.respondRepoError(ctx, err, "User not found", "Failed to get user")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}

func (uc UserController) GetUserById(ctx *gin.Context) {
	userId := ctx.Param("userId")
	user, err := uc.app.Repository.User.GetById(ctx, nil, userId)
	if err != nil {
		uc.respondRepoError(ctx, err, "User not found", "Failed to get user")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}

func (uc UserController) GetUsers(ctx *gin.Context) {
	type Request struct {
		pageQuery
		UserType constant.UserType `form:"userType" binding:"omitempty,oneof=administrator professor alumni student"`
	}
	var query Request

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page, pageSize := query.normalized()
	users, total, err := uc.app.Repository.User.List(ctx, nil, query.UserType, page, pageSize)
	if err != nil {
		uc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get users", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponsePaginated(ctx, users, total, page, pageSize)
}

// SetProfessorID links an account to the professor id used by the course history.
func (uc UserController) SetProfessorID(ctx *gin.Context) {
	type Request struct {
		// Empty unlinks the account
		ProfessorID string `json:"professorId" form:"professorId" binding:"omitempty,max=9,numeric"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := uc.app.Repository.User.SetProfessorID(ctx, nil, ctx.Param("userId"), strings.TrimSpace(body.ProfessorID))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.ResponseFailed(ctx, http.StatusConflict, "Professor id already linked", util.GenerateErrorMessages(errors.New("another account is already linked to this professor id"), "professorId"), nil)
			return
		}
		uc.respondRepoError(ctx, err, "User not found", "Failed to link professor id")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}
