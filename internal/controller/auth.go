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
	"gorm.io/gorm"
)

type AuthController struct {
	*baseController
}

const (
	ErrInvalidCredentials = "invalid email or password"
	ErrEmailAlreadyTaken  = "email is already registered"
)

func (ac AuthController) Register(ctx *gin.Context) {
	type Request struct {
		Email     string `json:"email" form:"email" binding:"required,email,max=255"`
		Password  string `json:"password" form:"password" binding:"required,min=8,max=72"`
		FirstName string `json:"firstName" form:"firstName" binding:"required,strNotEmpty,max=30"`
		LastName  string `json:"lastName" form:"lastName" binding:"required,strNotEmpty,max=30"`
		// Professor and administrator accounts are promoted by an administrator
		UserType constant.UserType `json:"userType" form:"userType" binding:"omitempty,oneof=student alumni"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	hash, err := util.HashPassword(body.Password)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to register", util.GenerateErrorMessages(err), nil)
		return
	}

	user := model.User{
		Email:        strings.TrimSpace(body.Email),
		FirstName:    strings.TrimSpace(body.FirstName),
		LastName:     strings.TrimSpace(body.LastName),
		PasswordHash: hash,
		UserType:     body.UserType,
	}
	if err := ac.app.Repository.User.CheckDupAndCreate(ctx, nil, &user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			util.ResponseFailed(ctx, http.StatusConflict, "Email already registered", util.GenerateErrorMessages(errors.New(ErrEmailAlreadyTaken), "email"), nil)
			return
		}
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to register", util.GenerateErrorMessages(err), nil)
		return
	}

	ac.respondTokens(ctx, http.StatusCreated, user)
}

func (ac AuthController) Login(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" form:"email" binding:"required,email"`
		Password string `json:"password" form:"password" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := ac.app.Repository.User.GetByEmail(ctx, nil, strings.TrimSpace(body.Email))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to login", util.GenerateErrorMessages(err), nil)
		return
	}

	// OAuth accounts have no password hash and can only sign in through their provider
	if user == nil || user.PasswordHash == "" || !util.CheckPassword(user.PasswordHash, body.Password) {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid credentials", util.GenerateErrorMessages(errors.New(ErrInvalidCredentials), "credentials"), nil)
		return
	}

	ac.respondTokens(ctx, http.StatusOK, *user)
}

func (ac AuthController) respondTokens(ctx *gin.Context, status int, user model.User) {
	refreshToken, accessToken, err := ac.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, user)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate tokens", util.GenerateErrorMessages(err), nil)
		return
	}

	data := gin.H{
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
		"user":         user,
	}
	if status == http.StatusCreated {
		util.ResponseCreated(ctx, data)
		return
	}
	util.ResponseSuccess(ctx, data)
}

// Logout revokes the refresh token sent as "Authorization: Refresh <token>".
func (ac AuthController) Logout(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	if err := ac.app.Repository.JWT.DeleteToken(ctx, nil, refreshToken); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to logout", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AuthController) VerifyJwtAccessToken(ctx *gin.Context) {
	token := ctx.Param("token")

	// Keep in mind that verify jwt token does not check database.
	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), gin.H{
			"tokenValid": false,
		})
		return
	}

	if jwtClaims == nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("jwt claim empty")), gin.H{
			"tokenValid": false,
		})
		return
	}

	if jwtClaims.Type != constant.JWT_TYPE_ACCESS {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("invalid jwt token type")), gin.H{
			"tokenValid": false,
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"tokenValid": true,
		"payload":    jwtClaims,
	})
}

func (ac AuthController) RefreshAccessToken(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(refreshToken)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if jwtClaims == nil || jwtClaims.Type != constant.JWT_TYPE_REFRESH {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("invalid jwt token type")), nil)
		return
	}

	newRefreshToken, newAccessToken, err := ac.app.Repository.JWT.RefreshToken(ctx, nil, refreshToken)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if newRefreshToken == nil || newAccessToken == nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("failed to refresh token")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": newRefreshToken,
		"accessToken":  newAccessToken,
	})
}
