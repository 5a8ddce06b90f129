package middleware

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

const AuthUserKey = "user"

func (m Middleware) verifyAccessToken(ctx *gin.Context) (*auth.JWTClaims, string, error) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		return nil, "", err
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		return nil, "Invalid token", err
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		return nil, "Invalid access token type", errors.New("invalid jwt token type")
	}

	return claim, "", nil
}

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	claim, message, err := m.verifyAccessToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to authenticate request: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, message, util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	ctx.Set(AuthUserKey, claim.User)
	ctx.Next()
}

// OptionalAuthMiddleware sets the user when a valid access token is sent and lets anonymous
// requests through otherwise.
func (m Middleware) OptionalAuthMiddleware(ctx *gin.Context) {
	if ctx.GetHeader("Authorization") == "" {
		ctx.Next()
		return
	}

	claim, _, err := m.verifyAccessToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Ignoring invalid token on public route: %v", err)
		ctx.Next()
		return
	}

	ctx.Set(AuthUserKey, claim.User)
	ctx.Next()
}

func (m Middleware) authPayload(ctx *gin.Context) (auth.JWTPayload, bool) {
	user, ok := ctx.Get(AuthUserKey)
	payload, isPayload := user.(auth.JWTPayload)
	if !ok || !isPayload {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(errors.New("user not found in context"), "unauthorized"), nil)
		return auth.JWTPayload{}, false
	}
	return payload, true
}

func (m Middleware) deny(ctx *gin.Context, payload auth.JWTPayload) {
	m.app.Logger.Debugf("User %s with type %s is not allowed on %s", payload.ID, payload.UserType, ctx.FullPath())
	util.ResponseFailed(ctx, http.StatusForbidden, "Forbidden", util.GenerateErrorMessages(errors.New("you do not have permission to perform this action"), "forbidden"), nil)
}

// RequireUserType must run after AuthMiddleware.
func (m Middleware) RequireUserType(allowed ...constant.UserType) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload, ok := m.authPayload(ctx)
		if !ok {
			return
		}
		if !util.HasUserType(payload.UserType, allowed...) {
			m.deny(ctx, payload)
			return
		}
		ctx.Next()
	}
}

// RequirePermission must run after AuthMiddleware. The user type needs every listed permission.
func (m Middleware) RequirePermission(permissions ...constant.Permission) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload, ok := m.authPayload(ctx)
		if !ok {
			return
		}
		if !util.HasPermission(payload.UserType, permissions...) {
			m.deny(ctx, payload)
			return
		}
		ctx.Next()
	}
}

func (m Middleware) RequireAdmin(ctx *gin.Context) {
	m.RequireUserType(constant.UserTypeAdministrator)(ctx)
}
