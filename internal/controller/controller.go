package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	appcontext "github.com/SeakMengs/FacultyCert/internal/app_context"
	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	User           *UserController
	Index          *IndexController
	Auth           *AuthController
	OAuth          *OAuthController
	File           *FileController
	CourseHistory  *CourseHistoryController
	Template       *TemplateController
	Certificate    *CertificateController
	Verify         *VerifyController
	News           *NewsController
	Event          *EventController
	Schedule       *ScheduleController
	SupportRequest *SupportRequestController
	Survey         *SurveyController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	googleOAuthConfig := &oauth2.Config{
		ClientID:     app.Config.Auth.GoogleOAuthConfig.ClientID,
		ClientSecret: app.Config.Auth.GoogleOAuthConfig.ClientSecret,
		RedirectURL:  app.Config.Auth.GoogleOAuthConfig.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	return &Controller{
		User:           &UserController{baseController: bc},
		Index:          &IndexController{baseController: bc},
		Auth:           &AuthController{baseController: bc},
		OAuth:          &OAuthController{baseController: bc, googleOAuthConfig: googleOAuthConfig, allowedDomain: app.Config.Auth.GoogleOAuthConfig.AllowedDomain},
		File:           &FileController{baseController: bc},
		CourseHistory:  &CourseHistoryController{baseController: bc},
		Template:       &TemplateController{baseController: bc},
		Certificate:    &CertificateController{baseController: bc},
		Verify:         &VerifyController{baseController: bc},
		News:           &NewsController{baseController: bc},
		Event:          &EventController{baseController: bc},
		Schedule:       &ScheduleController{baseController: bc},
		SupportRequest: &SupportRequestController{baseController: bc},
		Survey:         &SurveyController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	if payload, ok := user.(auth.JWTPayload); ok {
		return &payload, nil
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

// getOptionalAuthUser returns nil on public routes called without a token.
func (b *baseController) getOptionalAuthUser(ctx *gin.Context) *auth.JWTPayload {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		return nil
	}
	return user
}

// mustAuthUser writes the 401 response itself, callers return on false.
func (b *baseController) mustAuthUser(ctx *gin.Context) (*auth.JWTPayload, bool) {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		b.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return nil, false
	}
	return user, true
}

func (b *baseController) can(user *auth.JWTPayload, permissions ...constant.Permission) bool {
	return user != nil && util.HasPermission(user.UserType, permissions...)
}

func forbidden(ctx *gin.Context, message string) {
	util.ResponseFailed(ctx, http.StatusForbidden, "Forbidden", util.GenerateErrorMessages(errors.New(message), "forbidden"), nil)
}

// respondRepoError maps a missing record to 404 and everything else to 500.
func (b *baseController) respondRepoError(ctx *gin.Context, err error, notFoundMessage, failedMessage string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.ResponseFailed(ctx, http.StatusNotFound, notFoundMessage, util.GenerateErrorMessages(err, "notFound"), nil)
		return
	}

	b.app.Logger.Error(err)
	util.ResponseFailed(ctx, http.StatusInternalServerError, failedMessage, util.GenerateErrorMessages(err), nil)
}

type pageQuery struct {
	Page     uint `form:"page" binding:"omitempty,gte=1"`
	PageSize uint `form:"pageSize" binding:"omitempty,gte=1,lte=100"`
}

func (p pageQuery) normalized() (uint, uint) {
	return util.NormalizePage(p.Page, p.PageSize)
}
