package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

type OAuthController struct {
	*baseController
	googleOAuthConfig *oauth2.Config
	allowedDomain     string
}

type GoogleUser struct {
	Email         string `json:"email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
	AccessToken   string `json:"-"`
}

const oauthStateCookie = "oauth_state"

var (
	errGoogleEmailUnverified  = errors.New("google account email is not verified")
	errGoogleDomainNotAllowed = errors.New("google account is not on the allowed domain")
)

// checkGoogleAccount rejects unverified emails and, when domain is set,
// accounts outside it.
func checkGoogleAccount(u *GoogleUser, domain string) error {
	if !u.VerifiedEmail {
		return errGoogleEmailUnverified
	}
	if domain == "" {
		return nil
	}
	at := strings.LastIndex(u.Email, "@")
	if at < 0 || !strings.EqualFold(u.Email[at+1:], domain) {
		return errGoogleDomainNotAllowed
	}
	return nil
}

func (oc OAuthController) ContinueWithGoogle(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google logic")

	state, err := util.GenerateNChar(16)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(oauthStateCookie, state, 600, "/", "", oc.app.Config.IsProduction(), true)

	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
	if oc.allowedDomain != "" {
		// Google preselects accounts of the hosted domain
		opts = append(opts, oauth2.SetAuthURLParam("hd", oc.allowedDomain))
	}
	url := oc.googleOAuthConfig.AuthCodeURL(state, opts...)

	oc.app.Logger.Debugf("OAuth: Google, Redirect to: %s", url)
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

func (oc OAuthController) getGoogleUserInfo(ctx context.Context, code string) (*GoogleUser, error) {
	oc.app.Logger.Debug("OAuth: Google, Get user info logic")

	// Exchange the authorization code for an access token
	token, err := oc.googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	// Use the access token to fetch user info
	client := oc.googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo responded with status %d", resp.StatusCode)
	}

	var userInfo GoogleUser
	userInfo.AccessToken = token.AccessToken

	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &userInfo, nil
}

func (oc OAuthController) ContinueWithGoogleCallback(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google callback logic")

	state, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != ctx.Query("state") {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid oauth state", util.GenerateErrorMessages(errors.New("oauth state mismatch"), "state"), nil)
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", oc.app.Config.IsProduction(), true)

	userInfo, err := oc.getGoogleUserInfo(ctx, ctx.Query("code"))
	if err != nil {
		oc.app.Logger.Debugf("OAuth: Google, Error: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := checkGoogleAccount(userInfo, oc.allowedDomain); err != nil {
		util.ResponseFailed(ctx, http.StatusForbidden, "Account not allowed", util.GenerateErrorMessages(err, "email"), nil)
		return
	}

	// First sign in creates a student account; administrators change the type later.
	err = oc.app.Repository.User.CheckDupAndCreate(ctx, nil, &model.User{
		Email:      userInfo.Email,
		FirstName:  userInfo.GivenName,
		LastName:   userInfo.FamilyName,
		ProfileURL: userInfo.Picture,
		UserType:   constant.UserTypeStudent,
	})
	if err != nil && !errors.Is(err, repository.ErrUserAlreadyExists) {
		oc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := oc.app.Repository.User.GetByEmail(ctx, nil, userInfo.Email)
	if err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to get user by email")
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	// Create or update oauth provider such that we can store the access token
	if err := oc.app.Repository.OAuthProvider.CreateOrUpdateByProviderUserId(ctx, nil, model.OAuthProvider{
		ProviderUserId: userInfo.ID,
		ProviderType:   constant.OAUTH_PROVIDER_GOOGLE,
		ProviderEmail:  userInfo.Email,
		AccessToken:    userInfo.AccessToken,
		UserID:         user.ID,
	}); err != nil {
		oc.app.Logger.Warnf("OAuth: Google, failed to store provider token: %v", err)
	}

	refreshToken, accessToken, err := oc.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, *user)
	if err != nil {
		oc.app.Logger.Debug("OAuth: Google, Error: Failed to generate refresh and access token")
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
	})
}
