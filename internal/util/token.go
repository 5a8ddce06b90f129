package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReadAuthorizationHeader splits "Authorization: <type> <token>" and returns the upper case
// type and the token.
func ReadAuthorizationHeader(ctx *gin.Context) (string, string, error) {
	header := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if header == "" {
		return "", "", errors.New("no authorization header specified")
	}

	tokenType, token, found := strings.Cut(header, " ")
	if !found {
		return "", "", errors.New("wrong authorization header format")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", "", errors.New("token is empty")
	}

	return strings.ToUpper(tokenType), token, nil
}

func readTypedToken(ctx *gin.Context, expected string) (string, error) {
	tokenType, token, err := ReadAuthorizationHeader(ctx)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(tokenType, expected) {
		return "", fmt.Errorf("invalid token type; expected '%s'", expected)
	}

	return token, nil
}

func ReadBearerToken(ctx *gin.Context) (string, error) {
	return readTypedToken(ctx, "Bearer")
}

func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return readTypedToken(ctx, "Refresh")
}
