package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	RefreshTokenTTL = 7 * 24 * time.Hour
	AccessTokenTTL  = 5 * time.Minute
)

type JWT struct {
	logger    *zap.SugaredLogger
	jwtSecret string
}

type JWTInterface interface {
	GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error)
	VerifyJwtToken(token string) (*JWTClaims, error)
}

func NewJwt(cfg config.AuthConfig, logger *zap.SugaredLogger) *JWT {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &JWT{
		jwtSecret: cfg.JWT_SECRET,
		logger:    logger,
	}
}

type JWTPayload struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	UserType    constant.UserType `json:"userType"`
	ProfessorID string            `json:"professorId,omitempty"`
}

func (p JWTPayload) IsAdmin() bool {
	return p.UserType == constant.UserTypeAdministrator
}

type JWTClaims struct {
	User JWTPayload `json:"user"`
	// access or refresh
	Type string `json:"type"`
	IAT  int64  `json:"iat"`
	EXP  int64  `json:"exp"`
}

func (j JWT) sign(payload JWTPayload, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user": payload,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.jwtSecret))
}

// Return refreshToken, accessToken, error
func (j JWT) GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error) {
	j.logger.Debugf("Generate refresh and access token for user: %s", payload.ID)

	refreshToken, err := j.sign(payload, constant.JWT_TYPE_REFRESH, RefreshTokenTTL)
	if err != nil {
		return nil, nil, err
	}

	accessToken, err := j.sign(payload, constant.JWT_TYPE_ACCESS, AccessTokenTTL)
	if err != nil {
		return nil, nil, err
	}

	return &refreshToken, &accessToken, nil
}

func (j JWT) VerifyJwtToken(token string) (*JWTClaims, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.jwtSecret), nil
	})
	if err != nil {
		j.logger.Debugf("Failed to verify jwt token. Error: %v", err)
		return nil, err
	}

	if !parsedToken.Valid {
		j.logger.Debug("Jwt token is not valid")
		return nil, errors.New("jwt token is not valid")
	}

	// The map claims round-trip through JSON into the typed claims.
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, err
	}

	var out JWTClaims
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid token claims: %w", err)
	}

	if out.User.ID == "" {
		return nil, errors.New("invalid token: user field is missing or malformed")
	}

	return &out, nil
}
