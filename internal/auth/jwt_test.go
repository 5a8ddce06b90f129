package auth

import (
	"testing"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/constant"
)

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)
	payload := JWTPayload{
		ID:          "id1234",
		Email:       "test@gmail.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		UserType:    constant.UserTypeProfessor,
		ProfessorID: "123456789",
	}

	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(payload)
	if err != nil {
		t.Fatalf("An error occurred during refresh token and access token generation. Error: %v", err)
	}

	tests := []struct {
		name      string
		token     string
		tokenType string
	}{
		{"refresh", *refreshToken, constant.JWT_TYPE_REFRESH},
		{"access", *accessToken, constant.JWT_TYPE_ACCESS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.VerifyJwtToken(tt.token)
			if err != nil {
				t.Fatalf("An error occurred during token verification. Error: %v", err)
			}
			if claims.Type != tt.tokenType {
				t.Errorf("expected type %s, got %s", tt.tokenType, claims.Type)
			}
			if claims.User != payload {
				t.Errorf("expected payload %+v, got %+v", payload, claims.User)
			}
			if claims.EXP <= claims.IAT {
				t.Errorf("expected expiry after issue time")
			}
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJwt(config.AuthConfig{JWT_SECRET: "another-secret"}, nil)
		if _, err := other.VerifyJwtToken(*accessToken); err == nil {
			t.Error("expected verification to fail")
		}
	})
}
