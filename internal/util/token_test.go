package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		header  string
		bearer  string
		refresh string
	}{
		{"bearer", "Bearer abc", "abc", ""},
		{"lower case type", "bearer abc", "abc", ""},
		{"refresh", "Refresh xyz", "", "xyz"},
		{"missing token", "Bearer ", "", ""},
		{"no header", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				ctx.Request.Header.Set("Authorization", tt.header)
			}

			bearer, _ := ReadBearerToken(ctx)
			refresh, _ := ReadRefreshToken(ctx)
			if bearer != tt.bearer || refresh != tt.refresh {
				t.Errorf("expected bearer=%q refresh=%q, got bearer=%q refresh=%q", tt.bearer, tt.refresh, bearer, refresh)
			}
		})
	}
}
