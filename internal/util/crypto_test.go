package util

import (
	"strings"
	"testing"
)

func TestGenerateNChar(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"Generate 5 characters", 5, false},
		{"Generate 16 characters", 16, false},
		{"Generate negative characters", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateNChar(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateNChar() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && len(got) != tt.n {
				t.Errorf("GenerateNChar() got = %v, want length %v", got, tt.n)
			}
		})
	}
}

func TestGenerateReferenceCode(t *testing.T) {
	code, err := GenerateReferenceCode("SR", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(code, "SR-") || len(code) != 11 {
		t.Errorf("unexpected code %q", code)
	}
	for _, r := range strings.TrimPrefix(code, "SR-") {
		if !strings.ContainsRune(referenceAlphabet, r) {
			t.Errorf("unexpected character %q in %q", r, code)
		}
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "battery staple") {
		t.Error("expected wrong password to fail")
	}
}
