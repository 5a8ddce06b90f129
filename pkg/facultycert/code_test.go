package facultycert

import (
	"regexp"
	"testing"
	"time"
)

func TestNewVerificationCode(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	hex := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewVerificationCode("Jane Doe", at)
		if !hex.MatchString(code) {
			t.Fatalf("expected 64 hex chars, got %q", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}

func TestCertificateFileName(t *testing.T) {
	got := CertificateFileName("123456789", "abcdef0123456789")
	if got != "certificate_123456789_abcdef01.pdf" {
		t.Errorf("unexpected file name %q", got)
	}
	if ShortCode("abc") != "abc" {
		t.Errorf("short codes must be kept whole")
	}
}
