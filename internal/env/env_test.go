package env

import (
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("FC_TEST_STRING", "value")
	t.Setenv("FC_TEST_INT", "42")
	t.Setenv("FC_TEST_BAD_INT", "forty two")
	t.Setenv("FC_TEST_BOOL", "true")
	t.Setenv("FC_TEST_DURATION", "90s")

	if got := GetString("FC_TEST_STRING", "x"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := GetString("FC_TEST_MISSING", "x"); got != "x" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := GetInt("FC_TEST_INT", 1); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := GetInt("FC_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("expected fallback for bad int, got %d", got)
	}
	if got := GetBool("FC_TEST_BOOL", false); !got {
		t.Errorf("expected true")
	}
	if got := GetDuration("FC_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("expected 90s, got %v", got)
	}
}
