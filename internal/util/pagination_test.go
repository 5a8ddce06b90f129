package util

import "testing"

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize uint
		expected int
	}{
		{"no items", 0, 10, 1},
		{"exact", 20, 10, 2},
		{"remainder", 21, 10, 3},
		{"default page size", 25, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalPage(tt.total, tt.pageSize); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	if got := PageOffset(0, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := PageOffset(3, 20); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}
	if _, size := NormalizePage(1, 1000); size != 100 {
		t.Errorf("expected page size capped at 100, got %d", size)
	}
}
