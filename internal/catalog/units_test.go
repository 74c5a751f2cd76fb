package catalog

import (
	"errors"
	"testing"

	"github.com/san-kum/decaysim/internal/decay"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		seconds float64
	}{
		{"seconds", 1},
		{"s", 1},
		{"minute", 60},
		{"min", 60},
		{"Hours", 3600},
		{"d", 86400},
		{"day", 86400},
		{"years", 31557600},
		{"y", 31557600},
	}
	for _, tt := range tests {
		u, err := ParseUnit(tt.in)
		if err != nil {
			t.Errorf("ParseUnit(%q): %v", tt.in, err)
			continue
		}
		if u.Seconds != tt.seconds {
			t.Errorf("ParseUnit(%q) = %v s, want %v", tt.in, u.Seconds, tt.seconds)
		}
	}

	if _, err := ParseUnit("fortnight"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestValidMultiple(t *testing.T) {
	tests := []struct {
		k     float64
		valid bool
	}{
		{0.5, true},
		{1, true},
		{5, true},
		{10, true},
		{0, false},
		{0.25, false},
		{1.3, false},
		{10.5, false},
	}
	for _, tt := range tests {
		if got := ValidMultiple(tt.k); got != tt.valid {
			t.Errorf("ValidMultiple(%v) = %v, want %v", tt.k, got, tt.valid)
		}
	}
}

func TestSnapMultiple(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.3, 1.5},
		{0.1, 0.5},
		{42, 10},
		{4.74, 4.5},
	}
	for _, tt := range tests {
		if got := SnapMultiple(tt.in); got != tt.want {
			t.Errorf("SnapMultiple(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCheckMultiple(t *testing.T) {
	if err := CheckMultiple(2.5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckMultiple(11); !errors.Is(err, decay.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
