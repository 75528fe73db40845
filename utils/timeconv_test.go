package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "13:30", want: 810},
		{in: "23:59", want: 1439},
		{in: "", wantErr: true},
		{in: "9am", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "12:60", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{810, "13:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatClockRoundTrips(t *testing.T) {
	t.Parallel()

	for m := 0; m < 24*60; m += 17 {
		back, err := ParseClock(FormatClock(m))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", m, err)
		}
		if back != m {
			t.Errorf("round trip of %d = %d", m, back)
		}
	}
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	in := time.Date(2026, 3, 2, 17, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly() = %v, want %v", got, want)
	}
}
