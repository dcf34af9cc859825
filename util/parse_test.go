package util

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	parsed, err := ParseTime("2026-03-09T18:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if parsed.Hour() != 18 || parsed.Minute() != 30 {
		t.Errorf("got %v", parsed)
	}

	if _, err := ParseTime("tomorrow-ish"); err == nil {
		t.Errorf("expected an error for a malformed timestamp")
	}
}

func TestEndOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	in := time.Date(2026, time.March, 9, 10, 15, 0, 0, loc)

	got := EndOfDay(in)

	want := time.Date(2026, time.March, 9, 23, 59, 59, 999000000, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
