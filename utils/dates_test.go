package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateNormalizesToMidnightUTC(t *testing.T) {
	got, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDateRejectsOtherFormats(t *testing.T) {
	for _, in := range []string{"09/01/2026", "2026-9-1", "tomorrow", ""} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) err = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestBeginningOfDayCollapsesTimezones(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	a := BeginningOfDay(time.Date(2026, 9, 1, 23, 45, 0, 0, time.UTC))
	b := BeginningOfDay(time.Date(2026, 9, 2, 4, 45, 0, 0, loc))
	if !a.Equal(b) {
		t.Errorf("same instant normalized differently: %v vs %v", a, b)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 4, 2, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"fade-factory", "a", "shop42", "a-b-c"}
	for _, s := range valid {
		if !ValidateSlug(s) {
			t.Errorf("ValidateSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-lead", "trail-", "UPPER", "two--dashes", "with space"}
	for _, s := range invalid {
		if ValidateSlug(s) {
			t.Errorf("ValidateSlug(%q) = true, want false", s)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	if !ValidatePhone("+1 (555) 000-1111") {
		t.Error("formatted international number rejected")
	}
	if ValidatePhone("not-a-phone") {
		t.Error("garbage accepted")
	}
}
