package validation

import (
	"testing"
	"time"

	"github.com/user/exercise-tracker-go/apperror"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 30, 15, 123456789, time.UTC)

func TestValidateUsername(t *testing.T) {
	if _, err := ValidateUsername(""); !apperror.IsMissingField(err) {
		t.Fatalf("empty username: got %v, want MissingField", err)
	}
	if _, err := ValidateUsername("   "); !apperror.IsMissingField(err) {
		t.Fatalf("blank username: got %v, want MissingField", err)
	}
	got, err := ValidateUsername("  alice ")
	if err != nil || got != "alice" {
		t.Fatalf("ValidateUsername = %q, %v", got, err)
	}
}

func TestValidateExerciseInput(t *testing.T) {
	tests := []struct {
		name        string
		description string
		duration    string
		date        string
		check       func(error) bool
	}{
		{"missing description", "", "30", "", apperror.IsMissingField},
		{"missing duration", "run", "", "", apperror.IsMissingField},
		{"blank duration", "run", "  ", "", apperror.IsMissingField},
		{"non numeric duration", "run", "abc", "", apperror.IsInvalidNumber},
		{"infinite duration", "run", "Inf", "", apperror.IsInvalidNumber},
		{"nan duration", "run", "NaN", "", apperror.IsInvalidNumber},
		{"bad date", "run", "30", "not-a-date", apperror.IsInvalidDate},
		{"impossible day", "run", "30", "2023-02-30", apperror.IsInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateExerciseInput(tt.description, tt.duration, tt.date, fixedNow)
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateExerciseInputDefaultsDate(t *testing.T) {
	in, err := ValidateExerciseInput("run", "30", "", fixedNow)
	if err != nil {
		t.Fatalf("ValidateExerciseInput: %v", err)
	}
	want := fixedNow.Truncate(time.Millisecond)
	if !in.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", in.Date, want)
	}
	if in.Duration != 30 || in.Description != "run" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestValidateExerciseInputParsesDate(t *testing.T) {
	in, err := ValidateExerciseInput("swim", "12.5", "2023-01-01", fixedNow)
	if err != nil {
		t.Fatalf("ValidateExerciseInput: %v", err)
	}
	if want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC); !in.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", in.Date, want)
	}
	if in.Duration != 12.5 {
		t.Fatalf("duration = %v", in.Duration)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-01-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-1-5", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2023/07/04", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"2023-01-01T12:30:00Z", time.Date(2023, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"2023-01-01T12:30:00+02:00", time.Date(2023, 1, 1, 10, 30, 0, 0, time.UTC)},
		{"2023-01-01T12:30", time.Date(2023, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"2023-01-01 08:00:00", time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"Sun Jan 01 2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"January 2, 2023", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2023-01-01T00:00:00.123456Z", time.Date(2023, 1, 1, 0, 0, 0, 123000000, time.UTC)},
		{"2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-03", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-01-01T10:00:00.000+0000", time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2023-01-01T10:00:00+0200", time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"01/15/2023", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"1/5/2023", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"Sun Jan 01 2023 00:00:00 GMT+0000", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"Sun Jan 01 2023 09:30:00 GMT+0100", time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "not-a-date", "2023-13-01", "yesterday", "13/01/2023", "2023-13"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestParseOptionalDateBound(t *testing.T) {
	got, err := ParseOptionalDateBound("from", "")
	if err != nil || got != nil {
		t.Fatalf("blank bound = %v, %v", got, err)
	}
	_, err = ParseOptionalDateBound("from", "garbage")
	if !apperror.IsInvalidDate(err) {
		t.Fatalf("garbage bound: %v", err)
	}
	if ae, _ := apperror.FromError(err); ae.Message != "Invalid 'from' date format" {
		t.Fatalf("message = %q", ae.Message)
	}
	got, err = ParseOptionalDateBound("to", "2023-02-01")
	if err != nil || got == nil || !got.Equal(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to bound = %v, %v", got, err)
	}
}

func TestParseOptionalLimit(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"", nil},
		{"abc", nil},
		{"-1", nil},
		{"-", nil},
		{".5", nil},
		{"2.5", intPtr(2)},
		{"10abc", intPtr(10)},
		{"+4", intPtr(4)},
		{"0", intPtr(0)},
		{" 3 ", intPtr(3)},
	}
	for _, tt := range tests {
		got := ParseOptionalLimit(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseOptionalLimit(%q) = %d, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("ParseOptionalLimit(%q) = %v, want %d", tt.in, got, *tt.want)
		}
	}
}

func TestFormatLogDate(t *testing.T) {
	if got := FormatLogDate(time.Date(2023, 1, 1, 23, 59, 0, 0, time.UTC)); got != "Sun Jan 01 2023" {
		t.Fatalf("FormatLogDate = %q", got)
	}
	east := time.FixedZone("UTC+3", 3*60*60)
	if got := FormatLogDate(time.Date(2023, 1, 2, 1, 0, 0, 0, east)); got != "Sun Jan 01 2023" {
		t.Fatalf("FormatLogDate should render in UTC, got %q", got)
	}
}

func intPtr(n int) *int { return &n }
