// Package validation checks and parses client input before it reaches a service.
// Every failure is returned as an `apperror` value (MissingField, InvalidNumber,
// InvalidDate) so the HTTP layer can answer with 400 without touching the store.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	// `validator` checks struct fields against `validate:"..."` tags.
	"github.com/go-playground/validator/v10"

	"github.com/user/exercise-tracker-go/apperror"
)

// LogDateLayout renders dates in exercise logs, e.g. "Sun Jan 01 2023".
const LogDateLayout = "Mon Jan 02 2006"

// dateLayouts are tried in order by ParseDate. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999Z0700",
	"2006",
	"2006-01",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	LogDateLayout,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 2 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// validate is safe for concurrent use and caches struct metadata, so one instance is shared.
var validate = validator.New(validator.WithRequiredStructEnabled())

// exerciseFields holds the raw, still-unparsed exercise input for the `required` checks.
type exerciseFields struct {
	Description string `validate:"required"`
	Duration    string `validate:"required"`
}

// ExerciseInput is a validated exercise, ready to be appended to a log.
type ExerciseInput struct {
	Description string
	Duration    float64
	Date        time.Time
}

// ValidateUsername trims the username and fails with MissingField when nothing is left.
func ValidateUsername(input string) (string, error) {
	username := strings.TrimSpace(input)
	if err := validate.Var(username, "required"); err != nil {
		return "", apperror.NewMissingFieldError("Username is required", err)
	}
	return username, nil
}

// ValidateExerciseInput checks the three exercise fields in order:
// presence of description and duration, duration as a finite number, then the
// optional date. An absent date is replaced by now.
func ValidateExerciseInput(description, duration, date string, now time.Time) (ExerciseInput, error) {
	fields := exerciseFields{
		Description: strings.TrimSpace(description),
		Duration:    strings.TrimSpace(duration),
	}
	if err := validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ExerciseInput{}, apperror.NewMissingFieldError(
				"Description and duration are required",
				fmt.Errorf("missing fields: %s", fieldNames(verrs)),
			)
		}
		return ExerciseInput{}, apperror.NewInternalError("failed to validate exercise", err)
	}

	minutes, err := ParseDuration(fields.Duration)
	if err != nil {
		return ExerciseInput{}, err
	}

	when := now
	if strings.TrimSpace(date) != "" {
		when, err = ParseDate(date)
		if err != nil {
			return ExerciseInput{}, apperror.NewInvalidDateError("Invalid date format", err)
		}
	}

	return ExerciseInput{
		Description: fields.Description,
		Duration:    minutes,
		Date:        normalize(when),
	}, nil
}

// ParseDuration parses a duration in minutes. NaN and infinities are rejected.
func ParseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperror.NewInvalidNumberError("Duration must be a number", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperror.NewInvalidNumberError("Duration must be a number", fmt.Errorf("non-finite duration %q", s))
	}
	return v, nil
}

// ParseDate parses a calendar date or date-time string.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseOptionalDateBound parses a `from`/`to` query value.
// Blank input means no bound; anything else must parse.
func ParseOptionalDateBound(name, input string) (*time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	t, err := ParseDate(input)
	if err != nil {
		return nil, apperror.NewInvalidDateError(fmt.Sprintf("Invalid '%s' date format", name), err)
	}
	return &t, nil
}

// ParseOptionalLimit reads the leading integer of input, so "5.5" and "10abc"
// give 5 and 10. It returns nil when there is no leading integer or it is negative.
func ParseOptionalLimit(input string) *int {
	s := strings.TrimSpace(input)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// FormatLogDate renders a date the way exercise logs show it.
func FormatLogDate(t time.Time) string {
	return t.UTC().Format(LogDateLayout)
}

// normalize keeps dates in UTC at millisecond precision, the finest resolution every store keeps.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func fieldNames(verrs validator.ValidationErrors) string {
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, strings.ToLower(fe.Field()))
	}
	return strings.Join(names, ", ")
}
