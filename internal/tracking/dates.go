package tracking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fit1-backend/internal/apperr"
)

// DateLayout is the canonical calendar-date form stored on every entry and
// matched exactly by day queries.
const DateLayout = "2006-01-02"

// NormalizeDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// UTC calendar date.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse(DateLayout, raw); err == nil {
		return d.Format(DateLayout), true
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC().Format(DateLayout), true
	}
	return "", false
}

// NormalizeTime accepts H:MM, HH:MM or HH:MM:SS on a 24h clock and returns a
// zero-padded form that sorts lexically.
func NormalizeTime(raw string) (string, bool) {
	secs, ok := secondsOfDay(raw)
	if !ok {
		return "", false
	}
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if strings.Count(strings.TrimSpace(raw), ":") == 2 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s), true
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func secondsOfDay(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	limits := []int{23, 59, 59}
	total := 0
	for i, p := range parts {
		if p == "" || len(p) > 2 {
			return 0, false
		}
		if i > 0 && len(p) != 2 {
			return 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, false
		}
		total = total*60 + n
	}
	if len(parts) == 2 {
		total *= 60
	}
	return total, true
}

// HourOf returns the hour of a time-of-day string, or -1 if it does not parse.
func HourOf(raw string) int {
	secs, ok := secondsOfDay(raw)
	if !ok {
		return -1
	}
	return secs / 3600
}

// Today is the current UTC calendar date.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// ResolveDate validates a date query parameter, defaulting to today.
func ResolveDate(raw string, now time.Time) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return Today(now), nil
	}
	date, ok := NormalizeDate(raw)
	if !ok {
		return "", &apperr.ValidationError{Violations: []apperr.FieldViolation{{
			Field:   "date",
			Rule:    "isodate",
			Message: "date must be a YYYY-MM-DD calendar date",
		}}}
	}
	return date, nil
}
