// Package dateutil provides the pure date arithmetic behind recurring-task
// rollover and due-date reminder checks. All functions treat dates at
// calendar-day granularity in the local time zone.
package dateutil

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"todo-tracker/internal/errors"
)

// DateLayout is the canonical date format used throughout the application.
const DateLayout = "2006-01-02"

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// naturalParser handles free-form date input ("tomorrow", "next friday").
var naturalParser = newNaturalParser()

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// NextOccurrence computes the next due date for a recurring task.
// Daily adds one day, weekly adds seven. Monthly moves to the same day of
// the next month, advancing the year across December; a day that does not
// exist in the target month (29-31) is clamped to that month's last day.
func NextOccurrence(current string, frequency string) (string, error) {
	date, err := time.ParseInLocation(DateLayout, current, time.Local)
	if err != nil {
		return "", errors.NewValidationError("invalid date: "+current, err)
	}

	switch strings.ToLower(frequency) {
	case "daily":
		return date.AddDate(0, 0, 1).Format(DateLayout), nil
	case "weekly":
		return date.AddDate(0, 0, 7).Format(DateLayout), nil
	case "monthly":
		year, month, day := date.Date()
		if month == time.December {
			year++
			month = time.January
		} else {
			month++
		}
		if last := daysIn(year, month); day > last {
			day = last
		}
		next := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		return next.Format(DateLayout), nil
	default:
		return "", errors.NewValidationError("invalid frequency: "+frequency, nil)
	}
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// IsWithinHours reports whether now+hours falls inside the due date's
// calendar-day window [due 00:00, due+1d 00:00). A task therefore counts
// as "within 1 hour" from the moment its due day starts; this is a
// day-granularity approximation, not a precise countdown.
func IsWithinHours(dueDate string, hours int) bool {
	date, err := time.ParseInLocation(DateLayout, dueDate, time.Local)
	if err != nil {
		return false
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.AddDate(0, 0, 1)
	probe := timeNow().Add(time.Duration(hours) * time.Hour)

	return !probe.Before(dayStart) && probe.Before(dayEnd)
}

// IsReminderDue reports whether the due date falls within the next 24
// hours, i.e. now+24h lands inside the due date's day window. Used for the
// upcoming-deadlines view.
func IsReminderDue(dueDate string) bool {
	return IsWithinHours(dueDate, 24)
}

// normalizeLayouts are the explicit date shapes accepted before falling
// back to natural-language parsing. US month-first forms are tried before
// day-first ones, matching the original input handling.
var normalizeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02-01-2006",
}

// NormalizeDate canonicalizes a date string to YYYY-MM-DD. It accepts the
// canonical form, common ISO datetime and slash/dash shapes, and finally
// natural-language input such as "tomorrow" or "next friday".
func NormalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errors.NewValidationError("date is empty", nil)
	}

	if len(s) == len(DateLayout) {
		if date, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
			return date.Format(DateLayout), nil
		}
	}

	for _, layout := range normalizeLayouts {
		if date, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return date.Format(DateLayout), nil
		}
	}

	if r, err := naturalParser.Parse(s, timeNow()); err == nil && r != nil {
		return r.Time.Format(DateLayout), nil
	}

	return "", errors.NewValidationError("unrecognized date format: "+input, nil)
}
