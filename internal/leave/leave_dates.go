package leave

import (
	"time"

	"github.com/shopspring/decimal"

	leaveerrors "github.com/symtons/leavedesk/internal/leave/errors"
	"github.com/symtons/leavedesk/internal/shared/clock"
)

// DayFormat is the wire format for calendar dates.
const DayFormat = "2006-01-02"

// HalfDayTotal is the fixed total for half-day requests regardless of the
// selected span. A half-day request covering several calendar days still
// reports 0.5; this mirrors the production behavior and stands until a
// product decision overrides it.
var HalfDayTotal = decimal.New(5, -1)

// ParseDay parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDay(v string) (time.Time, error) {
	t, err := time.Parse(DayFormat, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDay renders a calendar day in wire format.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ComputeTotalDays returns the inclusive day count of a date range. An end
// date before the start date is a reported condition, not a silently
// corrected one: the error comes back along with a zero total.
func ComputeTotalDays(start, end time.Time, halfDay bool) (decimal.Decimal, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return decimal.Zero, leaveerrors.ErrEndBeforeStart
	}
	if halfDay {
		return HalfDayTotal, nil
	}
	days := int64(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days), nil
}

// MinimumSelectableDate returns the lower bound for the start-date field.
// With past dates disabled the floor is today; otherwise there is none.
func MinimumSelectableDate(c clock.Clock, disablePastDates bool) (time.Time, bool) {
	if !disablePastDates {
		return time.Time{}, false
	}
	return clock.Today(c), true
}

// MinimumEndDate returns the lower bound for the end-date field: the later
// of the chosen start date and the minimum selectable date.
func MinimumEndDate(start, minimum time.Time) time.Time {
	if start.After(minimum) {
		return start
	}
	return minimum
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
