// scoring/timeframe.go
package scoring

import (
	"time"

	"wordle-arena/apperrors"
)

// TimeFrame is a named date interval used to filter games before ranking.
type TimeFrame string

const (
	AllTime   TimeFrame = "allTime"
	ThisYear  TimeFrame = "thisYear"
	ThisMonth TimeFrame = "thisMonth"
	Today     TimeFrame = "today"
)

// ParseTimeFrame validates a wire-level time frame name.
func ParseTimeFrame(s string) (TimeFrame, error) {
	switch TimeFrame(s) {
	case AllTime, ThisYear, ThisMonth, Today:
		return TimeFrame(s), nil
	}
	return "", apperrors.Validation("timeFrame must be one of allTime, thisYear, thisMonth, today")
}

// Window resolves the frame to a half-open interval [start, end) relative to
// now, in now's location. AllTime returns ok=false: no bounds, no filtering.
// now is an explicit parameter so window arithmetic stays testable.
func (tf TimeFrame) Window(now time.Time) (start, end time.Time, ok bool) {
	loc := now.Location()
	switch tf {
	case Today:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), true
	case ThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), true
	case ThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// Contains reports whether t falls inside the frame resolved at now.
func (tf TimeFrame) Contains(t, now time.Time) bool {
	start, end, bounded := tf.Window(now)
	if !bounded {
		return true
	}
	return !t.Before(start) && t.Before(end)
}
