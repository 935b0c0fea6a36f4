// Package schedule holds the pure planning engine: clock-interval math,
// weekly recurrence projection, and conflict classification. Nothing in
// here touches the database or the transport layer.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts an "HH:MM" or "HH:MM:SS" clock string to minutes
// since midnight. Seconds are accepted and ignored.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed clock string %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock string %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock string %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock string %q out of range", s)
	}
	return hour*60 + minute, nil
}

// mustClock is for engine-internal comparisons over times that were
// validated on the way in. A malformed value reaching this point is a
// bug, so it fails immediately instead of miscounting conflicts.
func mustClock(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

// TimeRangesOverlap reports whether two half-open clock ranges
// [start1, end1) and [start2, end2) intersect. Back-to-back ranges,
// where one ends exactly when the other begins, do not overlap.
func TimeRangesOverlap(start1, end1, start2, end2 string) bool {
	s1, e1 := mustClock(start1), mustClock(end1)
	s2, e2 := mustClock(start2), mustClock(end2)
	return s1 < e2 && s2 < e1
}

// ClockOf renders an instant's local wall-clock time as "HH:MM".
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}

// WeekdayIndex resolves a full English weekday name ("Monday") to Go's
// time.Weekday numbering, Sunday = 0.
func WeekdayIndex(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, true
		}
	}
	return 0, false
}
