package flow

import (
	"fmt"
	"time"
)

// WeekOfYear numbers weeks starting on Sunday, with week 1 being the week that
// contains January 1. The first week may be partial and so may the last; a year has
// 53 or 54 weeks under this rule.
func WeekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return (t.YearDay()-1+int(jan1.Weekday()))/7 + 1
}

// WeekKey is the cache key of the price sheet for the week containing t. The year is
// the calendar year of t, so Dec 31 and Jan 1 never share a key.
func WeekKey(t time.Time) string {
	return fmt.Sprintf("week_%d_%d", WeekOfYear(t), t.Year())
}
