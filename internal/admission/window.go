package admission

import "time"

// Clock returns the current time. Tests replace it to move across days.
type Clock func() time.Time

// DayStart returns UTC midnight of the day containing t.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextReset returns the UTC midnight following t.
func NextReset(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// sameDay reports whether a and b fall on the same UTC calendar date.
func sameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// recordEvent prunes entries dated before now's day, appends now and returns
// the updated slice with the number of entries dated on now's day.
func recordEvent(events []time.Time, now time.Time) ([]time.Time, int) {
	start := DayStart(now)

	kept := events[:0]
	for _, ev := range events {
		if !ev.Before(start) {
			kept = append(kept, ev)
		}
	}
	kept = append(kept, now)

	count := 0
	for _, ev := range kept {
		if sameDay(ev, now) {
			count++
		}
	}
	return kept, count
}
