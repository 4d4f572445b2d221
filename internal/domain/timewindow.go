package domain

import "time"

// TimeWindow is a half-open interval [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// WindowOf returns the window that starts at start and lasts durationMinutes
func WindowOf(start time.Time, durationMinutes int) TimeWindow {
	return TimeWindow{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Back-to-back windows (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overlaps reports whether w and other share an instant
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return Overlaps(w.Start, w.End, other.Start, other.End)
}

// Duration returns the window length
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
