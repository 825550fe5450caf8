package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps возвращает true, если интервалы пересекаются.
// Касание границ ([10:00,12:00) и [12:00,13:00)) пересечением не считается.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// RequestedWindow интервал, который запрашивается у фургона на время start:
// [start, start + duration + buffer). Без длительности это [start, start + buffer).
func RequestedWindow(start time.Time, duration, buffer time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration + buffer)}
}
