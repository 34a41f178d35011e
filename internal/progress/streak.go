package progress

import "time"

// Advance recomputes the streak for activity on the given calendar date.
// Same-day activity is a no-op, the day after the last active date extends
// the run, and any gap (or a first-ever activity) restarts at 1. Longest
// never drops below current.
func (s *Streak) Advance(date string) {
	if date == "" || date == s.LastActiveDate {
		s.clampLongest()
		return
	}

	switch {
	case s.LastActiveDate == "":
		s.Current = 1
	case isNextDay(s.LastActiveDate, date):
		s.Current++
	default:
		s.Current = 1
	}

	s.LastActiveDate = date
	s.clampLongest()
}

// Active reports whether the streak is still alive as of today: the last
// active date is today or yesterday.
func (s *Streak) Active(today string) bool {
	return s.LastActiveDate == today || isNextDay(s.LastActiveDate, today)
}

// EffectiveCurrent returns the streak count to display as of today. A
// lapsed streak reads as zero even before the next recomputation.
func (s *Streak) EffectiveCurrent(today string) int {
	if !s.Active(today) {
		return 0
	}
	return s.Current
}

func (s *Streak) clampLongest() {
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
}

// isNextDay reports whether b is exactly one calendar day after a.
func isNextDay(a, b string) bool {
	ta, errA := time.Parse(DateLayout, a)
	tb, errB := time.Parse(DateLayout, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.AddDate(0, 0, 1).Equal(tb)
}
