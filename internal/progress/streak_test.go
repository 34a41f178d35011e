package progress

import "testing"

func TestStreakAdvance(t *testing.T) {
	tests := []struct {
		name        string
		start       Streak
		date        string
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first ever activity",
			start:       Streak{},
			date:        "2024-01-01",
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "same day no change",
			start:       Streak{Current: 3, Longest: 5, LastActiveDate: "2024-01-03"},
			date:        "2024-01-03",
			wantCurrent: 3,
			wantLongest: 5,
		},
		{
			name:        "next day extends",
			start:       Streak{Current: 3, Longest: 5, LastActiveDate: "2024-01-03"},
			date:        "2024-01-04",
			wantCurrent: 4,
			wantLongest: 5,
		},
		{
			name:        "extends past longest",
			start:       Streak{Current: 5, Longest: 5, LastActiveDate: "2024-01-05"},
			date:        "2024-01-06",
			wantCurrent: 6,
			wantLongest: 6,
		},
		{
			name:        "gap resets to one",
			start:       Streak{Current: 4, Longest: 8, LastActiveDate: "2024-01-04"},
			date:        "2024-01-09",
			wantCurrent: 1,
			wantLongest: 8,
		},
		{
			name:        "month boundary",
			start:       Streak{Current: 2, Longest: 2, LastActiveDate: "2024-01-31"},
			date:        "2024-02-01",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "year boundary",
			start:       Streak{Current: 1, Longest: 1, LastActiveDate: "2023-12-31"},
			date:        "2024-01-01",
			wantCurrent: 2,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.Advance(tt.date)
			if s.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", s.Current, tt.wantCurrent)
			}
			if s.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", s.Longest, tt.wantLongest)
			}
			if s.Longest < s.Current {
				t.Errorf("Longest %d < Current %d", s.Longest, s.Current)
			}
		})
	}
}

func TestStreakSameDayIdempotent(t *testing.T) {
	var s Streak
	for i := 0; i < 10; i++ {
		s.Advance("2024-01-01")
	}

	var once Streak
	once.Advance("2024-01-01")

	if s != once {
		t.Errorf("repeated same-day advance = %+v, single advance = %+v", s, once)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	var s Streak
	s.Advance("2024-01-01")
	s.Advance("2024-01-02")
	s.Advance("2024-01-03")

	if s.Current != 3 {
		t.Errorf("Current = %d, want 3", s.Current)
	}
	if s.Longest < 3 {
		t.Errorf("Longest = %d, want >= 3", s.Longest)
	}

	// Five-day gap restarts the run.
	s.Advance("2024-01-08")
	if s.Current != 1 {
		t.Errorf("Current after gap = %d, want 1", s.Current)
	}
	if s.Longest != 3 {
		t.Errorf("Longest after gap = %d, want 3", s.Longest)
	}
}

func TestStreakEffectiveCurrent(t *testing.T) {
	s := Streak{Current: 4, Longest: 4, LastActiveDate: "2024-01-10"}

	if got := s.EffectiveCurrent("2024-01-10"); got != 4 {
		t.Errorf("same day EffectiveCurrent = %d, want 4", got)
	}
	if got := s.EffectiveCurrent("2024-01-11"); got != 4 {
		t.Errorf("next day EffectiveCurrent = %d, want 4", got)
	}
	if got := s.EffectiveCurrent("2024-01-13"); got != 0 {
		t.Errorf("lapsed EffectiveCurrent = %d, want 0", got)
	}
}
