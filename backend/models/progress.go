package models

import "time"

// XPProgressPercent returns XP progress as a percentage for progress bars.
// Derived on every read, never stored.
func (p *UserProgress) XPProgressPercent() int {
	if p.XPNextLevel <= 0 {
		return 0
	}
	percent := p.XP * 100 / p.XPNextLevel
	if percent > 100 {
		percent = 100
	}
	return percent
}

// ApplyStreak rolls the daily streak forward. Comparison is at date
// granularity: active yesterday extends the streak, a gap of two or more
// days resets it to 1, and a call on a day already counted (or with
// last_active somehow in the future) leaves streak_days untouched, so
// repeat calls within one day cannot double-increment. LastActive is
// always moved to today; the caller persists the record.
func (p *UserProgress) ApplyStreak(now time.Time) {
	today := truncateToDay(now)
	last := truncateToDay(p.LastActive)
	yesterday := today.AddDate(0, 0, -1)

	switch {
	case last.Equal(yesterday):
		p.StreakDays++
	case last.Before(yesterday):
		p.StreakDays = 1
	default:
		// already counted today, or last_active is in the future:
		// leave the streak alone
	}

	p.LastActive = today
}

// truncateToDay normalizes to UTC so a stored timestamp and a wall-clock
// "now" from different zones land on the same calendar day.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
