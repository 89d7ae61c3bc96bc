// Package streak implements the daily engagement counter rule. The rule is
// pure; persistence of the outcome lives with the profile repository, which
// applies it with a conditional update so two racing completion events
// cannot double-count a day.
package streak

import "time"

// State is a user's streak counter and the time it last advanced. A zero
// UpdatedAt means the user has never completed a module.
type State struct {
	Current   int
	UpdatedAt time.Time
}

// Advance applies the completion rule at calendar-date granularity, in the
// location of now:
//
//	same day     -> unchanged (idempotent against repeat completions)
//	yesterday    -> streak + 1
//	older / none -> streak reset to 1
//
// The second return value reports whether the state changed and needs a
// persistence write.
func Advance(s State, now time.Time) (State, bool) {
	today := dateOf(now)

	if !s.UpdatedAt.IsZero() {
		last := dateOf(s.UpdatedAt.In(now.Location()))
		if last.Equal(today) {
			return s, false
		}
		if last.Equal(today.AddDate(0, 0, -1)) {
			return State{Current: s.Current + 1, UpdatedAt: now}, true
		}
	}

	return State{Current: 1, UpdatedAt: now}, true
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
